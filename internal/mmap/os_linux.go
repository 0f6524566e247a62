package mmap

import "golang.org/x/sys/unix"

// osReserveFlags returns extra flags for reservations. MAP_NORESERVE
// keeps large PROT_NONE spans free of swap commitment until an overlay
// makes pages accessible.
func osReserveFlags() int {
	return unix.MAP_NORESERVE
}

// osPrefaultFlags returns extra flags for overlays. MAP_POPULATE
// pre-faults the pages so first access never takes a page fault.
func osPrefaultFlags(prefault bool) int {
	if prefault {
		return unix.MAP_POPULATE
	}
	return 0
}
