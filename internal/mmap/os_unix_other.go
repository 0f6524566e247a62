//go:build unix && !linux

package mmap

// Reservation and pre-fault tuning flags are Linux extensions; other
// platforms reserve plainly and pay the fault on first access.
func osReserveFlags() int {
	return 0
}

func osPrefaultFlags(bool) int {
	return 0
}
