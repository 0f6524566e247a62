//go:build unix || linux || darwin || freebsd || openbsd || netbsd

package mmap

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

func osReserve(size int) ([]byte, func([]byte) error, error) {
	prot := unix.PROT_NONE
	flags := unix.MAP_ANON | unix.MAP_PRIVATE | osReserveFlags()

	data, err := unix.Mmap(-1, 0, size, prot, flags)
	if err != nil {
		return nil, nil, err
	}

	return data, unix.Munmap, nil
}

func osOverlay(addr unsafe.Pointer, length, fd int, prefault bool) error {
	prot := unix.PROT_READ | unix.PROT_WRITE
	flags := unix.MAP_SHARED | unix.MAP_FIXED | osPrefaultFlags(prefault)

	// MmapPtr does not register the slice the way Mmap does, so the
	// later Munmap of the enclosing span stays the single release call.
	got, err := unix.MmapPtr(fd, 0, addr, uintptr(length), prot, flags)
	if err != nil {
		return err
	}
	if got != addr {
		// MAP_FIXED must not relocate. Drop the stray mapping before
		// reporting, so nothing outside the reservation leaks.
		_ = unix.MunmapPtr(got, uintptr(length))
		return ErrMisplaced
	}
	return nil
}

func osAdvise(data []byte, pattern AccessPattern) error {
	if len(data) == 0 {
		return nil
	}

	var advice int
	switch pattern {
	case AccessSequential:
		advice = unix.MADV_SEQUENTIAL
	case AccessRandom:
		advice = unix.MADV_RANDOM
	case AccessWillNeed:
		advice = unix.MADV_WILLNEED
	case AccessDontNeed:
		advice = unix.MADV_DONTNEED
	default:
		advice = unix.MADV_NORMAL
	}

	// On Linux, madvise requires page-aligned addresses.
	// If the slice isn't page-aligned, we silently succeed since
	// the hint is advisory and non-critical.
	err := unix.Madvise(data, advice)
	if err == unix.EINVAL {
		// Likely a page alignment issue on Linux - ignore it
		return nil
	}
	return err
}
