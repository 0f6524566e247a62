package shm

import "golang.org/x/sys/unix"

// DefaultDir returns the tmpfs mount POSIX shared memory names live in.
func DefaultDir() string {
	return "/dev/shm"
}

func osMemfdCreate(name string) (int, error) {
	return unix.MemfdCreate(name, unix.MFD_CLOEXEC)
}
