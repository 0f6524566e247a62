//go:build unix || linux || darwin || freebsd || openbsd || netbsd

package shm

import (
	"golang.org/x/sys/unix"
)

// objectMode keeps backing objects private to the creating user.
const objectMode = 0o600

func osOpenExclusive(path string) (int, error) {
	return unix.Open(path, unix.O_RDWR|unix.O_CREAT|unix.O_EXCL|unix.O_CLOEXEC, objectMode)
}

func osTruncate(fd int, size int64) error {
	return unix.Ftruncate(fd, size)
}

func osUnlink(path string) error {
	return unix.Unlink(path)
}

func osClose(fd int) error {
	return unix.Close(fd)
}
