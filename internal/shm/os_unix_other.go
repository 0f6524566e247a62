//go:build unix && !linux

package shm

import "os"

// DefaultDir returns the directory named objects are created in. Without
// a universal tmpfs mount, the system temp directory is the closest fit;
// aliased mappings behave identically, the pages just come from the page
// cache instead of tmpfs.
func DefaultDir() string {
	return os.TempDir()
}

func osMemfdCreate(string) (int, error) {
	return -1, ErrMemfdUnsupported
}
