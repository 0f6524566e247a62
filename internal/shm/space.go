package shm

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/disk"
)

// ensureCapacity verifies the filesystem holding dir has room for need
// more bytes.
func ensureCapacity(dir string, need uint64) error {
	stat, err := disk.Usage(dir)
	if err != nil {
		return fmt.Errorf("shm: stat filesystem %s: %w", dir, err)
	}
	if stat.Free < need {
		return fmt.Errorf("%w: need %d bytes, %s has %d free", ErrNoSpace, need, dir, stat.Free)
	}
	return nil
}
