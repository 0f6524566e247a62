package shm

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/hupe1980/mirrormap/internal/conv"
)

// Object is an fd-backed shared storage object of a known size.
// It is created exclusively and stays usable after its name is unlinked;
// the storage lives until the fd is closed and all mappings are gone.
type Object struct {
	fd       int
	name     string
	path     string // empty for memfd
	backing  Backing
	size     int
	closed   atomic.Bool
	unlinked atomic.Bool
}

// createRetries bounds the generated-name retry loop. Generated names are
// collision-resistant, so a single retry is already paranoia.
const createRetries = 4

// Create makes a new backing object per cfg. Explicit names are created
// exactly once; generated names retry a clash with fresh randomness.
func Create(cfg Config) (*Object, error) {
	switch cfg.Backing {
	case BackingNamed:
		return createNamed(cfg)
	case BackingMemfd:
		return createMemfd(cfg)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownBacking, cfg.Backing)
	}
}

func createNamed(cfg Config) (*Object, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = DefaultDir()
	}

	if cfg.Name != "" {
		name, err := cleanName(cfg.Name)
		if err != nil {
			return nil, err
		}
		return openExclusive(dir, name)
	}

	var obj *Object
	op := func() error {
		o, err := openExclusive(dir, GenerateName())
		if err != nil {
			if errors.Is(err, fs.ErrExist) {
				return err // fresh name next attempt
			}
			return backoff.Permanent(err)
		}
		obj = o
		return nil
	}

	bo := backoff.WithMaxRetries(backoff.NewConstantBackOff(time.Millisecond), createRetries)
	if err := backoff.Retry(op, bo); err != nil {
		return nil, err
	}
	return obj, nil
}

func createMemfd(cfg Config) (*Object, error) {
	name := cfg.Name
	if name == "" {
		name = GenerateName()
	} else {
		var err error
		if name, err = cleanName(name); err != nil {
			return nil, err
		}
	}

	fd, err := osMemfdCreate(name)
	if err != nil {
		return nil, fmt.Errorf("shm: memfd_create %s: %w", name, err)
	}

	return &Object{fd: fd, name: name, backing: BackingMemfd}, nil
}

func openExclusive(dir, name string) (*Object, error) {
	p := filepath.Join(dir, name)

	fd, err := osOpenExclusive(p)
	if err != nil {
		return nil, fmt.Errorf("shm: create %s: %w", p, err)
	}

	return &Object{fd: fd, name: name, path: p, backing: BackingNamed}, nil
}

// Resize sets the object to exactly size bytes. For named objects the
// backing filesystem is checked for room first; see package docs for why.
func (o *Object) Resize(size int) error {
	if o.closed.Load() {
		return ErrClosed
	}

	need, err := conv.IntToUint64(size)
	if err != nil {
		return fmt.Errorf("shm: resize %s: %w", o.name, err)
	}
	if o.path != "" {
		if err := ensureCapacity(filepath.Dir(o.path), need); err != nil {
			return err
		}
	}

	if err := osTruncate(o.fd, int64(size)); err != nil {
		return fmt.Errorf("shm: resize %s to %d bytes: %w", o.name, size, err)
	}
	o.size = size
	return nil
}

// Unlink removes the object's name. Established mappings and the open fd
// keep the storage alive; only the name goes away. Unlink is idempotent,
// and a no-op for backings that never had a name.
func (o *Object) Unlink() error {
	if o.path == "" {
		return nil
	}
	if o.unlinked.Swap(true) {
		return nil
	}
	if err := osUnlink(o.path); err != nil {
		return fmt.Errorf("shm: unlink %s: %w", o.path, err)
	}
	return nil
}

// Close releases the fd. It is idempotent. Close does not unlink.
func (o *Object) Close() error {
	if o.closed.Swap(true) {
		return nil // Already closed
	}
	if err := osClose(o.fd); err != nil {
		return fmt.Errorf("shm: close %s: %w", o.name, err)
	}
	return nil
}

// Fd returns the object's file descriptor, or -1 after Close.
func (o *Object) Fd() int {
	if o.closed.Load() {
		return -1
	}
	return o.fd
}

// Name returns the object name (without directory).
func (o *Object) Name() string {
	return o.name
}

// Path returns the filesystem path for named objects, "" otherwise.
func (o *Object) Path() string {
	return o.path
}

// Backing returns the mechanism behind this object.
func (o *Object) Backing() Backing {
	return o.backing
}

// Size returns the last successfully applied size in bytes.
func (o *Object) Size() int {
	return o.size
}
