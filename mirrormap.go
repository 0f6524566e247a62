package mirrormap

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"sync/atomic"
	"time"

	"github.com/hupe1980/mirrormap/internal/mmap"
	"github.com/hupe1980/mirrormap/internal/shm"
)

// AccessPattern re-exports the kernel access hints accepted by Advise.
type AccessPattern = mmap.AccessPattern

const (
	// AccessDefault is the default access pattern (no specific advice).
	AccessDefault = mmap.AccessDefault
	// AccessSequential expects data to be accessed sequentially.
	AccessSequential = mmap.AccessSequential
	// AccessRandom expects data to be accessed randomly.
	AccessRandom = mmap.AccessRandom
	// AccessWillNeed expects data to be accessed in the near future.
	AccessWillNeed = mmap.AccessWillNeed
	// AccessDontNeed expects data to not be accessed in the near future.
	AccessDontNeed = mmap.AccessDontNeed
)

// wipeChunk is the granularity Wipe zeroes and accounts at.
const wipeChunk = 256 << 10

var errSpanOverflow = errors.New("combined span exceeds the addressable range")

// Mirror is one shared storage object mapped at two contiguous
// virtual-address ranges. A write through either range is immediately
// visible through the other; the byte at View()[i] and the byte at
// Alias()[i] are the same physical byte.
//
// The two views sit back to back inside one private reservation, so
// Combined() is a single linear buffer of twice the mirror length whose
// second half aliases its first.
type Mirror struct {
	length  int
	size    int
	name    string
	backing Backing
	span    *mmap.Mapping
	view    *mmap.Region
	alias   *mmap.Region
	obj     *shm.Object
	closed  atomic.Bool

	resources        *ResourceController
	metricsCollector MetricsCollector
	logger           *Logger
}

// New establishes a mirror of length bytes. length must be a positive
// multiple of the system page size.
//
// The construction sequence is: create the backing object (exclusive),
// size it, reserve an inaccessible private span of twice the length,
// overlay the object at both halves with exact placement, then unlink
// the object's name. If any step fails, everything established by the
// earlier steps is unwound before the error is returned.
func New(length int, optFns ...Option) (*Mirror, error) {
	o := applyOptions(optFns)

	page := os.Getpagesize()
	if length <= 0 || length%page != 0 {
		return nil, &ErrInvalidLength{Length: length, PageSize: page}
	}
	if length > math.MaxInt/2 {
		return nil, &ErrInvalidLength{Length: length, PageSize: page, cause: errSpanOverflow}
	}

	start := time.Now()
	m, err := establish(length, o)
	o.metricsCollector.RecordMap(time.Since(start), err)

	name := o.name
	if m != nil {
		name = m.name
	}
	o.logger.LogEstablish(context.Background(), name, length, err)

	if err != nil {
		return nil, err
	}
	return m, nil
}

func establish(length int, o options) (_ *Mirror, err error) {
	size := 2 * length

	if aerr := o.resources.AcquireMemory(int64(size)); aerr != nil {
		return nil, fmt.Errorf("%w: %w", ErrReserve, aerr)
	}
	defer func() {
		if err != nil {
			o.resources.ReleaseMemory(int64(size))
		}
	}()

	obj, cerr := shm.Create(shm.Config{Name: o.name, Backing: o.backing, Dir: o.dir})
	if cerr != nil {
		return nil, fmt.Errorf("%w: %w", ErrObjectCreate, cerr)
	}
	// Any failure past this point unwinds everything established so far.
	defer func() {
		if err != nil {
			_ = obj.Unlink()
			_ = obj.Close()
		}
	}()

	if rerr := obj.Resize(length); rerr != nil {
		return nil, fmt.Errorf("%w: %w", ErrObjectResize, rerr)
	}

	span, serr := mmap.Reserve(size)
	if serr != nil {
		return nil, fmt.Errorf("%w: %w", ErrReserve, serr)
	}
	defer func() {
		if err != nil {
			_ = span.Close()
		}
	}()

	if oerr := span.Overlay(0, length, obj.Fd(), o.prefault); oerr != nil {
		return nil, fmt.Errorf("%w: first view: %w", ErrOverlay, oerr)
	}
	if oerr := span.Overlay(length, length, obj.Fd(), o.prefault); oerr != nil {
		return nil, fmt.Errorf("%w: second view: %w", ErrOverlay, oerr)
	}

	// The mappings hold the storage; the name can go away now.
	if uerr := obj.Unlink(); uerr != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnlink, uerr)
	}

	view, verr := span.Region(0, length)
	if verr != nil {
		return nil, fmt.Errorf("first view region: %w", verr)
	}
	alias, aerr := span.Region(length, length)
	if aerr != nil {
		return nil, fmt.Errorf("second view region: %w", aerr)
	}

	return &Mirror{
		length:           length,
		size:             size,
		name:             obj.Name(),
		backing:          obj.Backing(),
		span:             span,
		view:             view,
		alias:            alias,
		obj:              obj,
		resources:        o.resources,
		metricsCollector: o.metricsCollector,
		logger:           o.logger,
	}, nil
}

// View returns the first alias of the mirrored bytes (length bytes at the
// base of the combined span). Returns nil after Close.
func (m *Mirror) View() []byte {
	return m.view.Bytes()
}

// Alias returns the second alias of the mirrored bytes (length bytes
// starting at base+length). Returns nil after Close.
func (m *Mirror) Alias() []byte {
	return m.alias.Bytes()
}

// Combined returns the whole span as one linear buffer of 2*Len() bytes.
// Its second half aliases its first. Returns nil after Close.
func (m *Mirror) Combined() []byte {
	return m.span.Bytes()
}

// Len returns the mirror length in bytes.
func (m *Mirror) Len() int {
	return m.length
}

// Size returns the combined span size in bytes (always 2*Len()).
func (m *Mirror) Size() int {
	return m.size
}

// Name returns the backing object name.
func (m *Mirror) Name() string {
	return m.name
}

// Backing returns the mechanism behind the mirror's storage.
func (m *Mirror) Backing() Backing {
	return m.backing
}

// Closed reports whether the mirror has been released.
func (m *Mirror) Closed() bool {
	return m.closed.Load()
}

// Advise provides hints to the kernel about how the mirror will be
// accessed.
func (m *Mirror) Advise(pattern AccessPattern) error {
	if m.closed.Load() {
		return ErrClosed
	}
	return translateError(m.span.Advise(pattern))
}

// Wipe re-zeroes the mirrored bytes through the first view. When a
// resource controller is configured, the write obeys its wipe throughput
// limit; ctx bounds the wait.
func (m *Mirror) Wipe(ctx context.Context) (err error) {
	start := time.Now()
	defer func() {
		m.metricsCollector.RecordWipe(m.length, time.Since(start), err)
		m.logger.LogWipe(ctx, m.length, err)
	}()

	if m.closed.Load() {
		return ErrClosed
	}
	buf := m.view.Bytes()
	if buf == nil {
		return ErrClosed
	}

	for len(buf) > 0 {
		n := wipeChunk
		if n > len(buf) {
			n = len(buf)
		}
		if werr := m.resources.AcquireWipe(ctx, n); werr != nil {
			return werr
		}
		clear(buf[:n])
		buf = buf[n:]
	}
	return nil
}

// Close releases the mirror: a single munmap covers the reservation and
// both views, then the backing fd is closed. Both aliases always go away
// together. Close is idempotent.
func (m *Mirror) Close() error {
	if m.closed.Swap(true) {
		return nil // Already closed
	}

	start := time.Now()
	var firstErr error
	if err := m.span.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := m.obj.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	m.resources.ReleaseMemory(int64(m.size))

	m.metricsCollector.RecordRelease(time.Since(start), firstErr)
	m.logger.LogRelease(context.Background(), m.name, firstErr)
	return firstErr
}
