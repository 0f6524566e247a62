package mmap

import (
	"io"
	"os"
	"sync/atomic"
	"unsafe"
)

// Mapping owns one contiguous span of virtual address space.
// It is responsible for unmapping the whole span on Close.
type Mapping struct {
	data   []byte
	size   int
	closed atomic.Bool
	// unmap is the platform-specific function to unmap the span.
	unmap func([]byte) error
}

// Reserve claims size bytes of contiguous, inaccessible address space.
// The span is anonymous and private; the kernel chooses the placement.
// Nothing in it can be read or written until a part is replaced via
// Overlay.
func Reserve(size int) (*Mapping, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	// Platform-specific reservation
	data, unmapFunc, err := osReserve(size)
	if err != nil {
		return nil, err
	}

	m := &Mapping{
		data:  data,
		size:  size,
		unmap: unmapFunc,
	}

	return m, nil
}

// Overlay replaces the span bytes [offset, offset+length) with a shared
// read-write mapping of fd's bytes [0, length). Placement is exact: the
// overlay lands at the requested address inside the reservation or
// Overlay fails. offset must be page-aligned.
//
// Because the overlay replaces reservation pages in place, the span
// stays one contiguous block and Close still releases everything with a
// single unmap.
func (m *Mapping) Overlay(offset, length, fd int, prefault bool) error {
	if m.closed.Load() {
		return ErrClosed
	}
	if offset < 0 || length <= 0 || offset+length > m.size {
		return ErrOutOfBounds
	}
	if offset%os.Getpagesize() != 0 {
		return ErrInvalidOffset
	}
	return osOverlay(unsafe.Pointer(&m.data[offset]), length, fd, prefault)
}

// Close unmaps the whole span in one call, overlays included. It is idempotent.
func (m *Mapping) Close() error {
	if m.closed.Swap(true) {
		return nil // Already closed
	}
	if m.unmap != nil && m.data != nil {
		return m.unmap(m.data)
	}
	return nil
}

// Bytes returns the underlying byte slice for the whole span.
// Warning: The slice is valid only until Close() is called, and bytes
// that no Overlay has made accessible fault on access.
func (m *Mapping) Bytes() []byte {
	if m.closed.Load() {
		return nil
	}
	return m.data
}

// Size returns the size of the span in bytes.
func (m *Mapping) Size() int {
	return m.size
}

// Advise provides hints to the kernel about how the memory will be accessed.
func (m *Mapping) Advise(pattern AccessPattern) error {
	if m.closed.Load() {
		return ErrClosed
	}
	if m.data == nil {
		return nil
	}
	return osAdvise(m.data, pattern)
}

// ReadAt implements io.ReaderAt. The range read must be covered by
// overlays; reading reserved-only bytes faults.
func (m *Mapping) ReadAt(p []byte, off int64) (n int, err error) {
	if m.closed.Load() {
		return 0, ErrClosed
	}
	if off < 0 {
		return 0, ErrInvalidOffset
	}
	if off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n = copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
