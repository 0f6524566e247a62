package ring

import (
	"errors"
	"io"

	"github.com/hupe1980/mirrormap"
)

var (
	// ErrFull is returned when a claim or commit exceeds the free space.
	ErrFull = errors.New("ring: not enough free space")

	// ErrNotEnoughData is returned when a peek or consume exceeds the
	// buffered data.
	ErrNotEnoughData = errors.New("ring: not enough data")

	// ErrInvalidSize is returned for non-positive window sizes.
	ErrInvalidSize = errors.New("ring: invalid size")
)

// Buffer is a byte ring over a mirrored mapping. Its capacity equals the
// mirror's logical length; the doubled span guarantees that every window
// returned by Claim and Peek is contiguous.
type Buffer struct {
	m    *mirrormap.Mirror
	data []byte // combined span, len(data) == 2*size
	size int
	head int // read position, always < size
	used int // buffered byte count
}

// New creates a ring buffer over the given mirror. The mirror must remain
// open for the lifetime of the buffer.
func New(m *mirrormap.Mirror) (*Buffer, error) {
	if m == nil || m.Closed() {
		return nil, mirrormap.ErrClosed
	}

	return &Buffer{
		m:    m,
		data: m.Combined(),
		size: m.Len(),
	}, nil
}

// Cap returns the buffer capacity in bytes.
func (b *Buffer) Cap() int { return b.size }

// Len returns the number of buffered bytes.
func (b *Buffer) Len() int { return b.used }

// Free returns the number of bytes that can be written before the buffer
// is full.
func (b *Buffer) Free() int { return b.size - b.used }

// Claim returns a contiguous writable window of n bytes at the current
// write position. The window stays writable until the next Commit; writes
// become readable only after Commit.
func (b *Buffer) Claim(n int) ([]byte, error) {
	if err := b.check(n); err != nil {
		return nil, err
	}

	if n > b.Free() {
		return nil, ErrFull
	}

	start := b.wrap(b.head + b.used)

	return b.data[start : start+n : start+n], nil
}

// Commit publishes n bytes previously written through a claimed window.
func (b *Buffer) Commit(n int) error {
	if err := b.check(n); err != nil {
		return err
	}

	if n > b.Free() {
		return ErrFull
	}

	b.used += n

	return nil
}

// Peek returns a contiguous readable window of n bytes at the current read
// position without consuming them. The window is invalidated by Consume and
// Reset.
func (b *Buffer) Peek(n int) ([]byte, error) {
	if err := b.check(n); err != nil {
		return nil, err
	}

	if n > b.used {
		return nil, ErrNotEnoughData
	}

	return b.data[b.head : b.head+n : b.head+n], nil
}

// Consume discards n buffered bytes, advancing the read position.
func (b *Buffer) Consume(n int) error {
	if err := b.check(n); err != nil {
		return err
	}

	if n > b.used {
		return ErrNotEnoughData
	}

	b.head = b.wrap(b.head + n)
	b.used -= n

	return nil
}

// Reset discards all buffered data.
func (b *Buffer) Reset() {
	b.head = 0
	b.used = 0
}

// Write appends p to the buffer, implementing io.Writer. It writes as much
// as fits and returns ErrFull if p was truncated.
func (b *Buffer) Write(p []byte) (int, error) {
	if b.m.Closed() {
		return 0, mirrormap.ErrClosed
	}

	n := len(p)
	if free := b.Free(); n > free {
		n = free
	}

	if n == 0 {
		if len(p) == 0 {
			return 0, nil
		}

		return 0, ErrFull
	}

	w, err := b.Claim(n)
	if err != nil {
		return 0, err
	}

	copy(w, p[:n])

	if err := b.Commit(n); err != nil {
		return 0, err
	}

	if n < len(p) {
		return n, ErrFull
	}

	return n, nil
}

// Read copies buffered bytes into p, implementing io.Reader. It returns
// io.EOF when the buffer is empty.
func (b *Buffer) Read(p []byte) (int, error) {
	if b.m.Closed() {
		return 0, mirrormap.ErrClosed
	}

	if len(p) == 0 {
		return 0, nil
	}

	if b.used == 0 {
		return 0, io.EOF
	}

	n := len(p)
	if n > b.used {
		n = b.used
	}

	r, err := b.Peek(n)
	if err != nil {
		return 0, err
	}

	copy(p, r)

	if err := b.Consume(n); err != nil {
		return 0, err
	}

	return n, nil
}

// wrap folds a position in [0, 2*size) back into [0, size).
func (b *Buffer) wrap(pos int) int {
	if pos >= b.size {
		return pos - b.size
	}

	return pos
}

func (b *Buffer) check(n int) error {
	if b.m.Closed() {
		return mirrormap.ErrClosed
	}

	if n <= 0 || n > b.size {
		return ErrInvalidSize
	}

	return nil
}
