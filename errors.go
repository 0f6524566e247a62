package mirrormap

import (
	"errors"
	"fmt"

	"github.com/hupe1980/mirrormap/internal/mmap"
	"github.com/hupe1980/mirrormap/internal/resource"
	"github.com/hupe1980/mirrormap/internal/shm"
)

var (
	// ErrObjectCreate indicates the backing object could not be created.
	ErrObjectCreate = errors.New("backing object creation failed")
	// ErrObjectResize indicates the backing object could not be sized.
	ErrObjectResize = errors.New("backing object resize failed")
	// ErrReserve indicates the private address-space reservation failed.
	ErrReserve = errors.New("address space reservation failed")
	// ErrOverlay indicates a fixed view mapping could not be established.
	ErrOverlay = errors.New("view overlay failed")
	// ErrUnlink indicates the backing object's name could not be removed.
	ErrUnlink = errors.New("backing object unlink failed")
	// ErrClosed is returned when operating on a released mirror.
	ErrClosed = errors.New("mirror is released")

	// ErrMemoryLimitExceeded is returned when a configured resource
	// controller rejects the mirror's memory budget.
	ErrMemoryLimitExceeded = resource.ErrMemoryLimitExceeded
)

// ErrInvalidLength indicates a length that is not a positive multiple of
// the system page size.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidLength struct {
	Length   int
	PageSize int
	cause    error
}

func (e *ErrInvalidLength) Error() string {
	return fmt.Sprintf("invalid length %d: must be a positive multiple of the page size (%d)", e.Length, e.PageSize)
}

func (e *ErrInvalidLength) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Released unification.
	if errors.Is(err, mmap.ErrClosed) || errors.Is(err, shm.ErrClosed) {
		return fmt.Errorf("%w: %w", ErrClosed, err)
	}

	return err
}
