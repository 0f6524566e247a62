package shm

import "errors"

// Backing selects the kernel mechanism behind a backing object.
type Backing int

const (
	// BackingNamed is an exclusively-created named object on the
	// shared-memory filesystem. The zero value.
	BackingNamed Backing = iota
	// BackingMemfd is an anonymous Linux memfd. It has no name in any
	// filesystem namespace.
	BackingMemfd
)

// String implements fmt.Stringer.
func (b Backing) String() string {
	switch b {
	case BackingNamed:
		return "named"
	case BackingMemfd:
		return "memfd"
	default:
		return "unknown"
	}
}

var (
	// ErrClosed is returned when operating on a closed object.
	ErrClosed = errors.New("shm: object is closed")
	// ErrInvalidName is returned for names that are empty or path-like.
	ErrInvalidName = errors.New("shm: invalid object name")
	// ErrNoSpace is returned when the backing filesystem cannot hold the
	// requested size.
	ErrNoSpace = errors.New("shm: insufficient space on backing filesystem")
	// ErrMemfdUnsupported is returned when memfd backing is requested on a
	// platform without memfd_create.
	ErrMemfdUnsupported = errors.New("shm: memfd is not supported on this platform")
	// ErrUnknownBacking is returned for a Backing value this package does
	// not know.
	ErrUnknownBacking = errors.New("shm: unknown backing")
)

// Config controls object creation.
type Config struct {
	// Name is the object name. A single leading slash is accepted for
	// shm_open familiarity. Empty means a generated unique name.
	Name string

	// Backing selects the kernel mechanism. Default is BackingNamed.
	Backing Backing

	// Dir overrides the directory named objects are created in.
	// Default is the platform shared-memory directory. Ignored for memfd.
	Dir string
}
