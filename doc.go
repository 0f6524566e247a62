// Package mirrormap maps one shared memory object at two contiguous
// virtual-address ranges in the same process.
//
// A write through either range is immediately visible through the other:
// both ranges are the same physical pages. The classic use is a "magic"
// ring buffer where any window of up to the mirror length is one
// contiguous slice, with no copying at the wrap point.
//
// # Quick Start
//
//	length := 8 * os.Getpagesize()
//
//	m, err := mirrormap.New(length)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer m.Close()
//
//	view, alias := m.View(), m.Alias()
//	view[42] = 'A'
//	fmt.Println(alias[42] == 'A') // true
//
// # How It Works
//
// New runs a strict sequence:
//
//  1. Create an exclusively-named shared memory object (or an anonymous
//     memfd with WithBacking).
//  2. Size it to exactly length bytes.
//  3. Reserve 2*length bytes of private, inaccessible address space and
//     let the kernel pick the base.
//  4. Overlay the object at the base and at base+length with fixed,
//     shared, read-write mappings. Placement is exact or fatal.
//  5. Unlink the object's name. The mappings keep the storage alive.
//
// Reserving before overlaying is what makes the layout safe: the fixed
// mappings only ever replace pages the reservation already owns, so they
// are contiguous without evicting anything else in the process.
//
// If any step fails, New unwinds the earlier steps before returning, so a
// failed constructor leaks no mappings, descriptors, or names.
//
// Close releases the whole span with a single munmap; the two views are
// never unmapped separately.
//
// # Error Handling
//
// Every failure identifies its step via a matchable sentinel:
// ErrObjectCreate, ErrObjectResize, ErrReserve, ErrOverlay, ErrUnlink.
// The underlying system error stays in the chain:
//
//	m, err := mirrormap.New(length, mirrormap.WithName("taken"))
//	if errors.Is(err, mirrormap.ErrObjectCreate) { ... }
//
// # Platform Support
//
// Unix only (Linux first-class; macOS and the BSDs best-effort). Linux
// gets the memfd backing, pre-faulting, and /dev/shm free-space
// preflight; other platforms fall back to named files in the system temp
// directory. Windows needs placeholder-reservation APIs this package does
// not use.
//
// # Thread Safety
//
// Establishing and releasing a Mirror is safe from any goroutine, and
// Close is idempotent. The mirrored bytes themselves carry no
// synchronization: concurrent writers need the same fencing they would
// need for any shared []byte.
package mirrormap
