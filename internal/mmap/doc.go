// Package mmap provides address-space reservation and fixed overlay mapping.
//
// # Overview
//
// The package builds contiguous multi-view mappings in two steps: first
// reserve a span of anonymous, private, inaccessible memory, then replace
// parts of it with fixed shared mappings of a file descriptor. Reserving
// first guarantees the final layout is contiguous without ever evicting an
// unrelated mapping: MAP_FIXED only overwrites pages the reservation
// already owns.
//
// # Usage
//
//	m, err := mmap.Reserve(2 * size)
//	if err != nil { ... }
//	defer m.Close()
//
//	// Map the same object twice, back to back
//	if err := m.Overlay(0, size, fd, false); err != nil { ... }
//	if err := m.Overlay(size, size, fd, false); err != nil { ... }
//
//	// Create views into the span
//	lo, _ := m.Region(0, size)
//	hi, _ := m.Region(size, size)
//
//	// Provide kernel hints for access patterns
//	m.Advise(mmap.AccessSequential)
//
// Close releases the whole span, overlays included, with a single unmap.
//
// # Platform Support
//
// Unix only (Linux, macOS, BSD): mmap(2) with MAP_FIXED for overlays and
// madvise(2) for access hints. Linux additionally gets MAP_NORESERVE on
// reservations and optional MAP_POPULATE pre-faulting on overlays. Windows
// placeholder mapping (MapViewOfFile3) is not supported.
//
// # Thread Safety
//
// Mapping and Region are safe for concurrent read access. The Close()
// method is idempotent and protected by atomic operations. However, callers
// must ensure no goroutines access Bytes() after Close() returns.
package mmap
