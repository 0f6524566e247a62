// Package shm creates the kernel objects that back mirror mappings.
//
// # Overview
//
// A backing object is plain fd-backed shared storage with four verbs:
// exclusive create, resize, close, unlink. Keeping the surface this small
// means the mapping layer never cares which mechanism produced the fd, and
// the mechanism can change per platform without touching callers.
//
// Two backings are available:
//
//   - Named: an exclusively-created file on the shared-memory filesystem
//     (/dev/shm on Linux, the system temp directory elsewhere). This is
//     shm_open(3) semantics without the libc wrapper. The name can be
//     unlinked while mappings hold the storage alive.
//   - Memfd: an anonymous memfd_create(2) file (Linux only). It never
//     appears in any filesystem, so Unlink is a recorded no-op.
//
// # Usage
//
//	obj, err := shm.Create(shm.Config{})
//	if err != nil { ... }
//	defer obj.Close()
//
//	if err := obj.Resize(size); err != nil { ... }
//	// ... map obj.Fd() ...
//	if err := obj.Unlink(); err != nil { ... }
//
// Create with an empty Config.Name generates a collision-resistant name
// and retries the unlikely clash; an explicit name is created exactly once
// and a clash is the caller's error.
//
// Resize checks free space on the backing filesystem first. tmpfs accepts
// oversized ftruncates and delivers SIGBUS on first touch instead of
// failing early, so the check has to happen up front.
package shm
