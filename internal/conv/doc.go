// Package conv provides safe integer type conversion utilities.
//
// These functions perform bounds checking to prevent overflow/underflow when
// converting between signed and unsigned types.
//
// Use cases:
//   - Validating caller-supplied sizes before syscalls and capacity checks
//
// For conversions that are provably safe by domain constraints (e.g., loop
// indices, bounded counters), use direct type casts instead to avoid overhead.
package conv
