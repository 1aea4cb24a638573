// Package conv provides safe integer type conversion utilities.
//
// These functions perform bounds checking to prevent integer overflow when
// converting between Go's platform-dependent int and the fixed-width integers
// used for slot indices and snapshot fields.
//
// For conversions that are provably safe by domain constraints (e.g., loop
// indices below a block capacity), use direct type casts instead.
package conv
