// Package testutil provides testing utilities for particlestore.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, thread-safe RNG and generators for attribute
// values and slot selections.
//
// # Random Attribute Values
//
//	rng := testutil.NewRNG(seed)
//	positions := rng.Float3s(1000, -1, 1)
//	ids := rng.Integers(1000)
//
// # Slot Selections
//
//	pindices := rng.SortedSubset(blockActive, 0.3) // sorted, unique
package testutil
