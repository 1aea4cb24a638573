// Package particles provides subset views over particle blocks and the
// batched attribute writes that operate on them.
//
// # Sets
//
// A Set binds one container.Block to a sorted, duplicate-free list of slot
// indices ("pindices") into that block. A Sets value is an ordered collection
// of Set views sharing one schema and particle type name; it is an immutable
// snapshot of membership built for one operation or time step.
//
//	s0, _ := particles.NewSet(block0, []uint32{0, 1, 2})
//	s1, _ := particles.NewSet(block1, []uint32{4, 7})
//	sets, _ := particles.NewSets("Main", info, []particles.Set{s0, s1})
//
// # Bulk writes
//
// Writes enumerate destinations set by set, and within a set in ascending
// pindex order. That enumeration defines how an input slice maps to slots:
//
//	// scatter: len(values) must equal sets.Size()
//	err := particles.SetValues(sets, velocityIndex, velocities)
//
//	// cyclic broadcast: values tiled over all destinations
//	err = particles.SetRepeatedByName(sets, "Color", []attribute.Float3{red, blue})
//
//	// constant fill
//	err = sets.FillFloatByName("Size", 0.1)
//
// Every check (attribute lookup, type, length) runs before the first byte is
// written, so a rejected call leaves all columns untouched.
//
// # Triviality
//
// A Set is trivial when it is empty or its pindices are exactly 0..Size()-1.
// This recognises only runs that start at slot 0: {5, 6, 7} is contiguous but
// not trivial. Trivial sets are written with contiguous range copies.
//
// # Concurrency
//
// Sets and Set values are safe for concurrent reads. Writes perform no
// locking; callers running writes concurrently must target disjoint
// (block, slot, attribute) triples.
package particles
