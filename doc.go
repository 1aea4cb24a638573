// Package particlestore provides columnar particle storage with bulk attribute
// writes over arbitrary particle selections.
//
// Particles of one type share a schema (attribute.Info) and live in
// fixed-capacity blocks. Each block stores one contiguous column per
// attribute. A selection of particles is expressed as a particles.Sets: an
// ordered list of (block, sorted slot indices) views. Bulk operations write
// a whole attribute across such a selection in one call.
//
// # Quick Start
//
//	info := attribute.NewBuilder().
//	    AddFloat3("Position", attribute.Float3{}).
//	    AddFloat3("Velocity", attribute.Float3{}).
//	    AddFloat("Size", 0.1).
//	    MustBuild()
//
//	store := particlestore.New(particlestore.WithBlockCapacity(1024))
//	defer store.Close()
//
//	_ = store.RegisterType("Main", info)
//	born, _ := store.Add(ctx, "Main", 5000)
//	_ = particles.SetValuesByName(born, "Position", positions)
//	_ = born.FillFloatByName("Size", 0.2)
//
// # Per-Block Steps
//
// Step hands each block to a callback on its own goroutine, so callbacks
// never share column memory:
//
//	err := store.Step(ctx, "Main", func(ctx context.Context, sets *particles.Sets) error {
//	    return particles.SetRepeatedByName(sets, "Velocity", []attribute.Float3{gravity})
//	})
//
// # Snapshots
//
//	err := store.Snapshot(ctx, "Main", w)
//	err = store.Restore(ctx, r)
//
// # Concurrency
//
// Store methods are safe for concurrent use. Column data is not locked:
// callers must not write the same (block, attribute) pair from two
// goroutines at once.
package particlestore
