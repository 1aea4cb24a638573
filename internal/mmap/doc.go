// Package mmap provides off-heap anonymous memory mappings.
//
// # Overview
//
// Block columns can live outside the Go heap so that very large particle
// populations add no GC scanning or marking work. A block obtains one
// anonymous mapping and carves a Region per attribute column out of it:
//
//	m, err := mmap.MapAnon(size)
//	if err != nil { ... }
//	defer m.Close()
//
//	region, _ := m.Region(offset, columnSize)
//	column := region.Bytes()
//
//	// Provide kernel hints for access patterns
//	m.Advise(mmap.AccessSequential)
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with MAP_ANON|MAP_PRIVATE, madvise(2) for hints
//   - Windows: VirtualAlloc/VirtualFree (Advise is a no-op)
//
// Mappings start on a page boundary, so any Region whose offset is a multiple
// of 64 is cache-line aligned.
package mmap
