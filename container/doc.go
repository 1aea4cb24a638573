// Package container provides fixed-capacity particle blocks and the container
// that owns them.
//
// # Layout
//
// A Block stores every attribute of its particle type as a separate packed
// column (structure-of-arrays):
//
//	+--------------------------+  column 0: capacity * SizeOf(type0) bytes
//	| a0 a0 a0 ... a0          |
//	+--------------------------+  column 1 (64-byte aligned)
//	| a1 a1 a1 ... a1          |
//	+--------------------------+
//	| ...                      |
//
// The occupied slots of a block are always the prefix [0, ActiveAmount).
// Fresh columns are initialised with the attribute defaults of the schema.
//
// # Ownership
//
// Blocks are allocated and released only through their Container. Column
// slices returned by Block.Column stay valid until the block is released or
// the container is closed; callers must not retain them beyond that.
//
// Columns can be placed on the Go heap (default) or in off-heap anonymous
// mappings (WithOffHeap). Memory is accounted against an optional resource
// budget.
//
// # Concurrency
//
// Container lifecycle methods (NewBlock, Grow, Release, Blocks, Close) are safe for
// concurrent use. Column data is not synchronized: concurrent writers must
// target disjoint (block, slot, attribute) triples.
package container
