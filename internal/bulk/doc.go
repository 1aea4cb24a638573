// Package bulk implements the type-erased column write engine.
//
// Every function works on raw column bytes and knows only two things about
// the data: the element width in bytes and the destination slot of each
// element. Values are never interpreted.
//
// Three write shapes are supported, plus Gather to read slots back:
//
//   - Scatter: element i of src goes to slot pindices[i].
//   - Repeat:  src is tiled cyclically over the destination slots.
//   - Fill:    one element pattern goes to every destination slot.
//
// Each shape has an index-list form and a contiguous Range form used when
// the destination slots are known to be [start, start+n).
//
// Widths of 1, 4, 8, 12 and 16 bytes dispatch once to a loop over fixed-size
// byte arrays; other widths fall back to a per-element copy. Slot indices are
// trusted: an index beyond the column panics like any out-of-range slice access.
package bulk
