// Package mem provides memory allocation utilities.
//
// # Aligned Allocation
//
// Block columns are allocated with 64-byte alignment so that every column of
// every attribute starts on a cache line.
package mem
