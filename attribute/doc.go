// Package attribute defines the attribute type catalogue and the immutable
// per-particle-type schema (Info) shared by every block and particle set.
//
// # Types
//
// Four primitive kinds are supported, each with a fixed byte width:
//
//	Byte     1 byte   uint8
//	Integer  4 bytes  int32
//	Float    4 bytes  float32
//	Float3  12 bytes  three float32 (X, Y, Z)
//
// Values are stored little-endian. Float3 is laid out as X, Y, Z.
//
// # Schema
//
// An Info is built once per particle type and never changes afterwards:
//
//	info, err := attribute.NewBuilder().
//	    AddFloat3("Position", attribute.Float3{}).
//	    AddFloat3("Velocity", attribute.Float3{}).
//	    AddFloat("Size", 0.05).
//	    AddByte("Kill State", 0).
//	    Build()
//
// Attribute indices follow insertion order and stay stable for the lifetime
// of the Info. An Info is safe for concurrent use by any number of readers.
package attribute
