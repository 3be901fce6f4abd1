// Package conv provides checked integer narrowing for automaton state IDs.
//
// NFA states are addressed by uint32 and compiled states by uint16. A state
// count that does not fit is a programming error in the caller (the builders
// enforce their own limits first), so these helpers panic instead of
// returning an error.
package conv

import "math"

// IntToUint32 safely converts an int to uint32.
// Panics if n < 0 or n > math.MaxUint32.
//
//go:inline
func IntToUint32(n int) uint32 {
	// compare as uint so 32-bit platforms do not overflow
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}

// IntToUint16 safely converts an int to uint16.
// Panics if n < 0 or n > math.MaxUint16.
//
//go:inline
func IntToUint16(n int) uint16 {
	if n < 0 || n > math.MaxUint16 {
		panic("integer overflow: int value out of uint16 range")
	}
	return uint16(n)
}
