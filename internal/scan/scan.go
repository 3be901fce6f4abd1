// Package scan provides byte scanning helpers for the bulk input path of the
// escape processor.
//
// Terminal output is mostly plain text between escape sequences. These
// helpers find the next byte that can start a sequence, so runs of plain
// text can be handed to the text callback without entering the automaton.
package scan

import "encoding/binary"

// hi8 extracts the high bit of every byte of a little-endian word.
const hi8 = uint64(0x8080808080808080)

// IndexInTable returns the index of the first byte b of haystack with
// table[b] set, or -1 if there is none.
func IndexInTable(haystack []byte, table *[256]bool) int {
	i := 0
	for ; i+4 <= len(haystack); i += 4 {
		if table[haystack[i]] {
			return i
		}
		if table[haystack[i+1]] {
			return i + 1
		}
		if table[haystack[i+2]] {
			return i + 2
		}
		if table[haystack[i+3]] {
			return i + 3
		}
	}
	for ; i < len(haystack); i++ {
		if table[haystack[i]] {
			return i
		}
	}
	return -1
}

// IndexNonASCII returns the index of the first byte >= 0x80, or -1.
// It checks 8 bytes at a time using SWAR (SIMD Within A Register).
func IndexNonASCII(data []byte) int {
	idx := 0
	for idx+8 <= len(data) {
		if binary.LittleEndian.Uint64(data[idx:])&hi8 != 0 {
			break
		}
		idx += 8
	}
	for ; idx < len(data); idx++ {
		if data[idx] >= 0x80 {
			return idx
		}
	}
	return -1
}

// IsASCIIString reports whether all bytes of s are below 0x80.
func IsASCIIString(s string) bool {
	i := 0
	for ; i+8 <= len(s); i += 8 {
		w := uint64(s[i]) | uint64(s[i+1])<<8 | uint64(s[i+2])<<16 | uint64(s[i+3])<<24 |
			uint64(s[i+4])<<32 | uint64(s[i+5])<<40 | uint64(s[i+6])<<48 | uint64(s[i+7])<<56
		if w&hi8 != 0 {
			return false
		}
	}
	for ; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
