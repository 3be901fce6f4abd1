// Package pattern parses the declarative pattern language used to describe
// terminal escape sequences.
//
// A pattern is a compact, byte-oriented description of one control function:
//
//	{ESC}7              DECSC, save cursor
//	{CSI}{P*}m          SGR with any number of numeric parameters
//	{CSI}{P2}H          CUP with at most two numeric parameters
//	{ESC}[()*+][AB0]    designate a G0..G3 character set
//	{OSC}{P1};{Pt}{BEL} OSC with a code and a text parameter
//
// Syntax:
//
//	\X       the literal byte X (\\, \[, \], \{, \})
//	{NAME}   a C0/C1 control byte named by its mnemonic (ESC, CSI, ST, ...)
//	{P*}     zero or more numeric parameters separated by ';'
//	{Pn}     up to n numeric parameters (n >= 1)
//	{Pt}     a text parameter made of printable bytes
//	{Ps}     an opaque string of any bytes except SOS and ST
//	[...]    a set of bytes; supports escapes, {NAME} and A-Z ranges
//	X        any other byte stands for itself
//
// A pattern must end with a literal byte or a byte set, and may contain at
// most one numeric parameter placeholder.
package pattern

import (
	"strconv"
	"strings"
)

// Kind identifies the type of a pattern element.
type Kind uint8

const (
	// CharSet matches one byte out of a set of bytes.
	CharSet Kind = iota

	// ZeroOrMoreParams is the {P*} placeholder.
	ZeroOrMoreParams

	// NParams is the {Pn} placeholder.
	NParams

	// TextParam is the {Pt} placeholder.
	TextParam

	// StringParam is the {Ps} placeholder.
	StringParam
)

// String returns a human-readable representation of the element kind.
func (k Kind) String() string {
	switch k {
	case CharSet:
		return "CharSet"
	case ZeroOrMoreParams:
		return "ZeroOrMoreParams"
	case NParams:
		return "NParams"
	case TextParam:
		return "TextParam"
	case StringParam:
		return "StringParam"
	default:
		return "Unknown(" + strconv.Itoa(int(k)) + ")"
	}
}

// Element is one item of a parsed pattern.
type Element struct {
	Kind Kind

	// Bytes holds the sorted, de-duplicated members of a CharSet.
	Bytes []byte

	// N is the parameter count of an NParams element.
	N int
}

// IsNumeric reports whether the element is a numeric parameter placeholder.
func (e Element) IsNumeric() bool {
	return e.Kind == ZeroOrMoreParams || e.Kind == NParams
}

// IsParam reports whether the element is any parameter placeholder.
func (e Element) IsParam() bool {
	return e.Kind != CharSet
}

// String renders the element in pattern syntax. Parsing the result yields
// an equal element.
func (e Element) String() string {
	switch e.Kind {
	case ZeroOrMoreParams:
		return "{P*}"
	case NParams:
		return "{P" + strconv.Itoa(e.N) + "}"
	case TextParam:
		return "{Pt}"
	case StringParam:
		return "{Ps}"
	}
	if len(e.Bytes) == 1 {
		return quoteByte(e.Bytes[0])
	}
	var sb strings.Builder
	sb.WriteByte('[')
	for _, b := range e.Bytes {
		sb.WriteString(quoteByte(b))
	}
	sb.WriteByte(']')
	return sb.String()
}

func quoteByte(b byte) string {
	if name := Name(b); name != "" {
		return "{" + name + "}"
	}
	switch b {
	case '\\', '[', ']', '{', '}', '-':
		return `\` + string(rune(b))
	}
	return string([]byte{b})
}
