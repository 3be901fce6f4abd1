package nfa

import (
	"fmt"
	"strings"

	"github.com/coregx/escseq/internal/sparse"
)

// StateID uniquely identifies an NFA state.
// States live in an arena and are addressed by their index.
type StateID uint32

// InvalidState represents an invalid/uninitialized state ID
const InvalidState StateID = 0xFFFFFFFF

// StateKind identifies the structural kind of an NFA state.
//
// Placeholder kinds (NumericN, NumericAny, Text, String) exist only between
// graph assembly and reduction; a reduced NFA contains Normal, Final and the
// three content kinds.
type StateKind uint8

const (
	// StateNormal is an ordinary state.
	StateNormal StateKind = iota

	// StateFinal is the end of exactly one pattern.
	StateFinal

	// StateNumericN stands for {Pn} before expansion.
	StateNumericN

	// StateNumericAny stands for {P*} before expansion.
	StateNumericAny

	// StateText stands for {Pt} before expansion.
	StateText

	// StateString stands for {Ps} before expansion.
	StateString

	// StateDigits accumulates the digits of one numeric parameter.
	StateDigits

	// StateTextContent accumulates a text parameter.
	StateTextContent

	// StateStringContent accumulates an opaque string parameter.
	StateStringContent
)

// String returns a human-readable representation of the StateKind
func (k StateKind) String() string {
	switch k {
	case StateNormal:
		return "Normal"
	case StateFinal:
		return "Final"
	case StateNumericN:
		return "NumericN"
	case StateNumericAny:
		return "NumericAny"
	case StateText:
		return "Text"
	case StateString:
		return "String"
	case StateDigits:
		return "Digits"
	case StateTextContent:
		return "TextContent"
	case StateStringContent:
		return "StringContent"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// IsPlaceholder reports whether the kind only exists before reduction.
func (k StateKind) IsPlaceholder() bool {
	return k >= StateNumericN && k <= StateString
}

// TransitionKind classifies the trigger of a transition.
type TransitionKind uint8

const (
	// TransByte is triggered by an explicit byte set from a pattern.
	TransByte TransitionKind = iota

	// TransDigit is triggered by '0'..'9'.
	TransDigit

	// TransPrintable is triggered by a byte of a text parameter.
	TransPrintable

	// TransAnyChar is triggered by a byte of an opaque string.
	TransAnyChar

	// TransSemicolon ends a numeric parameter.
	TransSemicolon

	// TransColon separates the items of a numeric sub-combination.
	TransColon

	// TransEmptyNumeric records an omitted numeric parameter.
	TransEmptyNumeric

	// TransEmptyText records an empty text parameter.
	TransEmptyText
)

// String returns a human-readable representation of the TransitionKind
func (k TransitionKind) String() string {
	switch k {
	case TransByte:
		return "Byte"
	case TransDigit:
		return "Digit"
	case TransPrintable:
		return "Printable"
	case TransAnyChar:
		return "AnyChar"
	case TransSemicolon:
		return "Semicolon"
	case TransColon:
		return "Colon"
	case TransEmptyNumeric:
		return "EmptyNumeric"
	case TransEmptyText:
		return "EmptyText"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Byte classes shared by all transitions of the given kinds. They are never
// modified after initialization.
var (
	digitBytes     = byteRange('0', '9')
	semicolonBytes = []byte{';'}
	colonBytes     = []byte{':'}

	// BS..CR and SP..'~'
	printableBytes = append(byteRange(0x08, 0x0d), byteRange(0x20, 0x7e)...)

	// everything except SOS and ST
	anyCharBytes = func() []byte {
		b := make([]byte, 0, 254)
		for c := 0; c < 256; c++ {
			if c != 0x98 && c != 0x9c {
				b = append(b, byte(c))
			}
		}
		return b
	}()
)

func byteRange(lo, hi byte) []byte {
	b := make([]byte, 0, int(hi)-int(lo)+1)
	for c := int(lo); c <= int(hi); c++ {
		b = append(b, byte(c))
	}
	return b
}

// IsPrintable reports whether b may appear inside a text parameter.
func IsPrintable(b byte) bool {
	return (b >= 0x08 && b <= 0x0d) || (b >= 0x20 && b <= 0x7e)
}

// Transition is an edge of the NFA graph.
type Transition struct {
	Kind  TransitionKind
	Bytes []byte // triggering bytes; shared, must not be modified
	Next  StateID
}

func transition(kind TransitionKind, next StateID) Transition {
	var b []byte
	switch kind {
	case TransDigit:
		b = digitBytes
	case TransPrintable:
		b = printableBytes
	case TransAnyChar:
		b = anyCharBytes
	case TransSemicolon, TransEmptyNumeric:
		b = semicolonBytes
	case TransColon:
		b = colonBytes
	}
	return Transition{Kind: kind, Bytes: b, Next: next}
}

// identicalWith reports whether t can be merged with other: both are
// triggered by the same bytes in the same way.
//
// The relation is not symmetric. A plain byte transition matches any of the
// byte-triggered kinds with equal bytes, while the class kinds only match
// their own kind.
func (t Transition) identicalWith(other Transition) bool {
	switch t.Kind {
	case TransByte:
		switch other.Kind {
		case TransByte, TransDigit, TransPrintable, TransAnyChar, TransSemicolon, TransColon:
			return sameBytes(t.Bytes, other.Bytes)
		}
		return false
	case TransDigit, TransSemicolon, TransColon:
		return other.Kind == t.Kind
	default:
		return other.Kind == t.Kind && sameBytes(t.Bytes, other.Bytes)
	}
}

func sameBytes(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Description renders the trigger for diagnostics and graph dumps.
func (t Transition) Description() string {
	switch t.Kind {
	case TransDigit:
		return "(Digit)"
	case TransPrintable:
		return "(Printable)"
	case TransAnyChar:
		return "(AnyChar)"
	case TransEmptyNumeric:
		return "EmptyN:" + describeBytes(t.Bytes)
	case TransEmptyText:
		return "EmptyT:" + describeBytes(t.Bytes)
	}
	return describeBytes(t.Bytes)
}

func describeBytes(b []byte) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for _, c := range b {
		if c >= 0x20 && c <= 0x7e {
			sb.WriteByte(c)
		} else {
			fmt.Fprintf(&sb, "\\x%02x", c)
		}
	}
	sb.WriteByte(']')
	return sb.String()
}

// State represents a single NFA state with its transitions.
type State struct {
	id          StateID
	kind        StateKind
	pattern     string // StateFinal only
	count       int    // StateNumericN only
	transitions []Transition
}

// ID returns the state's unique identifier
func (s *State) ID() StateID {
	return s.id
}

// Kind returns the state's type
func (s *State) Kind() StateKind {
	return s.kind
}

// IsFinal returns true if this is a final state
func (s *State) IsFinal() bool {
	return s.kind == StateFinal
}

// Pattern returns the pattern a final state belongs to, or "".
func (s *State) Pattern() string {
	return s.pattern
}

// Count returns the parameter count of a NumericN state, or 0.
func (s *State) Count() int {
	return s.count
}

// Transitions returns the outgoing transitions.
// The returned slice must not be modified.
func (s *State) Transitions() []Transition {
	return s.transitions
}

// Description renders the state for diagnostics and graph dumps.
func (s *State) Description() string {
	switch s.kind {
	case StateFinal:
		return fmt.Sprintf("Final:S%d", s.id)
	case StateNumericN:
		return fmt.Sprintf("P%d:S%d", s.count, s.id)
	case StateNumericAny:
		return fmt.Sprintf("Pm:S%d", s.id)
	case StateText:
		return fmt.Sprintf("Pt:S%d", s.id)
	case StateString:
		return fmt.Sprintf("Ps:S%d", s.id)
	case StateDigits:
		return fmt.Sprintf("N:S%d", s.id)
	case StateTextContent:
		return fmt.Sprintf("T:S%d", s.id)
	case StateStringContent:
		return fmt.Sprintf("S:S%d", s.id)
	default:
		return fmt.Sprintf("S%d", s.id)
	}
}

// NFA is an escape-sequence automaton produced by Builder.
//
// A built NFA is reduced: it has no placeholder states, parameter capture is
// expressed through the content state kinds, and no state has two mergeable
// transitions. The states reachable from the initial state form the graph
// that package dfa compiles.
type NFA struct {
	states   []State
	initial  StateID
	patterns []string
}

// Initial returns the initial state ID.
func (n *NFA) Initial() StateID {
	return n.initial
}

// State returns the state with the given ID, or nil if the ID is invalid.
func (n *NFA) State(id StateID) *State {
	if int(id) >= len(n.states) {
		return nil
	}
	return &n.states[id]
}

// States returns the size of the state arena, including states that became
// unreachable during reduction.
func (n *NFA) States() int {
	return len(n.states)
}

// Patterns returns the patterns in the order they were added.
func (n *NFA) Patterns() []string {
	return n.patterns
}

// Walk calls fn for every state reachable from the initial state, in
// depth-first pre-order. Transitions are followed in their stored order.
func (n *NFA) Walk(fn func(*State)) {
	_ = walk(n.states, n.initial, func(id StateID) error {
		fn(&n.states[id])
		return nil
	}, func(id StateID) []Transition {
		return n.states[id].transitions
	})
}

// Reachable returns the number of states reachable from the initial state.
func (n *NFA) Reachable() int {
	count := 0
	n.Walk(func(*State) { count++ })
	return count
}

// walk is the pre-order traversal shared by reduction and Walk. fn runs on
// a state before its successors are collected, so fn may rewrite the
// state's transitions and add states.
func walk(states []State, start StateID, fn func(StateID) error, edges func(StateID) []Transition) error {
	seen := sparse.NewSparseSet(len(states))
	var visit func(id StateID) error
	visit = func(id StateID) error {
		if err := fn(id); err != nil {
			return err
		}
		seen.Insert(uint32(id))
		ts := edges(id)
		next := make([]StateID, len(ts))
		for i, t := range ts {
			next[i] = t.Next
		}
		for _, s := range next {
			if seen.Contains(uint32(s)) {
				continue
			}
			if err := visit(s); err != nil {
				return err
			}
		}
		return nil
	}
	return visit(start)
}
