package dfa

import "fmt"

// StateID identifies a state of a compiled automaton. Zero is never a valid
// state.
type StateID uint16

// NoState is the zero StateID.
const NoState StateID = 0

// TransitionKind tells the engine what a transition does to the parameters
// besides changing the state.
type TransitionKind uint8

const (
	// TransNone marks the absence of a transition.
	TransNone TransitionKind = iota

	// TransNormal only changes the state.
	TransNormal

	// TransStartNumeric starts a new numeric parameter with the input digit.
	TransStartNumeric

	// TransUpdateNumeric appends the input digit or ':' to the current
	// numeric parameter.
	TransUpdateNumeric

	// TransEndNumeric ends the current numeric parameter on ';'.
	TransEndNumeric

	// TransStartText starts the text parameter with the input byte.
	TransStartText

	// TransUpdateText appends the input byte to the text parameter.
	TransUpdateText

	// TransEmptyNumeric adds an empty numeric parameter.
	TransEmptyNumeric

	// TransEmptyText sets an empty text parameter.
	TransEmptyText
)

// String returns a human-readable representation of the TransitionKind
func (k TransitionKind) String() string {
	switch k {
	case TransNone:
		return "None"
	case TransNormal:
		return "Normal"
	case TransStartNumeric:
		return "StartNumeric"
	case TransUpdateNumeric:
		return "UpdateNumeric"
	case TransEndNumeric:
		return "EndNumeric"
	case TransStartText:
		return "StartText"
	case TransUpdateText:
		return "UpdateText"
	case TransEmptyNumeric:
		return "EmptyNumeric"
	case TransEmptyText:
		return "EmptyText"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Transition is one entry of a transition table.
type Transition struct {
	Next StateID
	Kind TransitionKind
}

// table maps bytes to transitions. It starts with 256 entries and is cut
// down to the range [lo, lo+len(entries)) by reduce.
type table struct {
	entries []Transition
	lo      int
}

func newTable() table {
	return table{entries: make([]Transition, 256)}
}

// get returns the transition for b, or the zero Transition.
func (t *table) get(b byte) Transition {
	i := int(b) - t.lo
	if i < 0 || i >= len(t.entries) {
		return Transition{}
	}
	return t.entries[i]
}

// add registers a transition for b. It returns the existing transition if
// another one is already registered.
func (t *table) add(b byte, tr Transition) (Transition, bool) {
	i := int(b) - t.lo
	if cur := t.entries[i]; cur.Kind != TransNone {
		return cur, false
	}
	t.entries[i] = tr
	return tr, true
}

// reduce drops the leading and trailing empty entries.
func (t *table) reduce() {
	first, last := -1, -1
	for i, tr := range t.entries {
		if tr.Kind == TransNone {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
	}
	if first < 0 {
		t.entries, t.lo = nil, 0
		return
	}
	entries := make([]Transition, last-first+1)
	copy(entries, t.entries[first:last+1])
	t.entries = entries
	t.lo += first
}

// each calls fn for every registered transition in byte order.
func (t *table) each(fn func(b byte, tr Transition)) {
	for i, tr := range t.entries {
		if tr.Kind != TransNone {
			fn(byte(t.lo+i), tr)
		}
	}
}

// count returns the number of registered transitions.
func (t *table) count() int {
	n := 0
	for _, tr := range t.entries {
		if tr.Kind != TransNone {
			n++
		}
	}
	return n
}

// size returns the number of table entries, including empty ones.
func (t *table) size() int {
	return len(t.entries)
}
