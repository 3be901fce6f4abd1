package nfa

import (
	"fmt"
	"math"

	"github.com/coregx/escseq/internal/conv"
	"github.com/coregx/escseq/pattern"
)

// DefaultMaxStates bounds the state arena. Compiled states are addressed by
// uint16 with 0 reserved, so larger graphs could not be compiled anyway.
const DefaultMaxStates = math.MaxUint16 - 1

// Builder assembles patterns into a shared graph rooted at one initial
// state, and reduces it on Build.
//
// Example:
//
//	b := nfa.NewBuilder()
//	if err := b.AddPattern("{CSI}{P*}m"); err != nil {
//	    return err
//	}
//	n, err := b.Build()
type Builder struct {
	states    []State
	initial   StateID
	patterns  []string
	seen      map[string]struct{}
	maxStates int
	overflow  bool
	built     bool
}

// BuildOption is a functional option for configuring a Builder
type BuildOption func(*Builder)

// WithMaxStates limits the number of states the builder may create,
// including states created during reduction. Values below 1 or above
// DefaultMaxStates are clamped to DefaultMaxStates.
func WithMaxStates(n int) BuildOption {
	return func(b *Builder) {
		if n < 1 || n > DefaultMaxStates {
			n = DefaultMaxStates
		}
		b.maxStates = n
	}
}

// NewBuilder creates a builder holding only the initial state.
func NewBuilder(opts ...BuildOption) *Builder {
	b := &Builder{
		states:    make([]State, 0, 64),
		seen:      make(map[string]struct{}),
		maxStates: DefaultMaxStates,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.initial = b.newState(StateNormal)
	return b
}

// States returns the current number of states
func (b *Builder) States() int {
	return len(b.states)
}

// Patterns returns the patterns added so far.
func (b *Builder) Patterns() []string {
	return b.patterns
}

func (b *Builder) newState(kind StateKind) StateID {
	if len(b.states) >= b.maxStates {
		b.overflow = true
	}
	id := StateID(conv.IntToUint32(len(b.states)))
	b.states = append(b.states, State{id: id, kind: kind})
	return id
}

func (b *Builder) addTransition(from StateID, t Transition) {
	b.states[from].transitions = append(b.states[from].transitions, t)
}

// AddPattern parses a pattern and adds it to the graph.
//
// Each element of the pattern adds one state reached from the previous
// one; the last element leads to a new final state that owns the pattern.
// Parameter placeholders become placeholder states and are expanded by
// Build.
//
// An ErrTooComplex error leaves the states of the rejected pattern in the
// graph; the Builder cannot be used after it, and Build fails too.
func (b *Builder) AddPattern(pat string) error {
	if b.built {
		return &CompileError{Pattern: pat, Err: ErrBuilt}
	}
	if _, dup := b.seen[pat]; dup {
		return &CompileError{Pattern: pat, Err: ErrDuplicatePattern}
	}
	elems, err := pattern.Parse(pat)
	if err != nil {
		return &CompileError{Pattern: pat, Err: err}
	}

	cur := b.initial
	for i, e := range elems {
		if i == len(elems)-1 {
			// Parse guarantees a CharSet here
			final := b.newState(StateFinal)
			b.states[final].pattern = pat
			b.addTransition(cur, Transition{Kind: TransByte, Bytes: e.Bytes, Next: final})
			break
		}

		var next StateID
		switch e.Kind {
		case pattern.CharSet:
			next = b.newState(StateNormal)
			b.addTransition(cur, Transition{Kind: TransByte, Bytes: e.Bytes, Next: next})
		case pattern.ZeroOrMoreParams:
			next = b.newState(StateNumericAny)
			b.addTransition(cur, transition(TransDigit, next))
		case pattern.NParams:
			next = b.newState(StateNumericN)
			b.states[next].count = e.N
			b.addTransition(cur, transition(TransDigit, next))
		case pattern.TextParam:
			next = b.newState(StateText)
			b.addTransition(cur, transition(TransPrintable, next))
		case pattern.StringParam:
			next = b.newState(StateString)
			b.addTransition(cur, transition(TransAnyChar, next))
		default:
			return &CompileError{Pattern: pat, Err: fmt.Errorf("unknown pattern element %v", e.Kind)}
		}
		cur = next
	}

	if b.overflow {
		return &CompileError{Pattern: pat, Err: ErrTooComplex}
	}
	b.seen[pat] = struct{}{}
	b.patterns = append(b.patterns, pat)
	return nil
}

// Validate checks that every transition targets a state of the arena and
// that final states have no transitions.
func (b *Builder) Validate() error {
	for i := range b.states {
		s := &b.states[i]
		if s.kind == StateFinal && len(s.transitions) != 0 {
			return &BuildError{Message: "final state has transitions", StateID: s.id}
		}
		for j, t := range s.transitions {
			if int(t.Next) >= len(b.states) {
				return &BuildError{
					Message: fmt.Sprintf("invalid transition %d target %d", j, t.Next),
					StateID: s.id,
				}
			}
		}
	}
	return nil
}

// Build reduces the graph and returns the resulting NFA. The builder cannot
// be used afterwards.
func (b *Builder) Build() (*NFA, error) {
	if b.built {
		return nil, &BuildError{StateID: InvalidState, Err: ErrBuilt}
	}
	b.built = true

	if err := b.reduce(); err != nil {
		return nil, err
	}
	if b.overflow {
		return nil, &BuildError{StateID: InvalidState, Err: ErrTooComplex}
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}

	return &NFA{
		states:   b.states,
		initial:  b.initial,
		patterns: b.patterns,
	}, nil
}
