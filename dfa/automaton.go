package dfa

import (
	"slices"
	"strconv"
	"strings"

	"github.com/coregx/escseq/internal/conv"
)

// Action runs when the final state of its pattern is entered. The returned
// error is reported through the engine's logger and Config.OnActionError.
type Action func(ctx *Context) error

// State is a state of a compiled automaton.
type State struct {
	id      StateID
	final   bool
	pattern string
	action  Action
	table   table
}

// ID returns the state's identifier
func (s *State) ID() StateID {
	return s.id
}

// IsFinal returns true if this is a final state
func (s *State) IsFinal() bool {
	return s.final
}

// Pattern returns the pattern of a final state, or "".
func (s *State) Pattern() string {
	return s.pattern
}

// HasAction reports whether an action is bound to a final state.
func (s *State) HasAction() bool {
	return s.action != nil
}

// Transition returns the transition taken on b. Its Kind is TransNone if
// there is none.
func (s *State) Transition(b byte) Transition {
	return s.table.get(b)
}

// EachTransition calls fn for every transition in byte order.
func (s *State) EachTransition(fn func(b byte, t Transition)) {
	s.table.each(fn)
}

// TableSize returns the number of transition-table entries held by the
// state, including empty ones between the lowest and highest byte.
func (s *State) TableSize() int {
	return s.table.size()
}

// Automaton is a deterministic escape-sequence automaton.
//
// States are created with AddState and connected with AddTransition, or
// all at once by Compile. After Freeze the automaton is immutable and safe
// for concurrent use by any number of engines.
type Automaton struct {
	states  []*State // states[0] is nil
	initial StateID
	finals  map[string]StateID
	frozen  bool
	reduced bool
	start   [256]bool
}

// New creates an empty automaton.
func New() *Automaton {
	return &Automaton{
		states: []*State{nil},
		finals: make(map[string]StateID),
	}
}

// AddState adds a state. A final state owns pattern, which must be unique
// among final states.
func (a *Automaton) AddState(final bool, pattern string) (StateID, error) {
	if err := a.mutable(); err != nil {
		return NoState, err
	}
	if len(a.states) > int(^StateID(0)) {
		return NoState, newError(TooManyStates, "too many DFA states (%d)", len(a.states))
	}
	id := StateID(conv.IntToUint16(len(a.states)))
	if final {
		if _, dup := a.finals[pattern]; dup {
			return NoState, newError(InvalidState, "final state of the pattern %q already exists", pattern)
		}
		a.finals[pattern] = id
	} else {
		pattern = ""
	}
	a.states = append(a.states, &State{id: id, final: final, pattern: pattern, table: newTable()})
	return id, nil
}

// AddTransition registers the transition of from on b. Registering the same
// transition twice is allowed; a different one for the same byte is a
// *ConflictError.
func (a *Automaton) AddTransition(from StateID, b byte, t Transition) error {
	if err := a.mutable(); err != nil {
		return err
	}
	s := a.State(from)
	if s == nil {
		return newError(InvalidState, "no state matched. [ID=%d]", from)
	}
	if t.Kind == TransNone {
		return newError(InvalidState, "transition without kind. [ID=%d]", from)
	}
	if cur, ok := s.table.add(b, t); !ok && cur != t {
		return &ConflictError{Byte: b, Kind: t.Kind, State: from, Existing: cur.Next, Next: t.Next}
	}
	return nil
}

// SetInitial sets the initial state. It can be set only once.
func (a *Automaton) SetInitial(id StateID) error {
	if err := a.mutable(); err != nil {
		return err
	}
	if a.initial != NoState {
		return newError(InvalidState, "initial state has been already set")
	}
	if a.State(id) == nil {
		return newError(InvalidState, "no state matched. [ID=%d]", id)
	}
	a.initial = id
	return nil
}

// Bind sets the action of the final state of pattern.
func (a *Automaton) Bind(pattern string, action Action) error {
	if a.frozen {
		return ErrFrozen
	}
	id, ok := a.finals[pattern]
	if !ok {
		return &DFAError{Kind: PatternNotFound, Message: "final state of the pattern " + strconv.Quote(pattern) + " not found"}
	}
	s := a.states[id]
	if s.action != nil {
		return &DFAError{Kind: ActionAlreadyBound, Message: "action was already bound to " + strconv.Quote(pattern)}
	}
	s.action = action
	return nil
}

// State returns the state with the given ID, or nil.
func (a *Automaton) State(id StateID) *State {
	if id == NoState || int(id) >= len(a.states) {
		return nil
	}
	return a.states[id]
}

// Initial returns the initial state ID, or NoState if it is not set.
func (a *Automaton) Initial() StateID {
	return a.initial
}

// States returns the number of states.
func (a *Automaton) States() int {
	return len(a.states) - 1
}

// Patterns returns the patterns of all final states, sorted.
func (a *Automaton) Patterns() []string {
	p := make([]string, 0, len(a.finals))
	for pat := range a.finals {
		p = append(p, pat)
	}
	slices.Sort(p)
	return p
}

// Final returns the final state of pattern.
func (a *Automaton) Final(pattern string) (StateID, bool) {
	id, ok := a.finals[pattern]
	return id, ok
}

// Frozen reports whether Freeze has succeeded.
func (a *Automaton) Frozen() bool {
	return a.frozen
}

// CanStart reports whether b has a transition from the initial state.
// Valid after Freeze.
func (a *Automaton) CanStart(b byte) bool {
	return a.start[b]
}

// StartBytes returns the table behind CanStart.
func (a *Automaton) StartBytes() *[256]bool {
	return &a.start
}

// CheckConsistency verifies the structure of the automaton:
//
//   - a final state has an action and no transitions
//   - a non-final state has at least one transition
//   - every transition leads to a state of the automaton
//   - every state other than the initial one is the destination of some
//     transition
func (a *Automaton) CheckConsistency() error {
	if a.initial == NoState {
		return inconsistent("initial state is not set")
	}
	referred := make([]bool, len(a.states))
	referred[a.initial] = true
	for _, s := range a.states[1:] {
		if s.final {
			if s.action == nil {
				return inconsistent("no action is assigned to the final state. [ID=%d, Pattern=%q]", s.id, s.pattern)
			}
			if s.table.count() != 0 {
				return inconsistent("final state must have no transitions. [ID=%d]", s.id)
			}
			continue
		}
		var bad error
		s.table.each(func(_ byte, t Transition) {
			if bad != nil {
				return
			}
			if a.State(t.Next) == nil {
				bad = inconsistent("invalid destination state ID. [ID=%d -> dest=%d]", s.id, t.Next)
				return
			}
			referred[t.Next] = true
		})
		if bad != nil {
			return bad
		}
		if s.table.count() == 0 {
			return inconsistent("non-final state must have transitions. [ID=%d]", s.id)
		}
	}

	var orphans []string
	for id := 1; id < len(referred); id++ {
		if !referred[id] {
			orphans = append(orphans, strconv.Itoa(id))
		}
	}
	if len(orphans) > 0 {
		return inconsistent("orphan states. [ID=%s]", strings.Join(orphans, ", "))
	}
	return nil
}

func inconsistent(format string, args ...any) error {
	return &DFAError{Kind: Inconsistent, Message: "inconsistent automaton", Cause: newError(Inconsistent, format, args...)}
}

// ReduceSize shrinks every transition table to the range of bytes it uses.
// States and transitions cannot be added afterwards; actions can still be
// bound.
func (a *Automaton) ReduceSize() {
	for _, s := range a.states[1:] {
		s.table.reduce()
	}
	a.states = slices.Clip(a.states)
	a.reduced = true
}

// mutable reports ErrFrozen once the graph can no longer change.
func (a *Automaton) mutable() error {
	switch {
	case a.frozen:
		return ErrFrozen
	case a.reduced:
		return newError(Frozen, "automaton tables have been reduced")
	}
	return nil
}

// Freeze checks the automaton, reduces its size and makes it immutable.
func (a *Automaton) Freeze() error {
	if a.frozen {
		return nil
	}
	if err := a.CheckConsistency(); err != nil {
		return err
	}
	a.ReduceSize()
	a.states[a.initial].table.each(func(b byte, _ Transition) {
		a.start[b] = true
	})
	a.frozen = true
	return nil
}
