package dfa

import (
	"fmt"
)

// ErrInvalidConfig indicates that the provided configuration is invalid.
var ErrInvalidConfig = &DFAError{
	Kind:    InvalidConfig,
	Message: "invalid DFA configuration",
}

// ErrActionAlreadyBound indicates that a second action was bound to the
// final state of a pattern.
var ErrActionAlreadyBound = &DFAError{
	Kind:    ActionAlreadyBound,
	Message: "action was already bound",
}

// ErrPatternNotFound indicates that no final state exists for a pattern.
var ErrPatternNotFound = &DFAError{
	Kind:    PatternNotFound,
	Message: "final state of the pattern not found",
}

// ErrInconsistent indicates that the automaton violates one of its
// structural invariants.
var ErrInconsistent = &DFAError{
	Kind:    Inconsistent,
	Message: "inconsistent automaton",
}

// ErrConflict matches every *ConflictError with errors.Is.
var ErrConflict = &DFAError{
	Kind:    Conflict,
	Message: "transitions conflict",
}

// ErrFrozen indicates a modification of a frozen automaton.
var ErrFrozen = &DFAError{
	Kind:    Frozen,
	Message: "automaton is frozen",
}

// ErrNotFrozen indicates an engine was requested for an automaton that has
// not been frozen yet.
var ErrNotFrozen = &DFAError{
	Kind:    NotFrozen,
	Message: "automaton is not frozen",
}

// ErrorKind classifies DFA errors into categories
type ErrorKind uint8

const (
	// InvalidConfig indicates configuration validation failed
	InvalidConfig ErrorKind = iota

	// InvalidState indicates a state ID outside the automaton, or a state
	// that cannot be converted
	InvalidState

	// Conflict indicates two transitions registered for the same byte
	Conflict

	// ActionAlreadyBound indicates a final state bound twice
	ActionAlreadyBound

	// PatternNotFound indicates a missing final state
	PatternNotFound

	// Inconsistent indicates a failed consistency check
	Inconsistent

	// Frozen indicates a modification after Freeze
	Frozen

	// NotFrozen indicates use before Freeze
	NotFrozen

	// TooManyStates indicates the graph does not fit in StateID
	TooManyStates
)

// String returns a human-readable error kind name
func (k ErrorKind) String() string {
	switch k {
	case InvalidConfig:
		return "InvalidConfig"
	case InvalidState:
		return "InvalidState"
	case Conflict:
		return "Conflict"
	case ActionAlreadyBound:
		return "ActionAlreadyBound"
	case PatternNotFound:
		return "PatternNotFound"
	case Inconsistent:
		return "Inconsistent"
	case Frozen:
		return "Frozen"
	case NotFrozen:
		return "NotFrozen"
	case TooManyStates:
		return "TooManyStates"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", k)
	}
}

// DFAError represents an error that occurred while building or running an
// automaton.
type DFAError struct {
	Kind    ErrorKind
	Message string
	Cause   error // Optional underlying error
}

// Error implements the error interface
func (e *DFAError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error (for errors.Is/As)
func (e *DFAError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison for errors.Is
func (e *DFAError) Is(target error) bool {
	t, ok := target.(*DFAError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func newError(kind ErrorKind, format string, args ...any) *DFAError {
	return &DFAError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// ConflictError reports two transitions of one state triggered by the same
// byte.
type ConflictError struct {
	Byte     byte
	Kind     TransitionKind
	State    StateID
	Existing StateID // destination already registered
	Next     StateID // destination of the rejected transition
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return fmt.Sprintf("transitions conflict: b=0x%02x kind=%v src=%d dest=%d (existing dest=%d)",
		e.Byte, e.Kind, e.State, e.Next, e.Existing)
}

// Is implements error comparison for errors.Is
func (e *ConflictError) Is(target error) bool {
	t, ok := target.(*DFAError)
	return ok && t.Kind == Conflict
}

// ActionError wraps an error returned by, or a panic raised in, the action of
// a pattern.
type ActionError struct {
	Pattern string
	Err     error
}

// Error implements the error interface
func (e *ActionError) Error() string {
	return fmt.Sprintf("action of %q failed: %v", e.Pattern, e.Err)
}

// Unwrap returns the underlying error
func (e *ActionError) Unwrap() error {
	return e.Err
}
