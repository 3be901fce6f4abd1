// Package nfa assembles escape-sequence patterns into a non-deterministic
// automaton and reduces it to the deterministic, capture-tagged graph that
// package dfa compiles into transition tables.
//
// Parameter placeholders ({P*}, {Pn}, {Pt}, {Ps}) first become placeholder
// states so that patterns sharing a prefix merge cleanly. Reduction then
// expands every placeholder into explicit content states and merges
// transitions until no state has two transitions for the same trigger
// leading to states of the same kind.
package nfa

import (
	"errors"
	"fmt"
)

// Common NFA errors
var (
	// ErrDuplicatePattern indicates the same pattern was added twice
	ErrDuplicatePattern = errors.New("duplicate pattern")

	// ErrSelfMerge indicates a self-transition and a non-self-transition
	// share a trigger and cannot be merged
	ErrSelfMerge = errors.New("cannot merge self-transition and non-self-transition")

	// ErrTextTerminator indicates a text parameter is followed by a printable byte
	ErrTextTerminator = errors.New("terminator of a text parameter must be a non-printable byte")

	// ErrStringTerminator indicates an opaque string is not terminated by ST
	ErrStringTerminator = errors.New("terminator of an opaque string must be ST")

	// ErrTooComplex indicates the graph needs more states than allowed
	ErrTooComplex = errors.New("too many NFA states")

	// ErrBuilt indicates the Builder was used after Build
	ErrBuilt = errors.New("builder has already been built")
)

// CompileError wraps an error raised while adding one pattern.
type CompileError struct {
	Pattern string
	Err     error
}

// Error implements the error interface
func (e *CompileError) Error() string {
	return fmt.Sprintf("cannot add pattern %q: %v", e.Pattern, e.Err)
}

// Unwrap returns the underlying error
func (e *CompileError) Unwrap() error {
	return e.Err
}

// BuildError represents an error during reduction of the graph.
type BuildError struct {
	Message string
	StateID StateID
	Err     error
}

// Error implements the error interface
func (e *BuildError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.StateID != InvalidState {
		return fmt.Sprintf("NFA build error at state %d: %s", e.StateID, msg)
	}
	return fmt.Sprintf("NFA build error: %s", msg)
}

// Unwrap returns the underlying error
func (e *BuildError) Unwrap() error {
	return e.Err
}
