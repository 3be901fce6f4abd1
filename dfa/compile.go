package dfa

import (
	"fmt"

	"github.com/coregx/escseq/nfa"
)

// Compile converts a reduced NFA into an automaton.
//
// Every state reachable from the initial NFA state becomes one DFA state, in
// walk order. The kind of each transition follows from its destination:
// entering or repeating a digit state captures a numeric parameter,
// entering or repeating a text or string content state captures the text
// parameter, and a ';' leaving a digit state ends the parameter.
//
// The returned automaton has its initial state set but no actions; bind one
// to every pattern and Freeze it before creating engines.
func Compile(n *nfa.NFA) (*Automaton, error) {
	a := New()
	ids := make(map[nfa.StateID]StateID, n.Reachable())

	var order []*nfa.State
	var err error
	n.Walk(func(s *nfa.State) {
		if err != nil {
			return
		}
		var id StateID
		id, err = a.AddState(s.IsFinal(), s.Pattern())
		ids[s.ID()] = id
		order = append(order, s)
	})
	if err != nil {
		return nil, err
	}

	for _, s := range order {
		from := ids[s.ID()]
		for _, t := range s.Transitions() {
			next := n.State(t.Next)
			kind, err := transitionKind(s, t, next)
			if err != nil {
				return nil, err
			}
			tr := Transition{Next: ids[t.Next], Kind: kind}
			for _, b := range t.Bytes {
				if err := a.AddTransition(from, b, tr); err != nil {
					return nil, err
				}
			}
		}
	}

	if err := a.SetInitial(ids[n.Initial()]); err != nil {
		return nil, err
	}
	return a, nil
}

func transitionKind(from *nfa.State, t nfa.Transition, next *nfa.State) (TransitionKind, error) {
	self := next.ID() == from.ID()
	switch t.Kind {
	case nfa.TransEmptyNumeric, nfa.TransEmptyText:
		if k := next.Kind(); k != nfa.StateNormal && k != nfa.StateFinal {
			return TransNone, unexpectedState(next)
		}
		if t.Kind == nfa.TransEmptyNumeric {
			return TransEmptyNumeric, nil
		}
		return TransEmptyText, nil
	}

	switch next.Kind() {
	case nfa.StateDigits:
		if self {
			return TransUpdateNumeric, nil
		}
		return TransStartNumeric, nil
	case nfa.StateTextContent, nfa.StateStringContent:
		if self {
			return TransUpdateText, nil
		}
		return TransStartText, nil
	case nfa.StateNormal, nfa.StateFinal:
		if t.Kind == nfa.TransSemicolon && from.Kind() == nfa.StateDigits {
			return TransEndNumeric, nil
		}
		return TransNormal, nil
	}
	return TransNone, unexpectedState(next)
}

func unexpectedState(s *nfa.State) error {
	return &DFAError{
		Kind:    InvalidState,
		Message: fmt.Sprintf("unexpected state type: %v [NFA state %d]", s.Kind(), s.ID()),
	}
}
