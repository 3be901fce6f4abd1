package nfa

import (
	"slices"
)

// reduce rewrites the graph into its deterministic, capture-tagged form.
//
// Every reachable state is processed once, before its successors:
//
//  1. merge transitions with identical triggers into one destination
//  2. expand numeric placeholders into digit and separator states
//  3. expand text placeholders into a printable content state
//  4. expand opaque string placeholders into an any-byte content state
//  5. merge again, since expansion copies transitions onto the state
//
// This is not a subset construction. Capturing parameters needs to know
// whether a byte is part of a parameter, which a subset construction would
// lose, so states are merged instead of combined.
func (b *Builder) reduce() error {
	return walk(b.states, b.initial, func(id StateID) error {
		if err := b.mergeTransitions(id); err != nil {
			return err
		}
		b.expandNumeric(id)
		if err := b.expandText(id); err != nil {
			return err
		}
		if err := b.expandString(id); err != nil {
			return err
		}
		return b.mergeTransitions(id)
	}, func(id StateID) []Transition {
		return b.states[id].transitions
	})
}

// sameKind reports whether two destination states may be merged.
// A final state is only mergeable with itself.
func (b *Builder) sameKind(x, y StateID) bool {
	sx, sy := &b.states[x], &b.states[y]
	if sx.kind != sy.kind {
		return false
	}
	switch sx.kind {
	case StateFinal:
		return x == y
	case StateNumericN:
		return sx.count == sy.count
	}
	return true
}

// mergeTransitions folds transitions of id that share a trigger and lead to
// states of the same kind. The transitions of the dropped destination are
// copied into the surviving one; the dropped state is left intact because
// other transitions may still refer to it.
func (b *Builder) mergeTransitions(id StateID) error {
	orig := b.states[id].transitions
	merged := make([]Transition, 0, len(orig))
	for _, t := range orig {
		alt := -1
		for j := range merged {
			if t.identicalWith(merged[j]) && b.sameKind(t.Next, merged[j].Next) {
				alt = j
				break
			}
		}
		if alt < 0 {
			merged = append(merged, t)
			continue
		}

		survivor := merged[alt].Next
		origSelf, altSelf := t.Next == id, survivor == id
		if origSelf != altSelf {
			return &BuildError{StateID: id, Err: ErrSelfMerge}
		}
		if origSelf || t.Next == survivor {
			continue
		}
		b.copyTransitions(t.Next, survivor)
	}
	b.states[id].transitions = merged
	return nil
}

// copyTransitions appends the transitions of from to to. Destinations are
// kept, except that a self-transition of from becomes a self-transition of
// to.
func (b *Builder) copyTransitions(from, to StateID) {
	src := b.states[from].transitions
	for _, t := range src {
		if t.Next == from {
			t.Next = to
		}
		b.addTransition(to, t)
	}
}

// dropTransitions removes the transitions whose index is marked in drop.
// Transitions appended after drop was sized are kept.
func (b *Builder) dropTransitions(id StateID, drop []bool) {
	ts := b.states[id].transitions
	kept := ts[:0:0]
	for i, t := range ts {
		if i < len(drop) && drop[i] {
			continue
		}
		kept = append(kept, t)
	}
	b.states[id].transitions = kept
}

// expandNumeric replaces the numeric placeholders reached from base by one
// shared chain of parameter states:
//
//	base -digit-> N1 -digit-> N1
//	N1   -;-----> A1            (end of parameter 1)
//	base -;-----> A1            (parameter 1 omitted)
//	A1   -digit-> N2 ...        (and so on up to the largest n)
//
// where N states accumulate digits (and ':' for sub-combinations) and A
// states follow a separator. When a {P*} is present the chain gets one more
// parameter whose after-state loops on ';' and whose digit state returns to
// it on ';', accepting any number of parameters.
//
// A {Pn} places its terminators after n parameters, after n-1 parameters
// and a separator (the last one empty) and, for n >= 2, after n-1
// parameters. A {P*} places them on every state of the chain.
func (b *Builder) expandNumeric(base StateID) {
	maxN, hasAny := 0, false
	for _, t := range b.states[base].transitions {
		switch s := &b.states[t.Next]; s.kind {
		case StateNumericAny:
			hasAny = true
		case StateNumericN:
			maxN = max(maxN, s.count)
		}
	}
	if maxN == 0 && !hasAny {
		return
	}

	orig := slices.Clone(b.states[base].transitions)
	chain := b.numericChain(base, maxN, hasAny)
	drop := make([]bool, len(orig))
	for i, t := range orig {
		switch s := &b.states[t.Next]; s.kind {
		case StateNumericN:
			n := s.count
			b.copyTransitions(t.Next, chain[2*n-1])
			b.copyTransitions(t.Next, chain[2*n-2])
			if n >= 2 {
				b.copyTransitions(t.Next, chain[2*n-3])
			}
			b.states[t.Next].transitions = nil
			drop[i] = true
		case StateNumericAny:
			for _, st := range chain {
				b.copyTransitions(t.Next, st)
			}
			b.states[t.Next].transitions = nil
			drop[i] = true
		}
	}
	b.dropTransitions(base, drop)
}

// numericChain creates [base, N1, A1, N2, A2, ..., Nk] and wires it.
func (b *Builder) numericChain(base StateID, n int, hasAny bool) []StateID {
	params := n
	if hasAny {
		params++
	}

	chain := make([]StateID, 0, 2*params)
	for i := 0; i < params; i++ {
		if i == 0 {
			chain = append(chain, base)
		} else {
			chain = append(chain, b.newState(StateNormal))
		}
		chain = append(chain, b.newState(StateDigits))
	}

	for i := 0; i < params; i++ {
		if i > 0 {
			b.addTransition(chain[2*i-1], transition(TransSemicolon, chain[2*i]))
			b.addTransition(chain[2*i-2], transition(TransEmptyNumeric, chain[2*i]))
		}
		digits := chain[2*i+1]
		b.addTransition(chain[2*i], transition(TransDigit, digits))
		b.addTransition(digits, transition(TransDigit, digits))
		b.addTransition(digits, transition(TransColon, digits))
	}

	if hasAny {
		last := chain[2*params-2]
		b.addTransition(last, transition(TransEmptyNumeric, last))
		b.addTransition(chain[2*params-1], transition(TransSemicolon, last))
	}
	return chain
}

// expandText replaces each text placeholder reached from base:
//
//	base -printable-> T -printable-> T
//	T    -terminator-> next
//	base -terminator-> next      (empty text)
func (b *Builder) expandText(base StateID) error {
	return b.expandContent(base, StateText, StateTextContent, TransPrintable, func(c byte) bool {
		return !IsPrintable(c)
	}, ErrTextTerminator)
}

// expandString is expandText for opaque strings, which end with ST only.
func (b *Builder) expandString(base StateID) error {
	return b.expandContent(base, StateString, StateStringContent, TransAnyChar, func(c byte) bool {
		return c == 0x9c
	}, ErrStringTerminator)
}

func (b *Builder) expandContent(base StateID, placeholder, content StateKind, kind TransitionKind, terminator func(byte) bool, errBad error) error {
	orig := slices.Clone(b.states[base].transitions)
	drop := make([]bool, len(orig))
	for i, t := range orig {
		if b.states[t.Next].kind != placeholder {
			continue
		}
		param := t.Next
		for _, tt := range b.states[param].transitions {
			for _, c := range tt.Bytes {
				if !terminator(c) {
					return &BuildError{StateID: param, Err: errBad}
				}
			}
		}

		c := b.newState(content)
		b.addTransition(base, transition(kind, c))
		b.addTransition(c, transition(kind, c))
		b.copyTransitions(param, c)
		b.copyTransitions(param, base)
		b.states[param].transitions = nil
		drop[i] = true
	}
	b.dropTransitions(base, drop)
	return nil
}
