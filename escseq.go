// Package escseq recognizes terminal escape sequences (ANSI, VT and xterm)
// in a live character stream and dispatches them to handlers together with
// their parameters.
//
// Sequences are described by patterns such as "{CSI}{P*}m" or
// "{OSC}0;{Pt}{BEL}". A set of patterns is compiled once into a
// deterministic automaton; every stream then gets a lightweight Processor
// that feeds characters through it, hands plain text to one callback and
// sequences it cannot recognize to another.
//
// Basic usage:
//
//	type Screen struct{ ... }
//
//	var screenHandlers = escseq.NewHandlerSet("screen", func(r *escseq.Registry[*Screen]) {
//	    r.HandleNumeric("{CSI}{P*}m", (*Screen).SetGraphicRendition)
//	    r.HandleText("{OSC}0;{Pt}{BEL}", (*Screen).SetTitle)
//	})
//
//	p, err := screenHandlers.NewProcessor(screen,
//	    escseq.OnText(screen.Put),
//	    escseq.OnUnknown(screen.Unknown))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	p.ProcessString("\x1b[1;31mhello\x1b[m")
//
// Pattern syntax:
//
//	{NAME}   control character by mnemonic ({ESC}, {CSI}, {BEL}, ...)
//	[...]    one byte out of a set; ranges like [0-9]
//	\X       literal X
//	{P*}     zero or more numeric parameters separated by ';'
//	{Pn}     up to n numeric parameters, n >= 1
//	{Pt}     a printable text parameter
//	{Ps}     an opaque string parameter, terminated by ST
//
// Numeric parameters may carry ':'-separated sub-parameters ("38:2:255:0:0")
// which are read with param.Params.Combination.
//
// A compiled automaton is immutable and shared by all engines created from
// it. Engines and processors are not safe for concurrent use.
package escseq

import (
	"errors"
	"fmt"

	"github.com/coregx/escseq/dfa"
	"github.com/coregx/escseq/nfa"
)

// ErrNilHandler indicates a nil handler was registered for a pattern.
var ErrNilHandler = errors.New("nil handler")

// Rule pairs a pattern with the action run when it matches.
type Rule struct {
	Pattern string
	Action  dfa.Action
}

// Compile builds a frozen automaton from rules.
//
// Example:
//
//	a, err := escseq.Compile(
//	    escseq.Rule{Pattern: "{ESC}7", Action: saveCursor},
//	    escseq.Rule{Pattern: "{ESC}8", Action: restoreCursor},
//	)
func Compile(rules ...Rule) (*dfa.Automaton, error) {
	b := nfa.NewBuilder()
	for _, r := range rules {
		if r.Action == nil {
			return nil, fmt.Errorf("pattern %q: %w", r.Pattern, ErrNilHandler)
		}
		if err := b.AddPattern(r.Pattern); err != nil {
			return nil, err
		}
	}
	n, err := b.Build()
	if err != nil {
		return nil, err
	}
	a, err := dfa.Compile(n)
	if err != nil {
		return nil, err
	}
	for _, r := range rules {
		if err := a.Bind(r.Pattern, r.Action); err != nil {
			return nil, err
		}
	}
	if err := a.Freeze(); err != nil {
		return nil, err
	}
	return a, nil
}

// MustCompile is like Compile but panics if the rules cannot be compiled.
func MustCompile(rules ...Rule) *dfa.Automaton {
	a, err := Compile(rules...)
	if err != nil {
		panic("escseq: Compile: " + err.Error())
	}
	return a
}
