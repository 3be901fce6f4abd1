package escseq

import (
	"github.com/coregx/escseq/dfa"
	"github.com/coregx/escseq/internal/scan"
)

// ProcessorOption is a functional option for configuring a Processor
type ProcessorOption func(*Processor)

// OnText sets the callback receiving characters outside escape sequences.
func OnText(fn func(r rune)) ProcessorOption {
	return func(p *Processor) {
		p.onText = fn
	}
}

// OnUnknown sets the callback receiving sequences that matched no pattern.
// The slice holds the characters read for the sequence, including the one
// that ended it, and is only valid during the call.
func OnUnknown(fn func(seq []rune)) ProcessorOption {
	return func(p *Processor) {
		p.onUnknown = fn
	}
}

// WithC1 sets the table of ESC forms translated into C1 controls.
// The default is XTermC1.
func WithC1(t *C1Table) ProcessorOption {
	return func(p *Processor) {
		p.c1 = t
	}
}

// Processor feeds a character stream through an Engine.
//
// Two-character ESC forms of C1 controls are translated before they reach
// the engine, so a pattern written with {CSI} also matches ESC [. Characters
// outside any sequence go to the OnText callback; a sequence the engine
// rejects goes to OnUnknown.
//
// A Processor is not safe for concurrent use.
type Processor struct {
	e         *dfa.Engine
	c1        *C1Table
	onText    func(rune)
	onUnknown func([]rune)
	escape    bool
	orig      [2]byte
	unknown   []rune
	stop      [256]bool // bytes that may start a sequence
}

// NewProcessor creates a processor driving e.
func NewProcessor(e *dfa.Engine, opts ...ProcessorOption) *Processor {
	p := &Processor{
		e:         e,
		c1:        &XTermC1,
		onText:    func(rune) {},
		onUnknown: func([]rune) {},
	}
	for _, opt := range opts {
		opt(p)
	}
	p.stop = *e.Automaton().StartBytes()
	p.stop[ESC] = true
	return p
}

// Engine returns the engine driven by the processor.
func (p *Processor) Engine() *dfa.Engine {
	return p.e
}

// Pending reports whether an escape sequence is being read.
func (p *Processor) Pending() bool {
	return p.escape || p.e.Running()
}

// Reset drops a partially read sequence without reporting it.
func (p *Processor) Reset() {
	p.escape = false
	p.e.Abort()
}

// Process processes one character.
func (p *Processor) Process(r rune) {
	if p.escape {
		p.escape = false
		p.afterEscape(r)
		return
	}
	if r == ESC {
		p.escape = true
		return
	}
	p.processChar(r)
}

// ProcessString processes every rune of s.
func (p *Processor) ProcessString(s string) {
	if scan.IsASCIIString(s) {
		p.ProcessBytes([]byte(s))
		return
	}
	for _, r := range s {
		p.Process(r)
	}
}

// ProcessBytes processes every byte of b as one character. Runs of bytes
// that cannot start a sequence are passed to OnText without entering the
// engine; they are accounted for with Engine.Skip, so callbacks, context
// and stats end up as with byte-at-a-time processing.
func (p *Processor) ProcessBytes(b []byte) {
	for i := 0; i < len(b); {
		if !p.Pending() {
			j := scan.IndexInTable(b[i:], &p.stop)
			if j < 0 {
				j = len(b) - i
			}
			p.e.Skip(j)
			for _, c := range b[i : i+j] {
				p.onText(rune(c))
			}
			i += j
			if i == len(b) {
				return
			}
		}
		p.Process(rune(b[i]))
		i++
	}
}

func (p *Processor) afterEscape(r rune) {
	if r <= 0xff {
		if c1, ok := p.c1.Lookup(byte(r)); ok {
			p.processByte(c1, ESC, byte(r))
			return
		}
	}
	p.processByte(ESC, ESC)
	p.processChar(r)
}

func (p *Processor) processChar(r rune) {
	if r <= 0xff {
		p.processByte(byte(r), byte(r))
		return
	}
	p.e.Abort()
	if m := p.e.Context().Matched(); len(m) > 0 {
		p.reportUnknown(m, nil, r)
		return
	}
	p.onText(r)
}

func (p *Processor) processByte(b byte, orig ...byte) {
	n := copy(p.orig[:], orig)
	if p.e.Process(b, p.orig[:n]...) {
		return
	}
	if m := p.e.Context().Matched(); len(m) > 0 {
		p.reportUnknown(m, p.orig[:n], -1)
		return
	}
	for _, c := range p.orig[:n] {
		p.onText(rune(c))
	}
}

// reportUnknown passes matched, then orig, then r (if >= 0) to OnUnknown.
func (p *Processor) reportUnknown(matched, orig []byte, r rune) {
	u := p.unknown[:0]
	for _, c := range matched {
		u = append(u, rune(c))
	}
	for _, c := range orig {
		u = append(u, rune(c))
	}
	if r >= 0 {
		u = append(u, r)
	}
	p.unknown = u
	p.onUnknown(u)
}
