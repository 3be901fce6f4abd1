package main

import (
	"bufio"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/coregx/escseq"
	"github.com/coregx/escseq/internal/scan"
	"github.com/coregx/escseq/xterm"
)

// tracer prints the text runs, events and unknown sequences of a stream.
type tracer struct {
	w       *bufio.Writer
	p       *escseq.Processor
	raw8bit bool
	eol     string
	text    []rune
	partial []byte // incomplete UTF-8 sequence at the end of the last chunk
	err     error
}

func newTracer(w io.Writer, raw8bit bool) (*tracer, error) {
	t := &tracer{w: bufio.NewWriter(w), raw8bit: raw8bit, eol: "\n"}
	p, err := xterm.NewProcessor(t,
		escseq.OnText(t.onText),
		escseq.OnUnknown(t.onUnknown))
	if err != nil {
		return nil, err
	}
	t.p = p
	return t, nil
}

// HandleSequence implements xterm.Handler.
func (t *tracer) HandleSequence(ev xterm.Event) {
	t.flushText()
	t.printf("SEQ     %s %q", ev, ev.Raw)
}

func (t *tracer) onText(r rune) {
	t.text = append(t.text, r)
}

func (t *tracer) onUnknown(seq []rune) {
	t.flushText()
	t.printf("UNKNOWN %q", string(seq))
}

func (t *tracer) flushText() {
	if len(t.text) == 0 {
		return
	}
	s := string(t.text)
	t.printf("TEXT    %q %d", s, xterm.TextWidth(s))
	t.text = t.text[:0]
}

func (t *tracer) printf(format string, args ...any) {
	if t.err != nil {
		return
	}
	if _, err := fmt.Fprintf(t.w, format+t.eol, args...); err != nil {
		t.err = err
	}
}

// traceAll feeds the whole of r.
func (t *tracer) traceAll(r io.Reader, c1 bool) error {
	if c1 {
		// ESC forms may straddle chunks, so normalize the input at once
		b, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		t.feed(b, true)
		return t.err
	}

	buf := make([]byte, 32*1024)
	for {
		n, err := r.Read(buf)
		t.feed(buf[:n], false)
		if err == io.EOF {
			return t.err
		}
		if err != nil {
			return err
		}
	}
}

// feed processes one chunk of input. The C1 rewrite produces bytes that
// are not valid UTF-8, so c1 input is always read as bytes.
func (t *tracer) feed(b []byte, c1 bool) {
	if c1 {
		t.p.ProcessBytes(escseq.ToC1(b))
		return
	}
	if t.raw8bit {
		t.p.ProcessBytes(b)
		return
	}

	if len(t.partial) > 0 {
		b = append(t.partial, b...)
		t.partial = nil
	}
	for len(b) > 0 {
		i := scan.IndexNonASCII(b)
		if i < 0 {
			t.p.ProcessBytes(b)
			return
		}
		t.p.ProcessBytes(b[:i])
		b = b[i:]
		if !utf8.FullRune(b) {
			t.partial = append([]byte(nil), b...)
			return
		}
		r, size := utf8.DecodeRune(b)
		t.p.Process(r)
		b = b[size:]
	}
}

// endInput processes a truncated UTF-8 sequence left at the end of the
// input as one invalid character.
func (t *tracer) endInput() {
	if len(t.partial) > 0 {
		t.p.Process(utf8.RuneError)
		t.partial = nil
	}
}

// flush prints a pending text run and writes the buffered output.
func (t *tracer) flush() error {
	t.flushText()
	if t.err != nil {
		return t.err
	}
	return t.w.Flush()
}
