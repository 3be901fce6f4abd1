package xterm

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/coregx/escseq"
	"github.com/coregx/escseq/dfa"
	"github.com/coregx/escseq/param"
)

// Event is one recognized sequence. It owns its fields and stays valid
// after the handler returns.
type Event struct {
	Sequence
	Params  param.Params
	Text    string
	HasText bool
	Raw     []byte
}

// String renders the event as NAME(params) or NAME("text").
func (e Event) String() string {
	var sb strings.Builder
	sb.WriteString(e.Name)
	switch {
	case e.HasText:
		fmt.Fprintf(&sb, "(%q)", e.Text)
	case e.Kind() == NumericParams:
		if ps := e.Params.String(); ps != "" {
			sb.WriteByte('(')
			sb.WriteString(ps)
			sb.WriteByte(')')
		}
	}
	return sb.String()
}

// TextWidth returns the number of terminal columns the text parameter
// occupies, for titles and similar strings meant to be displayed.
func (e Event) TextWidth() int {
	return TextWidth(e.Text)
}

// TextWidth returns the number of terminal columns s occupies. East Asian
// wide characters count two columns and combining marks none.
func TextWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Handler receives the events of a Processor created by NewProcessor.
type Handler interface {
	HandleSequence(ev Event)
}

// HandlerFunc is an adapter to allow the use of ordinary functions as
// handlers.
type HandlerFunc func(ev Event)

// HandleSequence calls f(ev).
func (f HandlerFunc) HandleSequence(ev Event) {
	f(ev)
}

// Recorder is a Handler that keeps every event.
type Recorder struct {
	Events []Event
}

// HandleSequence appends ev.
func (r *Recorder) HandleSequence(ev Event) {
	r.Events = append(r.Events, ev)
}

// Names returns the names of the recorded events in order.
func (r *Recorder) Names() []string {
	names := make([]string, len(r.Events))
	for i, ev := range r.Events {
		names[i] = ev.Name
	}
	return names
}

// Reset drops the recorded events.
func (r *Recorder) Reset() {
	r.Events = r.Events[:0]
}

// Handlers binds every entry of Sequences to Handler.HandleSequence.
var Handlers = escseq.NewHandlerSet("xterm", func(r *escseq.Registry[Handler]) {
	for _, s := range Sequences {
		r.HandleContext(s.Pattern, func(h Handler, ctx *dfa.Context) error {
			h.HandleSequence(newEvent(s, ctx))
			return nil
		})
	}
})

func newEvent(s Sequence, ctx *dfa.Context) Event {
	text, ok := ctx.TextParam()
	return Event{
		Sequence: s,
		Params:   ctx.Params().Clone(),
		Text:     text,
		HasText:  ok,
		Raw:      append([]byte(nil), ctx.Matched()...),
	}
}

// NewProcessor creates a processor reporting the sequences of the catalog
// to h.
func NewProcessor(h Handler, opts ...escseq.ProcessorOption) (*escseq.Processor, error) {
	return Handlers.NewProcessor(h, opts...)
}

// Patterns returns the patterns of the catalog in catalog order.
func Patterns() []string {
	out := make([]string, len(Sequences))
	for i, s := range Sequences {
		out[i] = s.Pattern
	}
	return out
}
