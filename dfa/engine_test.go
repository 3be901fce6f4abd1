package dfa

import (
	"bytes"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"testing"
)

type match struct {
	pattern string
	params  []int
	text    string
	hasText bool
	matched string
}

type recorder struct {
	matches []match
}

func newTestEngine(t *testing.T, cfg Config, patterns ...string) (*Engine, *recorder) {
	t.Helper()
	a, err := compilePatterns(t, patterns...)
	if err != nil {
		t.Fatalf("Compile(): %v", err)
	}
	for _, p := range patterns {
		if err := a.Bind(p, func(ctx *Context) error {
			r := ctx.Executor().(*recorder)
			text, ok := ctx.TextParam()
			r.matches = append(r.matches, match{
				pattern: ctx.Pattern(),
				params:  ctx.Params().AllOr(-1),
				text:    text,
				hasText: ok,
				matched: string(ctx.Matched()),
			})
			return nil
		}); err != nil {
			t.Fatalf("Bind(%q): %v", p, err)
		}
	}
	if err := a.Freeze(); err != nil {
		t.Fatalf("Freeze(): %v", err)
	}
	rec := &recorder{}
	e, err := NewEngine(a, rec, cfg)
	if err != nil {
		t.Fatalf("NewEngine(): %v", err)
	}
	return e, rec
}

func feed(e *Engine, s string) (accepted int) {
	for i := 0; i < len(s); i++ {
		if e.Process(s[i]) {
			accepted++
		}
	}
	return accepted
}

var csiPatterns = []string{
	"{CSI}H",
	"{CSI}{P2}H",
	"{CSI}{P*}m",
	"{CSI}{P1}A",
	"{ESC}7",
	"{OSC}{Pt}{BEL}",
	"{OSC}{Pt}{ST}",
	"{DCS}{Ps}{ST}",
}

func TestEngineParams(t *testing.T) {
	tests := []struct {
		in      string
		pattern string
		params  []int
	}{
		{"\x9bH", "{CSI}H", []int{-1}},
		{"\x9b1;2H", "{CSI}{P2}H", []int{1, 2}},
		{"\x9b5H", "{CSI}{P2}H", []int{5}},
		{"\x9b;5H", "{CSI}{P2}H", []int{-1, 5}},
		{"\x9b5;H", "{CSI}{P2}H", []int{5, -1}},
		{"\x9bm", "{CSI}{P*}m", []int{-1}},
		{"\x9b0m", "{CSI}{P*}m", []int{0}},
		{"\x9b;m", "{CSI}{P*}m", []int{-1, -1}},
		{"\x9b11;22;m", "{CSI}{P*}m", []int{11, 22, -1}},
		{"\x9b1;;3m", "{CSI}{P*}m", []int{1, -1, 3}},
		{"\x9b1;2;3;4;5m", "{CSI}{P*}m", []int{1, 2, 3, 4, 5}},
		{"\x9b38:2:1m", "{CSI}{P*}m", []int{-1}},
		{"\x9bA", "{CSI}{P1}A", []int{-1}},
		{"\x9b12A", "{CSI}{P1}A", []int{12}},
		{"\x1b7", "{ESC}7", []int{-1}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+" "+tt.in[1:], func(t *testing.T) {
			e, rec := newTestEngine(t, DefaultConfig(), csiPatterns...)
			if got := feed(e, tt.in); got != len(tt.in) {
				t.Fatalf("accepted %d of %d bytes", got, len(tt.in))
			}
			if len(rec.matches) != 1 {
				t.Fatalf("got %d matches, want 1", len(rec.matches))
			}
			m := rec.matches[0]
			if m.pattern != tt.pattern {
				t.Errorf("pattern = %q, want %q", m.pattern, tt.pattern)
			}
			if !slices.Equal(m.params, tt.params) {
				t.Errorf("params = %v, want %v", m.params, tt.params)
			}
			if m.matched != tt.in {
				t.Errorf("matched = %q, want %q", m.matched, tt.in)
			}
		})
	}
}

func TestEngineCombination(t *testing.T) {
	var combo []int
	var single bool
	a, err := compilePatterns(t, "{CSI}{P*}m")
	if err != nil {
		t.Fatal(err)
	}
	_ = a.Bind("{CSI}{P*}m", func(ctx *Context) error {
		p := ctx.Params()
		combo = p.Combination(1)
		single = p.IsSingle(0)
		return nil
	})
	if err := a.Freeze(); err != nil {
		t.Fatal(err)
	}
	e, err := NewEngine(a, nil, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	feed(e, "\x9b1;38:2:10:20:30m")
	if !single {
		t.Error("IsSingle(0) = false")
	}
	if !slices.Equal(combo, []int{38, 2, 10, 20, 30}) {
		t.Errorf("Combination(1) = %v", combo)
	}
}

func TestEngineText(t *testing.T) {
	tests := []struct {
		in      string
		pattern string
		text    string
		hasText bool
	}{
		{"\x9dtitle\x07", "{OSC}{Pt}{BEL}", "title", true},
		{"\x9d0;a b\x9c", "{OSC}{Pt}{ST}", "0;a b", true},
		{"\x9d\x07", "{OSC}{Pt}{BEL}", "", false},
		{"\x90q\x1b\x80\x9c", "{DCS}{Ps}{ST}", "q\x1b\x80", true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			e, rec := newTestEngine(t, DefaultConfig(), csiPatterns...)
			if got := feed(e, tt.in); got != len(tt.in) {
				t.Fatalf("accepted %d of %d bytes", got, len(tt.in))
			}
			if len(rec.matches) != 1 {
				t.Fatalf("got %d matches, want 1", len(rec.matches))
			}
			m := rec.matches[0]
			if m.pattern != tt.pattern || m.text != tt.text || m.hasText != tt.hasText {
				t.Errorf("got %q text %q (%v), want %q text %q (%v)",
					m.pattern, m.text, m.hasText, tt.pattern, tt.text, tt.hasText)
			}
		})
	}
}

func TestEngineTextRejectsControl(t *testing.T) {
	e, rec := newTestEngine(t, DefaultConfig(), csiPatterns...)
	if got := feed(e, "\x9dab\x01"); got != 3 {
		t.Errorf("accepted %d bytes, want 3", got)
	}
	if len(rec.matches) != 0 {
		t.Errorf("unexpected matches %v", rec.matches)
	}
	if e.Phase() != Finished {
		t.Errorf("Phase() = %v, want Finished", e.Phase())
	}
}

func TestEnginePhases(t *testing.T) {
	e, rec := newTestEngine(t, DefaultConfig(), csiPatterns...)
	if e.Phase() != Finished {
		t.Fatalf("initial Phase() = %v, want Finished", e.Phase())
	}

	// rejected at the initial state: stays idle
	if e.Process('a') {
		t.Fatal("Process('a') accepted")
	}
	if e.Phase() != Idle {
		t.Errorf("Phase() after reject from idle = %v, want Idle", e.Phase())
	}

	if !e.Process(0x9b) || !e.Running() {
		t.Fatal("CSI not accepted")
	}
	if !e.Process('1') {
		t.Fatal("'1' not accepted")
	}
	if e.Process('x') {
		t.Fatal("'x' accepted")
	}
	if e.Phase() != Finished {
		t.Errorf("Phase() after reject = %v, want Finished", e.Phase())
	}
	// context is kept until the next attempt
	if got := string(e.Context().Matched()); got != "\x9b1" {
		t.Errorf("Matched() = %q, want %q", got, "\x9b1")
	}

	feed(e, "\x9b2m")
	if len(rec.matches) != 1 || !slices.Equal(rec.matches[0].params, []int{2}) {
		t.Fatalf("matches = %+v", rec.matches)
	}
	if e.Phase() != Finished {
		t.Errorf("Phase() after match = %v, want Finished", e.Phase())
	}

	e.Process(0x9b)
	e.Abort()
	if e.Phase() != Finished || e.Running() {
		t.Errorf("Phase() after Abort = %v", e.Phase())
	}
	e.Abort()
	if e.Phase() != Idle || len(e.Context().Matched()) != 0 {
		t.Errorf("second Abort: Phase() = %v, Matched() = %q", e.Phase(), e.Context().Matched())
	}

	s := e.Stats()
	if s.Matches != 1 || s.Rejected != 2 || s.Accepted != 6 {
		t.Errorf("Stats() = %+v", s)
	}
	e.Reset()
	if e.Stats() != (Stats{}) {
		t.Errorf("Stats() after Reset = %+v", e.Stats())
	}
}

func TestEngineReplay(t *testing.T) {
	e, rec := newTestEngine(t, DefaultConfig(), csiPatterns...)
	in := "\x9b1;2H\x9b1;2H\x9b1;2H"
	feed(e, in)
	if len(rec.matches) != 3 {
		t.Fatalf("got %d matches, want 3", len(rec.matches))
	}
	for i, m := range rec.matches {
		if !slices.Equal(m.params, []int{1, 2}) {
			t.Errorf("match %d params = %v, want [1 2]", i, m.params)
		}
		if m.matched != "\x9b1;2H" {
			t.Errorf("match %d matched %q", i, m.matched)
		}
	}
}

func TestEngineSkip(t *testing.T) {
	e, _ := newTestEngine(t, DefaultConfig(), csiPatterns...)
	feed(e, "\x9bm")
	if len(e.Context().Matched()) == 0 {
		t.Fatal("match should be kept until the next byte")
	}

	e.Skip(0)
	if len(e.Context().Matched()) == 0 || e.Phase() != Finished {
		t.Error("Skip(0) should change nothing")
	}

	before := e.Stats().Rejected
	e.Skip(3)
	if got := e.Context().Matched(); len(got) != 0 {
		t.Errorf("Matched() after Skip = %q, want empty", got)
	}
	if e.Phase() != Idle {
		t.Errorf("Phase() after Skip = %v, want Idle", e.Phase())
	}
	if got := e.Stats().Rejected - before; got != 3 {
		t.Errorf("Skip(3) rejected %d bytes, want 3", got)
	}
}

func TestEngineOrigBytes(t *testing.T) {
	e, rec := newTestEngine(t, DefaultConfig(), csiPatterns...)
	e.Process(0x9b, 0x1b, '[')
	e.Process('m')
	if len(rec.matches) != 1 || rec.matches[0].matched != "\x1b[m" {
		t.Fatalf("matches = %+v", rec.matches)
	}
}

func TestEngineLengthLimit(t *testing.T) {
	const pat = "X{Pt}{ST}"
	tests := []struct {
		name string
		n    int
		ok   bool
	}{
		{"below limit", MaxSequenceLength - 3, true},
		{"at limit", MaxSequenceLength - 2, true},
		{"over limit", MaxSequenceLength - 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, rec := newTestEngine(t, DefaultConfig(), pat)
			in := "X" + strings.Repeat("a", tt.n) + "\x9c"
			feed(e, in)
			if got := len(rec.matches) == 1; got != tt.ok {
				t.Fatalf("matched = %v, want %v", got, tt.ok)
			}
			if tt.ok && len(rec.matches[0].matched) != len(in) {
				t.Errorf("len(matched) = %d, want %d", len(rec.matches[0].matched), len(in))
			}
			if !tt.ok && e.Stats().Overflows != 1 {
				t.Errorf("Overflows = %d, want 1", e.Stats().Overflows)
			}
		})
	}
}

func TestEngineSmallLimit(t *testing.T) {
	e, rec := newTestEngine(t, DefaultConfig().WithMaxSequenceLength(4), "{CSI}{P*}m")
	feed(e, "\x9b12m")
	feed(e, "\x9b123m")
	if len(rec.matches) != 1 || !slices.Equal(rec.matches[0].params, []int{12}) {
		t.Errorf("matches = %+v", rec.matches)
	}
}

func TestEngineActionErrors(t *testing.T) {
	var logs bytes.Buffer
	var reported []*ActionError
	cfg := DefaultConfig().WithLogger(slog.New(slog.NewTextHandler(&logs, nil)))
	cfg.OnActionError = func(err *ActionError) { reported = append(reported, err) }

	errBoom := errors.New("boom")
	a, err := compilePatterns(t, "{ESC}7", "{ESC}8", "{ESC}9")
	if err != nil {
		t.Fatal(err)
	}
	_ = a.Bind("{ESC}7", func(*Context) error { return errBoom })
	_ = a.Bind("{ESC}8", func(*Context) error { panic("oops") })
	_ = a.Bind("{ESC}9", func(*Context) error { panic(errBoom) })
	if err := a.Freeze(); err != nil {
		t.Fatal(err)
	}
	e, err := NewEngine(a, nil, cfg)
	if err != nil {
		t.Fatal(err)
	}

	if got := feed(e, "\x1b7\x1b8\x1b9"); got != 6 {
		t.Errorf("accepted %d bytes, want 6", got)
	}
	if len(reported) != 3 {
		t.Fatalf("reported %d errors, want 3", len(reported))
	}
	if !errors.Is(reported[0], errBoom) || reported[0].Pattern != "{ESC}7" {
		t.Errorf("reported[0] = %v", reported[0])
	}
	if !strings.Contains(reported[1].Error(), "oops") {
		t.Errorf("reported[1] = %v", reported[1])
	}
	if !errors.Is(reported[2], errBoom) {
		t.Errorf("reported[2] = %v, want wrapping errBoom", reported[2])
	}
	if e.Stats().ActionErrors != 3 {
		t.Errorf("ActionErrors = %d, want 3", e.Stats().ActionErrors)
	}
	if !strings.Contains(logs.String(), "escape sequence action failed") {
		t.Errorf("log output = %q", logs.String())
	}
}

func TestEngineHooks(t *testing.T) {
	var trace []string
	cfg := DefaultConfig()
	cfg.Hooks = Hooks{
		Enter:  func(_ StateID, b byte) { trace = append(trace, "enter "+string([]byte{b})) },
		Exit:   func(StateID) { trace = append(trace, "exit") },
		Repeat: func(_ StateID, b byte) { trace = append(trace, "repeat "+string([]byte{b})) },
	}
	e, _ := newTestEngine(t, cfg, "{CSI}{P*}m")
	feed(e, "\x9b12m")
	want := []string{"exit", "enter \x9b", "exit", "enter 1", "repeat 2", "exit", "enter m"}
	if !slices.Equal(trace, want) {
		t.Errorf("trace = %q, want %q", trace, want)
	}
}

func TestNewEngineErrors(t *testing.T) {
	a, err := compilePatterns(t, "{ESC}7")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewEngine(a, nil, DefaultConfig()); !errors.Is(err, ErrNotFrozen) {
		t.Errorf("NewEngine(unfrozen) = %v, want ErrNotFrozen", err)
	}
	_ = a.Bind("{ESC}7", nop)
	if err := a.Freeze(); err != nil {
		t.Fatal(err)
	}
	if _, err := NewEngine(a, nil, Config{}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("NewEngine(zero config) = %v, want ErrInvalidConfig", err)
	}
	e, err := NewEngine(a, 42, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if e.Context().Executor() != 42 || e.Automaton() != a {
		t.Error("engine does not carry its executor and automaton")
	}
}
