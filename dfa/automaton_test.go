package dfa

import (
	"errors"
	"strings"
	"testing"

	"github.com/coregx/escseq/nfa"
)

func compilePatterns(t *testing.T, patterns ...string) (*Automaton, error) {
	t.Helper()
	b := nfa.NewBuilder()
	for _, p := range patterns {
		if err := b.AddPattern(p); err != nil {
			t.Fatalf("AddPattern(%q): %v", p, err)
		}
	}
	n, err := b.Build()
	if err != nil {
		t.Fatalf("Build(): %v", err)
	}
	return Compile(n)
}

func nop(*Context) error { return nil }

func TestCompileStates(t *testing.T) {
	a, err := compilePatterns(t, "{ESC}7", "{ESC}8", "{CSI}{P*}m")
	if err != nil {
		t.Fatalf("Compile(): %v", err)
	}
	for _, p := range a.Patterns() {
		if err := a.Bind(p, nop); err != nil {
			t.Fatalf("Bind(%q): %v", p, err)
		}
	}
	if err := a.Freeze(); err != nil {
		t.Fatalf("Freeze(): %v", err)
	}

	init := a.State(a.Initial())
	if init == nil {
		t.Fatal("no initial state")
	}
	// ESC and CSI only
	if got := init.TableSize(); got != 0x9b-0x1b+1 {
		t.Errorf("initial TableSize() = %d, want %d", got, 0x9b-0x1b+1)
	}
	if !a.CanStart(0x1b) || !a.CanStart(0x9b) || a.CanStart('a') {
		t.Error("CanStart mismatch")
	}

	esc := a.State(init.Transition(0x1b).Next)
	if esc.TableSize() != 2 {
		t.Errorf("ESC state TableSize() = %d, want 2", esc.TableSize())
	}
	if tr := esc.Transition('9'); tr.Kind != TransNone {
		t.Errorf("ESC 9 = %+v, want no transition", tr)
	}

	csi := a.State(init.Transition(0x9b).Next)
	if got := csi.Transition('1').Kind; got != TransStartNumeric {
		t.Errorf("CSI 1 kind = %v, want StartNumeric", got)
	}
	if got := csi.Transition(';').Kind; got != TransEmptyNumeric {
		t.Errorf("CSI ; kind = %v, want EmptyNumeric", got)
	}
	final := a.State(csi.Transition('m').Next)
	if !final.IsFinal() || final.Pattern() != "{CSI}{P*}m" || !final.HasAction() {
		t.Errorf("CSI m leads to %+v", final)
	}

	digits := a.State(csi.Transition('1').Next)
	if got := digits.Transition('2'); got.Kind != TransUpdateNumeric || got.Next != digits.ID() {
		t.Errorf("digit self-transition = %+v", got)
	}
	if got := digits.Transition(':').Kind; got != TransUpdateNumeric {
		t.Errorf("colon kind = %v, want UpdateNumeric", got)
	}
	if got := digits.Transition(';').Kind; got != TransEndNumeric {
		t.Errorf("semicolon kind = %v, want EndNumeric", got)
	}
}

func TestCompileConflicts(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		b        byte
	}{
		{"literal digit vs param", []string{"{CSI}1A", "{CSI}{P1}B"}, '1'},
		{"param vs literal digit", []string{"{CSI}{P1}B", "{CSI}1A"}, '1'},
		{"digit after param", []string{"{CSI}{P1}5x"}, '5'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compilePatterns(t, tt.patterns...)
			if err == nil {
				t.Fatal("Compile() succeeded, want conflict")
			}
			if !errors.Is(err, ErrConflict) {
				t.Errorf("errors.Is(%v, ErrConflict) = false", err)
			}
			var ce *ConflictError
			if !errors.As(err, &ce) {
				t.Fatalf("error %T is not a *ConflictError", err)
			}
			if ce.Byte != tt.b {
				t.Errorf("conflict byte = %q, want %q", ce.Byte, tt.b)
			}
		})
	}
}

func TestBind(t *testing.T) {
	a, err := compilePatterns(t, "{ESC}7")
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Bind("{ESC}8", nop); !errors.Is(err, ErrPatternNotFound) {
		t.Errorf("Bind(unknown) = %v, want ErrPatternNotFound", err)
	}
	if err := a.Bind("{ESC}7", nop); err != nil {
		t.Fatalf("Bind(): %v", err)
	}
	if err := a.Bind("{ESC}7", nop); !errors.Is(err, ErrActionAlreadyBound) {
		t.Errorf("second Bind() = %v, want ErrActionAlreadyBound", err)
	}
	if id, ok := a.Final("{ESC}7"); !ok || !a.State(id).IsFinal() {
		t.Errorf("Final() = %d, %v", id, ok)
	}
}

func TestFreezeRequiresActions(t *testing.T) {
	a, err := compilePatterns(t, "{ESC}7", "{ESC}8")
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Bind("{ESC}7", nop); err != nil {
		t.Fatal(err)
	}
	err = a.Freeze()
	if !errors.Is(err, ErrInconsistent) {
		t.Fatalf("Freeze() = %v, want ErrInconsistent", err)
	}
	if !strings.Contains(err.Error(), "no action is assigned") {
		t.Errorf("Freeze() error = %q", err)
	}
	if a.Frozen() {
		t.Error("Frozen() after failed Freeze")
	}
}

func TestCheckConsistency(t *testing.T) {
	tests := []struct {
		name  string
		build func(a *Automaton)
		want  string
	}{
		{
			name: "no initial state",
			build: func(a *Automaton) {
				_, _ = a.AddState(false, "")
			},
			want: "initial state is not set",
		},
		{
			name: "non-final without transitions",
			build: func(a *Automaton) {
				s, _ := a.AddState(false, "")
				_ = a.SetInitial(s)
			},
			want: "non-final state must have transitions",
		},
		{
			name: "orphan",
			build: func(a *Automaton) {
				s, _ := a.AddState(false, "")
				f, _ := a.AddState(true, "x")
				o, _ := a.AddState(true, "y")
				_ = a.AddTransition(s, 'x', Transition{Next: f, Kind: TransNormal})
				_ = a.SetInitial(s)
				_ = a.Bind("x", nop)
				_ = a.Bind("y", nop)
				_ = o
			},
			want: "orphan states. [ID=3]",
		},
		{
			name: "ok",
			build: func(a *Automaton) {
				s, _ := a.AddState(false, "")
				f, _ := a.AddState(true, "x")
				_ = a.AddTransition(s, 'x', Transition{Next: f, Kind: TransNormal})
				_ = a.SetInitial(s)
				_ = a.Bind("x", nop)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New()
			tt.build(a)
			err := a.CheckConsistency()
			if tt.want == "" {
				if err != nil {
					t.Fatalf("CheckConsistency() = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("CheckConsistency() = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestAutomatonErrors(t *testing.T) {
	a := New()
	s, err := a.AddState(false, "")
	if err != nil {
		t.Fatal(err)
	}
	f, _ := a.AddState(true, "x")
	if _, err := a.AddState(true, "x"); err == nil {
		t.Error("duplicate final state accepted")
	}
	if err := a.AddTransition(99, 'x', Transition{Next: f, Kind: TransNormal}); err == nil {
		t.Error("AddTransition from unknown state accepted")
	}
	if err := a.AddTransition(s, 'x', Transition{Next: f}); err == nil {
		t.Error("AddTransition without kind accepted")
	}

	tr := Transition{Next: f, Kind: TransNormal}
	if err := a.AddTransition(s, 'x', tr); err != nil {
		t.Fatal(err)
	}
	if err := a.AddTransition(s, 'x', tr); err != nil {
		t.Errorf("identical transition rejected: %v", err)
	}
	if err := a.AddTransition(s, 'x', Transition{Next: s, Kind: TransNormal}); !errors.Is(err, ErrConflict) {
		t.Errorf("conflicting transition = %v, want ErrConflict", err)
	}

	if err := a.SetInitial(7); err == nil {
		t.Error("SetInitial(unknown) accepted")
	}
	if err := a.SetInitial(s); err != nil {
		t.Fatal(err)
	}
	if err := a.SetInitial(s); err == nil {
		t.Error("second SetInitial accepted")
	}

	if err := a.Bind("x", nop); err != nil {
		t.Fatal(err)
	}
	if err := a.Freeze(); err != nil {
		t.Fatal(err)
	}
	if err := a.Freeze(); err != nil {
		t.Errorf("second Freeze() = %v", err)
	}
	if _, err := a.AddState(false, ""); !errors.Is(err, ErrFrozen) {
		t.Errorf("AddState after Freeze = %v, want ErrFrozen", err)
	}
	if err := a.Bind("x", nop); !errors.Is(err, ErrFrozen) {
		t.Errorf("Bind after Freeze = %v, want ErrFrozen", err)
	}
	if a.States() != 2 {
		t.Errorf("States() = %d, want 2", a.States())
	}
}

func TestReduceSizeStopsMutation(t *testing.T) {
	a := New()
	s, _ := a.AddState(false, "")
	f, _ := a.AddState(true, "m")
	if err := a.AddTransition(s, 'm', Transition{Next: f, Kind: TransNormal}); err != nil {
		t.Fatal(err)
	}
	a.ReduceSize()
	if got := a.State(s).TableSize(); got != 1 {
		t.Errorf("TableSize() = %d, want 1", got)
	}

	for _, b := range []byte{'a', 'z', 'm'} {
		err := a.AddTransition(s, b, Transition{Next: f, Kind: TransNormal})
		if !errors.Is(err, ErrFrozen) {
			t.Errorf("AddTransition(%q) after ReduceSize = %v, want ErrFrozen", b, err)
		}
	}
	if _, err := a.AddState(false, ""); !errors.Is(err, ErrFrozen) {
		t.Errorf("AddState after ReduceSize = %v, want ErrFrozen", err)
	}
	if err := a.SetInitial(s); !errors.Is(err, ErrFrozen) {
		t.Errorf("SetInitial after ReduceSize = %v, want ErrFrozen", err)
	}
	if err := a.Bind("m", nop); err != nil {
		t.Errorf("Bind after ReduceSize = %v", err)
	}
	if got := a.State(s).Transition('m').Next; got != f {
		t.Errorf("Transition('m').Next = %d, want %d", got, f)
	}
}

func TestWriteDot(t *testing.T) {
	a, err := compilePatterns(t, "{ESC}[78]", "{CSI}{P*}m")
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range a.Patterns() {
		_ = a.Bind(p, nop)
	}
	if err := a.Freeze(); err != nil {
		t.Fatal(err)
	}

	var sb strings.Builder
	if err := a.WriteDot(&sb); err != nil {
		t.Fatal(err)
	}
	dot := sb.String()
	for _, want := range []string{
		"digraph DFA {",
		`[label="[78]"]`,
		`[label="StartNumeric:[0-9]"]`,
		`[label="{CSI}{P*}m", shape=doublecircle]`,
		"shape=box",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("WriteDot() output lacks %q:\n%s", want, dot)
		}
	}
}

func TestByteRanges(t *testing.T) {
	tests := []struct {
		in   []byte
		want string
	}{
		{[]byte("a"), "[a]"},
		{[]byte("ab"), "[ab]"},
		{[]byte("abc"), "[a-c]"},
		{[]byte("0123456789;"), "[0-9;]"},
		{[]byte{0x07, 0x1b, 'x'}, `[\x07\x1bx]`},
	}
	for _, tt := range tests {
		if got := byteRanges(tt.in); got != tt.want {
			t.Errorf("byteRanges(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestKindStrings(t *testing.T) {
	if got := TransEndNumeric.String(); got != "EndNumeric" {
		t.Errorf("TransEndNumeric.String() = %q", got)
	}
	if got := TransitionKind(200).String(); got != "Unknown(200)" {
		t.Errorf("TransitionKind(200).String() = %q", got)
	}
	if got := Conflict.String(); got != "Conflict" {
		t.Errorf("Conflict.String() = %q", got)
	}
	if got := Finished.String(); got != "Finished" {
		t.Errorf("Finished.String() = %q", got)
	}
}
