package escseq

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/coregx/escseq/dfa"
	"github.com/coregx/escseq/param"
)

// HandlerSet is a named set of patterns bound to handlers on a receiver
// type T. The automaton is compiled on first use and shared by every engine
// created from the set.
//
// Example:
//
//	var handlers = escseq.NewHandlerSet("vt100", func(r *escseq.Registry[*Term]) {
//	    r.Handle("{ESC}7", (*Term).SaveCursor)
//	    r.HandleNumeric("{CSI}{P1}A", (*Term).CursorUp)
//	})
type HandlerSet[T any] struct {
	name     string
	register func(*Registry[T])

	once sync.Once
	a    *dfa.Automaton
	err  error
}

// NewHandlerSet creates a handler set. register is called once, on the
// first Compile, to bind the patterns of the set.
func NewHandlerSet[T any](name string, register func(r *Registry[T])) *HandlerSet[T] {
	return &HandlerSet[T]{name: name, register: register}
}

// Name returns the name of the set.
func (s *HandlerSet[T]) Name() string {
	return s.name
}

// Compile returns the automaton of the set, building it on the first call.
// A build error is returned by every call.
func (s *HandlerSet[T]) Compile() (*dfa.Automaton, error) {
	s.once.Do(s.build)
	return s.a, s.err
}

// Prepare builds the automaton now instead of on first use.
func (s *HandlerSet[T]) Prepare() error {
	_, err := s.Compile()
	return err
}

// MustPrepare is like Prepare but panics if the set cannot be compiled.
func (s *HandlerSet[T]) MustPrepare() {
	if err := s.Prepare(); err != nil {
		panic("escseq: " + err.Error())
	}
}

// NewEngine creates an engine whose handlers run on recv.
func (s *HandlerSet[T]) NewEngine(recv T, cfg dfa.Config) (*dfa.Engine, error) {
	a, err := s.Compile()
	if err != nil {
		return nil, err
	}
	return dfa.NewEngine(a, recv, cfg)
}

// NewProcessor creates a processor for an engine with the default
// configuration whose handlers run on recv.
func (s *HandlerSet[T]) NewProcessor(recv T, opts ...ProcessorOption) (*Processor, error) {
	e, err := s.NewEngine(recv, dfa.DefaultConfig())
	if err != nil {
		return nil, err
	}
	return NewProcessor(e, opts...), nil
}

func (s *HandlerSet[T]) build() {
	r := &Registry[T]{}
	if s.register != nil {
		s.register(r)
	}
	if r.err != nil {
		s.fail(r.err)
		return
	}
	a, err := Compile(r.rules...)
	if err != nil {
		s.fail(err)
		return
	}
	s.a = a
	slog.Debug("escape sequence handler set compiled",
		slog.String("set", s.name),
		slog.Int("patterns", len(r.rules)),
		slog.Int("states", a.States()))
}

func (s *HandlerSet[T]) fail(err error) {
	s.err = fmt.Errorf("handler set %q: %w", s.name, err)
	slog.Error("escape sequence handler set failed",
		slog.String("set", s.name),
		slog.Any("error", err))
}

// Registry collects the handlers of a HandlerSet. It is only valid during
// the registration function.
type Registry[T any] struct {
	rules []Rule
	err   error
}

func (r *Registry[T]) add(pattern string, isNil bool, action dfa.Action) {
	if r.err != nil {
		return
	}
	if isNil {
		r.err = fmt.Errorf("pattern %q: %w", pattern, ErrNilHandler)
		return
	}
	r.rules = append(r.rules, Rule{Pattern: pattern, Action: action})
}

// Handle binds a handler without parameters.
func (r *Registry[T]) Handle(pattern string, h func(recv T)) {
	r.add(pattern, h == nil, func(ctx *dfa.Context) error {
		h(ctx.Executor().(T))
		return nil
	})
}

// HandleNumeric binds a handler receiving the numeric parameters.
func (r *Registry[T]) HandleNumeric(pattern string, h func(recv T, p param.Params)) {
	r.add(pattern, h == nil, func(ctx *dfa.Context) error {
		h(ctx.Executor().(T), ctx.Params())
		return nil
	})
}

// HandleText binds a handler receiving the text parameter, "" if the text
// was empty.
func (r *Registry[T]) HandleText(pattern string, h func(recv T, text string)) {
	r.add(pattern, h == nil, func(ctx *dfa.Context) error {
		text, _ := ctx.TextParam()
		h(ctx.Executor().(T), text)
		return nil
	})
}

// HandleContext binds a handler receiving the whole match context.
// The context is only valid during the call.
func (r *Registry[T]) HandleContext(pattern string, h func(recv T, ctx *dfa.Context) error) {
	r.add(pattern, h == nil, func(ctx *dfa.Context) error {
		return h(ctx.Executor().(T), ctx)
	})
}
