package dfa

import (
	"fmt"
	"log/slog"
)

// Phase is the execution phase of an Engine.
type Phase uint8

const (
	// Idle means the engine is at the initial state and nothing has been
	// matched yet.
	Idle Phase = iota

	// Running means at least one byte has been matched.
	Running

	// Finished means the last attempt completed or was aborted. The state
	// and the context are reset by the next Process or Abort.
	Finished
)

// String returns a human-readable representation of the Phase
func (p Phase) String() string {
	switch p {
	case Idle:
		return "Idle"
	case Running:
		return "Running"
	case Finished:
		return "Finished"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// Stats counts what an Engine has done since it was created or last Reset.
type Stats struct {
	Accepted     uint64 // bytes accepted
	Rejected     uint64 // bytes rejected
	Matches      uint64 // final states entered
	Overflows    uint64 // attempts stopped by MaxSequenceLength
	ActionErrors uint64 // actions that failed or panicked
}

// Engine runs bytes through a frozen Automaton and fires the action of every
// completed pattern.
//
// An Engine is not safe for concurrent use; create one per stream. Any
// number of engines may share one Automaton.
type Engine struct {
	a       *Automaton
	cfg     Config
	log     *slog.Logger
	cur     *State
	phase   Phase
	ctx     Context
	stats   Stats
	initial *State
}

// NewEngine creates an engine for a. executor is handed to actions through
// Context.Executor.
func NewEngine(a *Automaton, executor any, cfg Config) (*Engine, error) {
	if a == nil || !a.Frozen() {
		return nil, ErrNotFrozen
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		a:       a,
		cfg:     cfg,
		log:     cfg.logger(),
		phase:   Finished,
		ctx:     Context{executor: executor},
		initial: a.State(a.Initial()),
	}, nil
}

// Automaton returns the automaton the engine runs.
func (e *Engine) Automaton() *Automaton {
	return e.a
}

// Context returns the context of the current or last attempt.
func (e *Engine) Context() *Context {
	return &e.ctx
}

// Phase returns the execution phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Running reports whether a sequence is partially matched.
func (e *Engine) Running() bool {
	return e.phase == Running
}

// Stats returns the engine counters.
func (e *Engine) Stats() Stats {
	return e.stats
}

// Process feeds b to the automaton and reports whether it was accepted.
//
// orig are the bytes appended to Context.Matched for b; they default to b
// itself. They differ when b stands for a longer input, like the C1 byte
// for a two-byte ESC sequence.
//
// A rejected byte ends the attempt; the next call starts over from the
// initial state. So does entering a final state, after its action ran.
func (e *Engine) Process(b byte, orig ...byte) bool {
	e.execPendingReset()

	t := e.cur.table.get(b)
	if t.Kind == TransNone {
		e.finish()
		e.stats.Rejected++
		return false
	}

	next := e.a.states[t.Next]
	if len(e.ctx.matched) >= e.cfg.MaxSequenceLength-1 && !next.final {
		e.log.Debug("escape sequence too long",
			slog.Int("length", len(e.ctx.matched)),
			slog.Int("limit", e.cfg.MaxSequenceLength))
		e.finish()
		e.stats.Overflows++
		e.stats.Rejected++
		return false
	}

	e.phase = Running
	if len(orig) == 0 {
		e.ctx.matched = append(e.ctx.matched, b)
	} else {
		e.ctx.matched = append(e.ctx.matched, orig...)
	}

	if next == e.cur {
		e.ctx.apply(t.Kind, b)
		if h := e.cfg.Hooks.Repeat; h != nil {
			h(next.id, b)
		}
	} else {
		if h := e.cfg.Hooks.Exit; h != nil {
			h(e.cur.id)
		}
		e.ctx.apply(t.Kind, b)
		e.enter(next, b)
	}
	e.stats.Accepted++

	if next.final {
		e.finish()
	} else {
		e.cur = next
	}
	return true
}

// Skip records n bytes that were rejected from the initial state without
// being fed, as a caller scanning ahead for start bytes does. It has the
// effect of n Process calls that all fail: a finished attempt is cleared
// and Stats.Rejected grows by n. Skip must only be called while the engine
// is not Running.
func (e *Engine) Skip(n int) {
	if n <= 0 {
		return
	}
	e.execPendingReset()
	e.stats.Rejected += uint64(n)
}

// Abort ends the current attempt. Nothing is fired.
func (e *Engine) Abort() {
	e.execPendingReset()
	e.finish()
}

// Reset aborts and clears the counters.
func (e *Engine) Reset() {
	e.Abort()
	e.stats = Stats{}
}

func (e *Engine) enter(s *State, b byte) {
	if h := e.cfg.Hooks.Enter; h != nil {
		h(s.id, b)
	}
	if !s.final || s.action == nil {
		return
	}
	e.ctx.pattern = s.pattern
	e.stats.Matches++
	if err := e.run(s.action); err != nil {
		e.stats.ActionErrors++
		ae := &ActionError{Pattern: s.pattern, Err: err}
		e.log.Warn("escape sequence action failed",
			slog.String("pattern", s.pattern),
			slog.Any("error", err))
		if e.cfg.OnActionError != nil {
			e.cfg.OnActionError(ae)
		}
	}
}

// run calls action, converting a panic into an error.
func (e *Engine) run(action Action) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if rerr, ok := r.(error); ok {
				err = fmt.Errorf("panic: %w", rerr)
			} else {
				err = fmt.Errorf("panic: %v", r)
			}
		}
	}()
	return action(&e.ctx)
}

func (e *Engine) finish() {
	// only the phase changes here; the state and the context are reset by
	// the next Process or Abort
	if e.phase != Idle {
		e.phase = Finished
	}
}

func (e *Engine) execPendingReset() {
	if e.phase == Finished {
		e.cur = e.initial
		e.ctx.clear()
		e.phase = Idle
	}
}
