package dfa

import "log/slog"

// MaxSequenceLength is the default limit on the length of one matched
// sequence, in original bytes.
const MaxSequenceLength = 65536

// Hooks observe the state changes of an Engine. Any field may be nil.
type Hooks struct {
	// Enter is called when the engine moves into state id on byte b.
	Enter func(id StateID, b byte)

	// Exit is called when the engine leaves state id for another state.
	Exit func(id StateID)

	// Repeat is called on a self-transition of state id.
	Repeat func(id StateID, b byte)
}

// Config configures an Engine.
type Config struct {
	// MaxSequenceLength bounds the number of bytes a single sequence may
	// match. A byte that would grow the match to the limit without reaching
	// a final state is rejected.
	//
	// Default: 65536
	MaxSequenceLength int

	// Logger receives action failures (warn) and length overflows (debug).
	// If nil, slog.Default() is used.
	Logger *slog.Logger

	// Hooks observe state changes. Mainly for tracing and tests.
	Hooks Hooks

	// OnActionError is called with every error an action returns or
	// panics with. The error is always logged.
	OnActionError func(*ActionError)
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxSequenceLength: MaxSequenceLength,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.MaxSequenceLength < 2 {
		return &DFAError{
			Kind:    InvalidConfig,
			Message: "MaxSequenceLength must be >= 2",
		}
	}
	return nil
}

// WithMaxSequenceLength returns a new config with the specified limit
func (c Config) WithMaxSequenceLength(n int) Config {
	c.MaxSequenceLength = n
	return c
}

// WithLogger returns a new config logging to l
func (c Config) WithLogger(l *slog.Logger) Config {
	c.Logger = l
	return c
}

func (c *Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
