// Command esctrace prints the escape sequences found in a terminal stream.
//
// Usage:
//
//	esctrace [flags] [file ...]
//
// Input is read from the files or from standard input. When standard input
// is a terminal it is switched to raw mode and read until Ctrl-D, so the
// sequences sent by keys and mouse can be traced live.
//
// Every line of output is one of:
//
//	TEXT    "hello" 5
//	SEQ     CUP(1;2) "\x1b[1;2H"
//	UNKNOWN "\x1b[99y"
//
// where TEXT carries the column width of the run.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/coregx/escseq/nfa"
	"github.com/coregx/escseq/xterm"
)

type options struct {
	dot      string
	raw8bit  bool
	c1       bool
	stats    bool
	logLevel string
	files    []string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	level, err := parseLevel(opts.logLevel)
	if err != nil {
		fmt.Fprintf(stderr, "esctrace: %v\n", err)
		return 2
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	if opts.dot != "" {
		if err := writeDot(stdout, opts.dot); err != nil {
			fmt.Fprintf(stderr, "esctrace: %v\n", err)
			return 1
		}
		return 0
	}

	if err := trace(opts, stdin, stdout, stderr); err != nil {
		fmt.Fprintf(stderr, "esctrace: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("esctrace", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.dot, "dot", "", "write the `graph` (nfa or dfa) of the xterm catalog in dot format and exit")
	fs.BoolVar(&opts.raw8bit, "8bit", false, "treat every input byte as one character instead of decoding UTF-8")
	fs.BoolVar(&opts.c1, "c1", false, "rewrite two-byte ESC forms into C1 controls before tracing; implies -8bit")
	fs.BoolVar(&opts.stats, "stats", false, "print engine counters to stderr at the end")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "log `level`: debug, info, warn or error")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: esctrace [flags] [file ...]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	opts.files = fs.Args()
	return opts, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

func writeDot(w io.Writer, graph string) error {
	switch strings.ToLower(graph) {
	case "nfa":
		b := nfa.NewBuilder()
		for _, p := range xterm.Patterns() {
			if err := b.AddPattern(p); err != nil {
				return err
			}
		}
		n, err := b.Build()
		if err != nil {
			return err
		}
		return n.WriteDot(w)
	case "dfa":
		a, err := xterm.Handlers.Compile()
		if err != nil {
			return err
		}
		return a.WriteDot(w)
	default:
		return fmt.Errorf("unknown graph %q, want nfa or dfa", graph)
	}
}

func trace(opts options, stdin io.Reader, stdout, stderr io.Writer) error {
	t, err := newTracer(stdout, opts.raw8bit)
	if err != nil {
		return err
	}

	if len(opts.files) == 0 {
		if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			if err := traceTerminal(t, f, opts.c1); err != nil {
				return err
			}
		} else if err := t.traceAll(stdin, opts.c1); err != nil {
			return err
		}
		t.endInput()
	}
	for _, name := range opts.files {
		if err := traceFile(t, name, opts.c1); err != nil {
			return err
		}
	}

	if opts.stats {
		s := t.p.Engine().Stats()
		fmt.Fprintf(stderr, "accepted=%d rejected=%d matches=%d overflows=%d action_errors=%d\n",
			s.Accepted, s.Rejected, s.Matches, s.Overflows, s.ActionErrors)
	}
	return t.flush()
}

func traceFile(t *tracer, name string, c1 bool) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := t.traceAll(f, c1); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	// sequences do not continue across files
	t.endInput()
	t.p.Reset()
	return nil
}

// ctrlD ends a raw terminal session.
const ctrlD = 0x04

func traceTerminal(t *tracer, f *os.File, c1 bool) error {
	fd := int(f.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("cannot switch terminal to raw mode: %w", err)
	}
	defer func() {
		if err := term.Restore(fd, state); err != nil {
			slog.Warn("cannot restore terminal", slog.Any("error", err))
		}
	}()

	// raw mode disables output processing
	t.eol = "\r\n"
	fmt.Fprint(t.w, "tracing terminal input, Ctrl-D ends"+t.eol)

	buf := make([]byte, 256)
	for {
		n, rerr := f.Read(buf)
		chunk := buf[:n]
		if i := bytes.IndexByte(chunk, ctrlD); i >= 0 {
			t.feed(chunk[:i], c1)
			return t.flush()
		}
		t.feed(chunk, c1)
		if err := t.flush(); err != nil {
			return err
		}
		if rerr == io.EOF {
			return nil
		}
		if rerr != nil {
			return rerr
		}
	}
}
