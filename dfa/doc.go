// Package dfa compiles reduced escape-sequence graphs into deterministic
// transition tables and runs input bytes through them.
//
// An Automaton is built by Compile from an nfa.NFA, gets one Action bound
// to every pattern, and is frozen. A frozen automaton is immutable and
// shared; each input stream gets its own Engine:
//
//	a, err := dfa.Compile(n)
//	if err != nil {
//	    return err
//	}
//	a.Bind("{CSI}{P*}m", func(ctx *dfa.Context) error {
//	    fmt.Println(ctx.Params().AllOr(0))
//	    return nil
//	})
//	if err := a.Freeze(); err != nil {
//	    return err
//	}
//	e, err := dfa.NewEngine(a, nil, dfa.DefaultConfig())
//
// Transitions carry the parameter effect of a byte (start or update a
// numeric or text parameter, insert an empty one), so parameters are
// captured while matching without any backtracking.
package dfa
