package nfa

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// WriteDot writes the reachable part of the graph in Graphviz dot format.
func (n *NFA) WriteDot(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph NFA {")
	fmt.Fprintln(bw, `  graph [rankdir="LR"];`)

	var states []*State
	fmt.Fprintln(bw, "  // transitions")
	n.Walk(func(s *State) {
		states = append(states, s)
		for _, t := range s.transitions {
			fmt.Fprintf(bw, "  s%d -> s%d [label=\"%s\"];\n", s.id, t.Next, dotEscaper.Replace(t.Description()))
		}
	})

	fmt.Fprintln(bw, "  // states")
	for _, s := range states {
		shape := "circle"
		if s.kind == StateFinal {
			shape = "doublecircle"
		}
		fmt.Fprintf(bw, "  s%d [label=\"%s\", shape=%s];\n", s.id, dotEscaper.Replace(s.Description()), shape)
	}
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}
