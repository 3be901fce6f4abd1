package dfa

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

type dotEdge struct {
	next StateID
	kind TransitionKind
}

// WriteDot writes the automaton in Graphviz dot format. Transitions sharing
// a destination and a kind are drawn as one edge labelled with byte ranges.
func (a *Automaton) WriteDot(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph DFA {")
	fmt.Fprintln(bw, `  graph [rankdir="LR"];`)

	fmt.Fprintln(bw, "  // transitions")
	for _, s := range a.states[1:] {
		var order []dotEdge
		edges := make(map[dotEdge][]byte)
		s.table.each(func(b byte, t Transition) {
			k := dotEdge{t.Next, t.Kind}
			if _, ok := edges[k]; !ok {
				order = append(order, k)
			}
			edges[k] = append(edges[k], b)
		})
		for _, k := range order {
			label := byteRanges(edges[k])
			if k.kind != TransNormal {
				label = k.kind.String() + ":" + label
			}
			fmt.Fprintf(bw, "  s%d -> s%d [label=\"%s\"];\n", s.id, k.next, dotEscaper.Replace(label))
		}
	}

	fmt.Fprintln(bw, "  // states")
	for _, s := range a.states[1:] {
		label, shape := fmt.Sprintf("S%d", s.id), "circle"
		if s.final {
			label, shape = s.pattern, "doublecircle"
		}
		if s.id == a.initial {
			shape = "box"
		}
		fmt.Fprintf(bw, "  s%d [label=\"%s\", shape=%s];\n", s.id, dotEscaper.Replace(label), shape)
	}
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

// byteRanges renders sorted bytes as "[a-z\x1b]".
func byteRanges(bs []byte) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := 0; i < len(bs); {
		j := i
		for j+1 < len(bs) && bs[j+1] == bs[j]+1 {
			j++
		}
		writeDotByte(&sb, bs[i])
		if j > i {
			if j > i+1 {
				sb.WriteByte('-')
			}
			writeDotByte(&sb, bs[j])
		}
		i = j + 1
	}
	sb.WriteByte(']')
	return sb.String()
}

func writeDotByte(sb *strings.Builder, b byte) {
	if b > 0x20 && b < 0x7f {
		sb.WriteByte(b)
		return
	}
	fmt.Fprintf(sb, "\\x%02x", b)
}
