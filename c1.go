package escseq

import (
	"sync"

	"github.com/coregx/ahocorasick"
)

// ESC is the escape character.
const ESC = 0x1b

// C1Table maps the byte following ESC to the 8-bit C1 control it stands
// for. A zero entry means the two-byte form has no C1 equivalent.
type C1Table [256]byte

// XTermC1 is the table of the two-byte forms xterm accepts for C1 controls.
var XTermC1 = C1Table{
	'D':  0x84, // IND
	'E':  0x85, // NEL
	'H':  0x88, // HTS
	'M':  0x8d, // RI
	'N':  0x8e, // SS2
	'O':  0x8f, // SS3
	'P':  0x90, // DCS
	'V':  0x96, // SPA
	'W':  0x97, // EPA
	'X':  0x98, // SOS
	'Z':  0x9a, // SCI / DECID
	'[':  0x9b, // CSI
	'\\': 0x9c, // ST
	']':  0x9d, // OSC
	'^':  0x9e, // PM
	'_':  0x9f, // APC
}

// Lookup returns the C1 control for ESC b.
func (t *C1Table) Lookup(b byte) (byte, bool) {
	c := t[b]
	return c, c != 0
}

// each calls fn for every ESC b form of the table in byte order.
func (t *C1Table) each(fn func(b, c1 byte)) {
	for b, c := range t {
		if c != 0 {
			fn(byte(b), c)
		}
	}
}

type c1Searcher struct {
	ac    *ahocorasick.Automaton
	table *C1Table
	to7   [256]byte
}

var xtermSearcher = sync.OnceValue(func() *c1Searcher {
	return newC1Searcher(&XTermC1)
})

func newC1Searcher(t *C1Table) *c1Searcher {
	s := &c1Searcher{table: t}
	builder := ahocorasick.NewBuilder()
	t.each(func(b, c1 byte) {
		builder.AddPattern([]byte{ESC, b})
		s.to7[c1] = b
	})
	ac, err := builder.Build()
	if err != nil {
		panic("escseq: cannot build the C1 searcher: " + err.Error())
	}
	s.ac = ac
	return s
}

// ToC1 returns a copy of p with every two-byte ESC form of XTermC1 replaced
// by its C1 control. It does not look at the surrounding sequence, so an
// ESC inside a string parameter is rewritten too.
func ToC1(p []byte) []byte {
	s := xtermSearcher()
	out := make([]byte, 0, len(p))
	at := 0
	for at < len(p) {
		m := s.ac.Find(p, at)
		if m == nil {
			break
		}
		out = append(out, p[at:m.Start]...)
		out = append(out, s.table[p[m.Start+1]])
		at = m.End
	}
	return append(out, p[at:]...)
}

// HasC1Forms reports whether p contains any two-byte ESC form of XTermC1.
func HasC1Forms(p []byte) bool {
	return xtermSearcher().ac.IsMatch(p)
}

// To7Bit returns a copy of p with every C1 control of XTermC1 replaced by
// its two-byte ESC form. Use it only for 8-bit data; in UTF-8 text the
// bytes 0x80-0x9f are continuation bytes.
func To7Bit(p []byte) []byte {
	s := xtermSearcher()
	out := make([]byte, 0, len(p)+len(p)/8)
	for _, b := range p {
		if x := s.to7[b]; x != 0 {
			out = append(out, ESC, x)
			continue
		}
		out = append(out, b)
	}
	return out
}
