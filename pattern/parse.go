package pattern

import (
	"slices"
)

// Parse converts a pattern string into its ordered list of elements.
//
// Bytes of s are read one at a time, so a pattern may contain any raw byte
// value as a literal. The returned list is never empty, always ends with a
// CharSet and contains at most one numeric placeholder.
func Parse(s string) ([]Element, error) {
	p := parser{src: s}
	elems, err := p.parse()
	if err != nil {
		return nil, err
	}
	return elems, nil
}

// MustParse is like Parse but panics if the pattern is invalid.
func MustParse(s string) []Element {
	elems, err := Parse(s)
	if err != nil {
		panic("pattern: Parse(" + quote(s) + "): " + err.Error())
	}
	return elems
}

func quote(s string) string {
	return "`" + s + "`"
}

type parser struct {
	src string
	pos int

	elems []Element

	// Byte set being collected inside [...].
	inSet bool
	set   []byte
	// Positions in set where a range marker '-' was seen. A marker at i
	// joins set[i-1] and set[i], so "A-Z0-9" is stored as set "AZ09" with
	// ranges [1 3].
	ranges []int
}

func (p *parser) fail(msg string) error {
	return &Error{Pattern: p.src, Offset: p.pos, Msg: msg}
}

func (p *parser) parse() ([]Element, error) {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		p.pos++

		switch {
		case c == '\\':
			if p.pos >= len(p.src) {
				return nil, p.fail("missing a character after backslash")
			}
			p.literal(p.src[p.pos])
			p.pos++
		case c == '{':
			if err := p.component(); err != nil {
				return nil, err
			}
		case c == '[':
			if p.inSet {
				return nil, p.fail("character set cannot be nested")
			}
			p.inSet = true
			p.set = p.set[:0]
			p.ranges = p.ranges[:0]
		case p.inSet && c == ']':
			if err := p.closeSet(); err != nil {
				return nil, err
			}
		case p.inSet && c == '-':
			p.rangeMarker()
		default:
			p.literal(c)
		}
	}

	if p.inSet {
		return nil, p.fail("character set is not terminated")
	}
	if len(p.elems) == 0 {
		return nil, p.fail("pattern is empty")
	}
	if p.elems[len(p.elems)-1].Kind != CharSet {
		return nil, p.fail("pattern must end with a character or a character set")
	}
	numeric := 0
	for _, e := range p.elems {
		if e.IsNumeric() {
			numeric++
		}
	}
	if numeric > 1 {
		return nil, p.fail("multiple numeric parameters must be specified with a single placeholder")
	}
	return p.elems, nil
}

func (p *parser) literal(b byte) {
	if p.inSet {
		p.set = append(p.set, b)
		return
	}
	p.elems = append(p.elems, Element{Kind: CharSet, Bytes: []byte{b}})
}

// component parses {NAME}; the opening brace is already consumed.
func (p *parser) component() error {
	start := p.pos
	for {
		if p.pos >= len(p.src) {
			return p.fail("missing '}'")
		}
		if p.src[p.pos] == '}' {
			break
		}
		p.pos++
	}
	name := p.src[start:p.pos]
	p.pos++

	if b, ok := Lookup(name); ok {
		p.literal(b)
		return nil
	}
	if len(name) < 2 || name[0] != 'P' {
		return p.fail("unknown component {" + name + "}")
	}
	if p.inSet {
		return p.fail("parameters cannot be specified in a character set")
	}

	switch name[1:] {
	case "t":
		p.elems = append(p.elems, Element{Kind: TextParam})
		return nil
	case "s":
		p.elems = append(p.elems, Element{Kind: StringParam})
		return nil
	case "*":
		p.elems = append(p.elems, Element{Kind: ZeroOrMoreParams})
		return nil
	}

	n, ok := parseCount(name[1:])
	if !ok {
		return p.fail("unknown component {" + name + "}")
	}
	if n <= 0 {
		return p.fail("invalid parameter count {" + name + "}")
	}
	p.elems = append(p.elems, Element{Kind: NParams, N: n})
	return nil
}

// parseCount accepts plain decimal digits only: no sign, no blanks.
func parseCount(s string) (int, bool) {
	const limit = 1 << 20
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
		if n > limit {
			return 0, false
		}
	}
	return n, true
}

func (p *parser) rangeMarker() {
	if len(p.set) == 0 {
		// "[-..." starts with a literal hyphen
		p.set = append(p.set, '-')
		return
	}
	at := len(p.set)
	if n := len(p.ranges); n > 0 && at < p.ranges[n-1]+2 {
		// too close to the previous range to be a range itself
		p.set = append(p.set, '-')
		return
	}
	p.ranges = append(p.ranges, at)
}

func (p *parser) closeSet() error {
	if len(p.set) == 0 {
		return p.fail("character set is empty")
	}
	var members [256]bool
	for _, b := range p.set {
		members[b] = true
	}
	for _, at := range p.ranges {
		if at >= len(p.set) {
			// "...-]" ends with a literal hyphen
			members['-'] = true
			continue
		}
		from, to := p.set[at-1], p.set[at]
		if from > to {
			from, to = to, from
		}
		for b := int(from); b <= int(to); b++ {
			members[b] = true
		}
	}
	bytes := make([]byte, 0, len(p.set))
	for b, ok := range members {
		if ok {
			bytes = append(bytes, byte(b))
		}
	}
	p.elems = append(p.elems, Element{Kind: CharSet, Bytes: slices.Clip(bytes)})
	p.inSet = false
	return nil
}
