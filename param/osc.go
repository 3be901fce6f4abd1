package param

import "strings"

// OSC splits the text of an operating system command ("code;text") into its
// numeric code and ';'-separated fields.
//
//	o, ok := param.ParseOSC("4;1;rgb:ff/00/00")
//	// o.Code() == 4
//	// o.NextInt() == 1, true
//	// o.NextText() == "rgb:ff/00/00", true
type OSC struct {
	code int
	text string
	pos  int
}

// ParseOSC parses the code prefix of s. It fails when the prefix before the
// first ';' is empty or not all digits.
func ParseOSC(s string) (OSC, bool) {
	i := strings.IndexByte(s, ';')
	head := s
	if i >= 0 {
		head = s[:i]
	}
	if head == "" {
		return OSC{}, false
	}
	var n Numeric
	for j := 0; j < len(head); j++ {
		if head[j] < '0' || head[j] > '9' {
			return OSC{}, false
		}
		n.AppendDigit(head[j])
	}
	code, _ := n.Int()
	if i < 0 {
		return OSC{code: code, pos: 1}, true
	}
	return OSC{code: code, text: s[i+1:]}, true
}

// Code returns the numeric command code.
func (o *OSC) Code() int {
	return o.code
}

// Text returns everything after the code and its separator.
func (o *OSC) Text() string {
	return o.text
}

// HasNext reports whether another field can be read.
func (o *OSC) HasNext() bool {
	return o.pos <= len(o.text)
}

// NextText returns the next field.
func (o *OSC) NextText() (string, bool) {
	if !o.HasNext() {
		return "", false
	}
	rest := o.text[o.pos:]
	e := strings.IndexByte(rest, ';')
	if e < 0 {
		o.pos = len(o.text) + 1
		return rest, true
	}
	o.pos += e + 1
	return rest[:e], true
}

// NextInt reads the next field as a non-negative integer. The field is
// consumed even when it is not a number.
func (o *OSC) NextInt() (int, bool) {
	s, ok := o.NextText()
	if !ok || s == "" {
		return 0, false
	}
	var n Numeric
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
		n.AppendDigit(s[i])
	}
	return n.Int()
}
