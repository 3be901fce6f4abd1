package dfa

import "github.com/coregx/escseq/param"

// Context is the state of one match attempt. It is owned by an Engine and
// cleared lazily when the next attempt begins, so an action may read it
// freely but must not keep it.
type Context struct {
	executor   any
	matched    []byte
	numerics   []param.Numeric
	separators int
	text       []byte
	hasText    bool
	pattern    string
}

// Executor returns the value the engine was created for.
func (c *Context) Executor() any {
	return c.executor
}

// Matched returns the original bytes matched so far.
// The slice is reused by the next attempt.
func (c *Context) Matched() []byte {
	return c.matched
}

// Pattern returns the pattern of the final state that was entered, or "".
func (c *Context) Pattern() string {
	return c.pattern
}

// Params returns the numeric parameters captured so far.
func (c *Context) Params() param.Params {
	return param.NewParams(c.numerics, c.separators)
}

// TextParam returns the text parameter and whether one was captured.
func (c *Context) TextParam() (string, bool) {
	return string(c.text), c.hasText
}

func (c *Context) clear() {
	c.matched = c.matched[:0]
	c.numerics = c.numerics[:0]
	c.separators = 0
	c.text = c.text[:0]
	c.hasText = false
	c.pattern = ""
}

// apply performs the parameter effect of a transition of kind k on b.
func (c *Context) apply(k TransitionKind, b byte) {
	switch k {
	case TransStartNumeric:
		var n param.Numeric
		n.Append(b)
		c.numerics = append(c.numerics, n)
	case TransUpdateNumeric:
		if len(c.numerics) > 0 {
			c.numerics[len(c.numerics)-1].Append(b)
		}
	case TransEndNumeric:
		c.separators++
	case TransEmptyNumeric:
		c.numerics = append(c.numerics, param.Numeric{})
		c.separators++
	case TransStartText:
		c.text = append(c.text[:0], b)
		c.hasText = true
	case TransUpdateText:
		if c.hasText {
			c.text = append(c.text, b)
		}
	case TransEmptyText:
		c.text = c.text[:0]
		c.hasText = true
	}
}
