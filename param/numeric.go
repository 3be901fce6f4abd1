// Package param holds the parameter values captured while an escape
// sequence is matched, and the accessors handlers use to read them.
package param

import "math"

// MaxValue is the largest value a numeric parameter can hold. Longer digit
// runs saturate instead of wrapping.
const MaxValue = math.MaxInt32

// Numeric is one numeric parameter slot.
//
// A slot is empty (no digits), a single integer ("12") or a sub-combination
// of integers separated by ':' ("12:34:56"). A ':' that does not follow a
// digit makes the slot invalid, and an invalid slot reads as empty.
type Numeric struct {
	value   int
	digits  int
	combo   []int
	invalid bool
}

// AppendDigit adds the digit c ('0'..'9') to the slot. Other bytes are
// ignored.
func (n *Numeric) AppendDigit(c byte) {
	if c < '0' || c > '9' {
		return
	}
	if n.value > (MaxValue-int(c-'0'))/10 {
		n.value = MaxValue
	} else {
		n.value = n.value*10 + int(c-'0')
	}
	n.digits++
}

// AppendColon closes the current item of a sub-combination.
func (n *Numeric) AppendColon() {
	if n.invalid {
		return
	}
	if n.digits == 0 {
		n.invalid = true
		return
	}
	n.combo = append(n.combo, n.value)
	n.value, n.digits = 0, 0
}

// Append dispatches c to AppendDigit or AppendColon.
func (n *Numeric) Append(c byte) {
	if c == ':' {
		n.AppendColon()
		return
	}
	n.AppendDigit(c)
}

// IsEmpty reports whether the slot holds neither an integer nor a
// combination.
func (n Numeric) IsEmpty() bool {
	return n.invalid || (n.digits == 0 && len(n.combo) == 0)
}

// Int returns the value of a single-integer slot.
func (n Numeric) Int() (int, bool) {
	if n.invalid || len(n.combo) > 0 || n.digits == 0 {
		return 0, false
	}
	return n.value, true
}

// Combination returns the items of a sub-combination slot, or nil.
// A trailing ':' adds no item.
func (n Numeric) Combination() []int {
	if n.invalid || len(n.combo) == 0 {
		return nil
	}
	c := make([]int, len(n.combo), len(n.combo)+1)
	copy(c, n.combo)
	if n.digits > 0 {
		c = append(c, n.value)
	}
	return c
}
