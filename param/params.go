package param

import (
	"slices"
	"strconv"
	"strings"
)

// Params is a read-only view of the numeric parameters of one match.
//
// Slots are addressed by zero-based index, left to right. Reads outside the
// list, or of a slot of the wrong shape, return the given default, false or
// nil instead of failing.
type Params struct {
	slots []Numeric
}

// NewParams builds a view over the captured slots. separators is the number
// of ';' seen: every separator opens a slot, so the view has at least
// separators+1 slots and the missing trailing ones are empty.
func NewParams(slots []Numeric, separators int) Params {
	n := max(len(slots), separators+1)
	if n == len(slots) {
		return Params{slots: slots}
	}
	padded := make([]Numeric, n)
	copy(padded, slots)
	return Params{slots: padded}
}

// Ints builds a view holding the given single integers, mainly for tests.
func Ints(values ...int) Params {
	slots := make([]Numeric, len(values))
	for i, v := range values {
		slots[i] = Numeric{value: min(max(v, 0), MaxValue), digits: 1}
	}
	return NewParams(slots, max(len(values)-1, 0))
}

// Len returns the number of slots.
func (p Params) Len() int {
	return len(p.slots)
}

func (p Params) slot(i int) (Numeric, bool) {
	if i < 0 || i >= len(p.slots) {
		return Numeric{}, false
	}
	return p.slots[i], true
}

// IsSingle reports whether slot i holds a single integer.
func (p Params) IsSingle(i int) bool {
	s, _ := p.slot(i)
	_, ok := s.Int()
	return ok
}

// IsCombination reports whether slot i holds a sub-combination.
func (p Params) IsCombination(i int) bool {
	s, _ := p.slot(i)
	return s.Combination() != nil
}

// IsEmpty reports whether slot i is empty or out of range.
func (p Params) IsEmpty(i int) bool {
	s, _ := p.slot(i)
	return s.IsEmpty()
}

// Get returns the single integer in slot i, or def.
func (p Params) Get(i, def int) int {
	s, _ := p.slot(i)
	if v, ok := s.Int(); ok {
		return v
	}
	return def
}

// Combination returns the sub-combination in slot i, or nil.
func (p Params) Combination(i int) []int {
	s, _ := p.slot(i)
	return s.Combination()
}

// All returns every slot as a pointer to its single integer; nil marks an
// empty or combination slot.
func (p Params) All() []*int {
	out := make([]*int, len(p.slots))
	for i, s := range p.slots {
		if v, ok := s.Int(); ok {
			out[i] = &v
		}
	}
	return out
}

// AllOr returns every slot, using def for slots without a single integer.
func (p Params) AllOr(def int) []int {
	out := make([]int, len(p.slots))
	for i := range p.slots {
		out[i] = p.Get(i, def)
	}
	return out
}

// NonEmpty returns the single integers, skipping every other slot.
func (p Params) NonEmpty() []int {
	out := make([]int, 0, len(p.slots))
	for _, s := range p.slots {
		if v, ok := s.Int(); ok {
			out = append(out, v)
		}
	}
	return out
}

// Clone returns a view that does not share storage with p. Views handed to
// handlers are only valid during the call; keep a clone instead.
func (p Params) Clone() Params {
	return Params{slots: slices.Clone(p.slots)}
}

// String renders the slots the way they appear in a sequence: "1;;38:2:1".
func (p Params) String() string {
	var sb strings.Builder
	for i, s := range p.slots {
		if i > 0 {
			sb.WriteByte(';')
		}
		if v, ok := s.Int(); ok {
			sb.WriteString(strconv.Itoa(v))
			continue
		}
		for j, v := range s.Combination() {
			if j > 0 {
				sb.WriteByte(':')
			}
			sb.WriteString(strconv.Itoa(v))
		}
	}
	return sb.String()
}
