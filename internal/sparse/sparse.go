// Package sparse provides a sparse set of automaton state IDs.
//
// A sparse set supports O(1) insertion and membership testing. The NFA
// builder uses it to track visited states during graph walks, where the
// graph keeps growing while it is being walked.
package sparse

// SparseSet is a set of uint32 values that supports O(1) operations.
// It maintains both a sparse array (for membership testing) and a dense array
// of members. The sparse array maps values to indices in the dense array.
//
// Unlike a fixed-universe sparse set, Insert grows the universe on demand, so
// the capacity given to NewSparseSet is only a hint.
type SparseSet struct {
	sparse []uint32 // value -> index in dense
	dense  []uint32
}

// NewSparseSet creates a new sparse set sized for values below capacity.
func NewSparseSet(capacity int) *SparseSet {
	if capacity < 0 {
		capacity = 0
	}
	return &SparseSet{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Insert adds a value to the set and reports whether it was absent.
func (s *SparseSet) Insert(value uint32) bool {
	if s.Contains(value) {
		return false
	}
	if int(value) >= len(s.sparse) {
		s.grow(int(value) + 1)
	}
	//nolint:gosec // G115: dense never exceeds the uint32 universe
	s.sparse[value] = uint32(len(s.dense))
	s.dense = append(s.dense, value)
	return true
}

func (s *SparseSet) grow(n int) {
	size := 2 * len(s.sparse)
	if size < n {
		size = n
	}
	sparse := make([]uint32, size)
	copy(sparse, s.sparse)
	s.sparse = sparse
}

// Contains returns true if the value is in the set
func (s *SparseSet) Contains(value uint32) bool {
	if int(value) >= len(s.sparse) {
		return false
	}
	idx := s.sparse[value]
	return int(idx) < len(s.dense) && s.dense[idx] == value
}

