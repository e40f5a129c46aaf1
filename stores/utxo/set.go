package utxo

import (
	"github.com/bsv-blockchain/epochledger/model"
	"github.com/dolthub/swiss"
	"golang.org/x/exp/slices"
)

const defaultCapacity = 1024

// Set maps outpoints to the outputs they identify. It is not safe for concurrent mutation;
// callers that share a Set across goroutines work on clones.
type Set struct {
	m *swiss.Map[model.Outpoint, model.Output]
}

func NewSet() *Set {
	return newSetWithCapacity(defaultCapacity)
}

// NewSetFrom returns an independent copy of other. A nil other yields an empty set.
func NewSetFrom(other *Set) *Set {
	if other == nil {
		return NewSet()
	}

	return other.Clone()
}

func newSetWithCapacity(capacity int) *Set {
	if capacity < defaultCapacity {
		capacity = defaultCapacity
	}

	return &Set{
		m: swiss.NewMap[model.Outpoint, model.Output](uint32(capacity)), //nolint:gosec // capacity is a map size hint
	}
}

func (s *Set) Contains(op model.Outpoint) bool {
	return s.m.Has(op)
}

// Get returns a copy of the output at op.
func (s *Set) Get(op model.Outpoint) (*model.Output, bool) {
	out, ok := s.m.Get(op)
	if !ok {
		return nil, false
	}

	return model.NewOutput(out.Value, out.Owner), true
}

// Insert adds or overwrites the output at op.
func (s *Set) Insert(op model.Outpoint, out *model.Output) {
	s.m.Put(op, *model.NewOutput(out.Value, out.Owner))
}

// Remove deletes op. Removing an absent outpoint is a no-op.
func (s *Set) Remove(op model.Outpoint) {
	s.m.Delete(op)
}

func (s *Set) Len() int {
	return s.m.Count()
}

// Clone returns a deep copy that shares nothing with s.
func (s *Set) Clone() *Set {
	clone := newSetWithCapacity(s.m.Count())

	s.m.Iter(func(op model.Outpoint, out model.Output) bool {
		clone.m.Put(op, *model.NewOutput(out.Value, out.Owner))
		return false
	})

	return clone
}

// Each calls fn for every entry in unspecified order until fn returns false.
func (s *Set) Each(fn func(op model.Outpoint, out *model.Output) bool) {
	s.m.Iter(func(op model.Outpoint, out model.Output) bool {
		return !fn(op, model.NewOutput(out.Value, out.Owner))
	})
}

// Outpoints returns every outpoint in the set, sorted.
func (s *Set) Outpoints() []model.Outpoint {
	ops := make([]model.Outpoint, 0, s.m.Count())

	s.m.Iter(func(op model.Outpoint, _ model.Output) bool {
		ops = append(ops, op)
		return false
	})

	slices.SortFunc(ops, func(a, b model.Outpoint) int {
		return a.Compare(b)
	})

	return ops
}

func (s *Set) Equal(other *Set) bool {
	if other == nil || s.m.Count() != other.m.Count() {
		return false
	}

	equal := true

	s.m.Iter(func(op model.Outpoint, out model.Output) bool {
		otherOut, ok := other.m.Get(op)
		if !ok || !out.Equal(&otherOut) {
			equal = false
			return true
		}

		return false
	})

	return equal
}

// Apply spends every outpoint tx references and adds one entry per output keyed by (tx id, index).
// It does not validate; callers apply only transactions that passed validation against s.
func (s *Set) Apply(tx *model.Transaction) {
	for _, op := range tx.Spends() {
		s.m.Delete(op)
	}

	for i := 0; i < tx.NumOutputs(); i++ {
		out := tx.Output(i)
		s.m.Put(tx.OutputOutpoint(i), *out)
	}
}
