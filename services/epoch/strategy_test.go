package epoch

import (
	"math"
	"testing"

	"github.com/bsv-blockchain/epochledger/errors"
	"github.com/bsv-blockchain/epochledger/model"
	"github.com/bsv-blockchain/epochledger/settings"
	"github.com/bsv-blockchain/epochledger/ulogger"
	"github.com/bsv-blockchain/epochledger/util/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexLess(t *testing.T) {
	set := func(positions ...int) uint64 {
		var mask uint64
		for _, p := range positions {
			mask |= 1 << uint(p)
		}

		return mask
	}

	tests := []struct {
		name string
		a, b uint64
		want bool
	}{
		{"equal", set(1, 2), set(1, 2), false},
		{"empty before anything", set(), set(0), true},
		{"anything after empty", set(5), set(), false},
		{"prefix first", set(0, 2), set(0, 2, 3), true},
		{"longer after prefix", set(0, 2, 3), set(0, 2), false},
		{"smaller first element", set(0, 9), set(1), true},
		{"larger first element", set(1), set(0, 9), false},
		{"differs late", set(0, 1, 4), set(0, 1, 5), true},
		{"top bit", set(62), set(63), true},
		{"top bit prefix", set(1), set(1, 63), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lexLess(tt.a, tt.b))
		})
	}
}

func TestMaskToPositions(t *testing.T) {
	assert.Equal(t, []int{}, maskToPositions(0))
	assert.Equal(t, []int{0, 3, 63}, maskToPositions(1|1<<3|1<<63))
}

func TestFeeTotal(t *testing.T) {
	var total feeTotal

	total = total.add(math.MaxInt64).add(math.MaxInt64).add(math.MaxInt64)
	assert.Equal(t, model.Amount(math.MaxInt64), total.amount())
	assert.Equal(t, 1, total.cmp(feeTotal{}.add(math.MaxInt64)))

	assert.Equal(t, model.Amount(12), feeTotal{}.add(5).add(7).amount())
	assert.Equal(t, 0, feeTotal{}.add(5).plus(feeTotal{}.add(7)).cmp(feeTotal{}.add(12)))

	assert.True(t, ratioGreater(3, 1, 5, 2))
	assert.False(t, ratioGreater(4, 2, 2, 1))
	assert.True(t, ratioGreater(math.MaxInt64, 1, math.MaxInt64, 2))
}

// candidates builds strategy input directly: spends[i] lists coin names candidate i spends.
func candidates(t *testing.T, fees []model.Amount, spends [][]string) ([]Candidate, *ConflictGraph) {
	t.Helper()
	require.Len(t, spends, len(fees))

	cs := make([]Candidate, len(fees))

	for i := range fees {
		ops := make([]model.Outpoint, len(spends[i]))
		for j, name := range spends[i] {
			ops[j] = test.Coin(name, 0)
		}

		cs[i] = Candidate{Index: i, Tx: spend(t, ops, 1), Fee: fees[i]}
	}

	return cs, NewConflictGraph(cs)
}

func TestConflictGraph(t *testing.T) {
	_, g := candidates(t, []model.Amount{1, 1, 1, 1}, [][]string{{"a"}, {"a", "b"}, {"b"}, {"c"}})

	assert.Equal(t, 4, g.Len())
	assert.True(t, g.Conflicts(0, 1))
	assert.True(t, g.Conflicts(1, 2))
	assert.False(t, g.Conflicts(0, 2))
	assert.False(t, g.Conflicts(3, 0))

	assert.Equal(t, []int{0, 2}, g.Neighbours(1))
	assert.Equal(t, 2, g.Degree(1))
	assert.Equal(t, 0, g.Degree(3))

	assert.True(t, g.Independent([]int{0, 2, 3}))
	assert.False(t, g.Independent([]int{0, 1}))

	assert.Equal(t, []uint64{1 << 1, 1<<0 | 1<<2, 1 << 1, 0}, g.masks())
}

func TestExhaustiveStrategy(t *testing.T) {
	s := NewExhaustiveStrategy()
	assert.Equal(t, "exhaustive", s.Name())

	t.Run("path graph", func(t *testing.T) {
		// 0-1-2-3, best is {1,3}
		cs, g := candidates(t, []model.Amount{2, 5, 1, 4}, [][]string{{"a"}, {"a", "b"}, {"b", "c"}, {"c"}})

		chosen, err := s.Select(cs, g)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 3}, chosen)
	})

	t.Run("empty", func(t *testing.T) {
		chosen, err := s.Select(nil, NewConflictGraph(nil))
		require.NoError(t, err)
		assert.Empty(t, chosen)
	})

	t.Run("too many candidates", func(t *testing.T) {
		cs := make([]Candidate, settings.MaxExhaustiveCandidates+1)

		_, err := s.Select(cs, &ConflictGraph{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrThresholdExceeded))
	})

	t.Run("wide independent set", func(t *testing.T) {
		fees := make([]model.Amount, 40)
		spends := make([][]string, 40)

		for i := range fees {
			fees[i] = model.Amount(i + 1)
			spends[i] = []string{string(rune('A' + i))}
		}

		cs, g := candidates(t, fees, spends)

		chosen, err := s.Select(cs, g)
		require.NoError(t, err)
		assert.Len(t, chosen, 40)
	})

	t.Run("wide zero fee batch", func(t *testing.T) {
		fees := make([]model.Amount, 50)
		spends := make([][]string, 50)

		for i := range fees {
			spends[i] = []string{"zero" + string(rune('A'+i))}
		}

		cs, g := candidates(t, fees, spends)

		// every subset ties at zero, the empty sequence sorts first
		chosen, err := s.Select(cs, g)
		require.NoError(t, err)
		assert.Empty(t, chosen)
	})

	t.Run("wide equal fee pairs", func(t *testing.T) {
		fees := make([]model.Amount, 50)
		spends := make([][]string, 50)
		want := make([]int, 0, 25)

		for i := range fees {
			fees[i] = 1
			spends[i] = []string{"pair" + string(rune('A'+i/2))}

			if i%2 == 0 {
				want = append(want, i)
			}
		}

		cs, g := candidates(t, fees, spends)

		chosen, err := s.Select(cs, g)
		require.NoError(t, err)
		assert.Equal(t, want, chosen)
	})
}

func TestGreedyStrategy(t *testing.T) {
	s := NewGreedyStrategy()
	assert.Equal(t, "greedy", s.Name())

	t.Run("star prefers the leaves", func(t *testing.T) {
		// centre 0 conflicts with 1,2,3: ratio 5/4 against 3/2 for each leaf
		cs, g := candidates(t, []model.Amount{5, 3, 3, 3}, [][]string{{"a", "b", "c"}, {"a"}, {"b"}, {"c"}})

		chosen, err := s.Select(cs, g)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, chosen)
		assert.True(t, g.Independent(chosen))
	})

	t.Run("ties go to the lower position", func(t *testing.T) {
		cs, g := candidates(t, []model.Amount{4, 4}, [][]string{{"a"}, {"a"}})

		chosen, err := s.Select(cs, g)
		require.NoError(t, err)
		assert.Equal(t, []int{0}, chosen)
	})

	t.Run("not always optimal", func(t *testing.T) {
		// greedy takes 1 (12/3) and loses 0 and 2 (7+7)
		cs, g := candidates(t, []model.Amount{7, 12, 7}, [][]string{{"a"}, {"a", "b"}, {"b"}})

		chosen, err := s.Select(cs, g)
		require.NoError(t, err)
		assert.Equal(t, []int{1}, chosen)

		exact, err := NewExhaustiveStrategy().Select(cs, g)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 2}, exact)
	})
}

func TestBoundedStrategy_Configuration(t *testing.T) {
	logger := ulogger.TestLogger{}

	tests := []struct {
		name     string
		limit    int
		oversize string
		fallback Strategy
	}{
		{"zero limit", 0, settings.OversizeReject, nil},
		{"limit above mask width", settings.MaxExhaustiveCandidates + 1, settings.OversizeReject, nil},
		{"unknown policy", 5, "drop", nil},
		{"greedy without fallback", 5, settings.OversizeGreedy, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBoundedStrategy(logger, NewExhaustiveStrategy(), tt.fallback, tt.limit, tt.oversize)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrConfiguration))
		})
	}

	s, err := NewBoundedStrategy(logger, NewExhaustiveStrategy(), nil, 5, settings.OversizeReject)
	require.NoError(t, err)
	assert.Equal(t, "bounded(exhaustive)", s.Name())
}

func TestBoundedStrategy_Select(t *testing.T) {
	cs, g := candidates(t, []model.Amount{7, 12, 7}, [][]string{{"a"}, {"a", "b"}, {"b"}})

	t.Run("within limit is exact", func(t *testing.T) {
		s, err := NewBoundedStrategy(ulogger.TestLogger{}, NewExhaustiveStrategy(), NewGreedyStrategy(), 3, settings.OversizeGreedy)
		require.NoError(t, err)

		chosen, err := s.Select(cs, g)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 2}, chosen)
	})

	t.Run("above limit falls back", func(t *testing.T) {
		s, err := NewBoundedStrategy(ulogger.TestLogger{}, NewExhaustiveStrategy(), NewGreedyStrategy(), 2, settings.OversizeGreedy)
		require.NoError(t, err)

		chosen, err := s.Select(cs, g)
		require.NoError(t, err)
		assert.Equal(t, []int{1}, chosen)
	})

	t.Run("above limit rejects", func(t *testing.T) {
		s, err := NewBoundedStrategy(ulogger.TestLogger{}, NewExhaustiveStrategy(), NewGreedyStrategy(), 2, settings.OversizeReject)
		require.NoError(t, err)

		_, err = s.Select(cs, g)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrThresholdExceeded))
	})
}
