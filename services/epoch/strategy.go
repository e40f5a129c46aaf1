package epoch

import (
	"math/bits"

	"github.com/bsv-blockchain/epochledger/errors"
	"github.com/bsv-blockchain/epochledger/model"
	"github.com/bsv-blockchain/epochledger/settings"
	"github.com/bsv-blockchain/epochledger/ulogger"
	"golang.org/x/exp/slices"
)

// Candidate is a transaction that is valid against the epoch's original pool.
type Candidate struct {
	// Index is the position of the transaction in the submitted batch.
	Index int
	Tx    *model.Transaction
	Fee   model.Amount
}

// Strategy picks a conflict free subset of candidates. It returns positions into candidates
// in increasing order.
type Strategy interface {
	Name() string
	Select(candidates []Candidate, graph *ConflictGraph) ([]int, error)
}

// ExhaustiveStrategy finds the maximum total fee independent set exactly. Among equal totals it
// returns the set whose sorted positions form the lexicographically smallest sequence.
type ExhaustiveStrategy struct{}

func NewExhaustiveStrategy() *ExhaustiveStrategy {
	return &ExhaustiveStrategy{}
}

func (s *ExhaustiveStrategy) Name() string {
	return "exhaustive"
}

func (s *ExhaustiveStrategy) Select(candidates []Candidate, graph *ConflictGraph) ([]int, error) {
	n := len(candidates)
	if n > settings.MaxExhaustiveCandidates {
		return nil, errors.NewThresholdExceededError("exhaustive search supports at most %d candidates, got %d", settings.MaxExhaustiveCandidates, n)
	}

	if n == 0 {
		return []int{}, nil
	}

	search := &exhaustiveSearch{
		fees:   make([]model.Amount, n),
		adj:    graph.masks(),
		suffix: make([]feeTotal, n+1),
	}

	for i, c := range candidates {
		search.fees[i] = c.Fee
	}

	for i := n - 1; i >= 0; i-- {
		search.suffix[i] = search.suffix[i+1].add(search.fees[i])
	}

	search.run(0, 0, 0, feeTotal{})

	return maskToPositions(search.bestMask), nil
}

type exhaustiveSearch struct {
	fees     []model.Amount
	adj      []uint64
	suffix   []feeTotal
	best     feeTotal
	bestMask uint64
}

// run decides position i onwards. chosen holds the positions taken so far and blocked
// everything adjacent to them.
func (s *exhaustiveSearch) run(i int, chosen, blocked uint64, total feeTotal) {
	if i == len(s.fees) {
		if c := total.cmp(s.best); c > 0 || (c == 0 && lexLess(chosen, s.bestMask)) {
			s.best = total
			s.bestMask = chosen
		}

		return
	}

	// nothing below can beat the best total, or only tie it with a larger sequence
	switch total.plus(s.suffix[i]).cmp(s.best) {
	case -1:
		return
	case 0:
		if !lexLess(chosen, s.bestMask) && !lexLess(chosen|^uint64(0)<<uint(i), s.bestMask) {
			return
		}
	}

	bit := uint64(1) << uint(i)

	if blocked&bit == 0 {
		s.run(i+1, chosen|bit, blocked|s.adj[i], total.add(s.fees[i]))
	}

	s.run(i+1, chosen, blocked, total)
}

// lexLess orders two position sets by their sorted sequences, a proper prefix sorting first.
func lexLess(a, b uint64) bool {
	diff := a ^ b
	if diff == 0 {
		return false
	}

	d := uint(bits.TrailingZeros64(diff))
	above := ^uint64(0) << (d + 1)

	if a&(1<<d) != 0 {
		// a continues with d, b continues with something larger or ends
		return b&above != 0
	}

	// b continues with d, a is smaller only if it ends here
	return a&above == 0
}

func maskToPositions(mask uint64) []int {
	positions := make([]int, 0, bits.OnesCount64(mask))

	for mask != 0 {
		i := bits.TrailingZeros64(mask)
		positions = append(positions, i)
		mask &= mask - 1
	}

	return positions
}

// GreedyStrategy approximates the maximum fee set in polynomial time: it repeatedly takes the
// candidate with the greatest fee/(conflicts+1), lowest position on ties, and discards its
// neighbours. The result is conflict free but not necessarily optimal.
type GreedyStrategy struct{}

func NewGreedyStrategy() *GreedyStrategy {
	return &GreedyStrategy{}
}

func (s *GreedyStrategy) Name() string {
	return "greedy"
}

func (s *GreedyStrategy) Select(candidates []Candidate, graph *ConflictGraph) ([]int, error) {
	n := len(candidates)
	alive := make([]bool, n)
	degree := make([]int, n)

	for i := range candidates {
		alive[i] = true
		degree[i] = graph.Degree(i)
	}

	selected := make([]int, 0, n)

	for {
		pick := -1

		for i := 0; i < n; i++ {
			if !alive[i] {
				continue
			}

			if pick == -1 || ratioGreater(candidates[i].Fee, uint64(degree[i])+1, candidates[pick].Fee, uint64(degree[pick])+1) { //nolint:gosec // degrees are non-negative
				pick = i
			}
		}

		if pick == -1 {
			break
		}

		selected = append(selected, pick)
		s.remove(pick, alive, degree, graph)

		for _, j := range graph.Neighbours(pick) {
			if alive[j] {
				s.remove(j, alive, degree, graph)
			}
		}
	}

	slices.Sort(selected)

	return selected, nil
}

func (s *GreedyStrategy) remove(i int, alive []bool, degree []int, graph *ConflictGraph) {
	alive[i] = false

	for _, j := range graph.Neighbours(i) {
		if alive[j] {
			degree[j]--
		}
	}
}

// BoundedStrategy runs the exact strategy while the candidate count is within limit. Above it the
// oversize policy applies: settings.OversizeReject fails with ERR_THRESHOLD_EXCEEDED and
// settings.OversizeGreedy falls back to the approximation.
type BoundedStrategy struct {
	logger   ulogger.Logger
	exact    Strategy
	fallback Strategy
	limit    int
	oversize string
}

func NewBoundedStrategy(logger ulogger.Logger, exact, fallback Strategy, limit int, oversize string) (*BoundedStrategy, error) {
	if limit < 1 || limit > settings.MaxExhaustiveCandidates {
		return nil, errors.NewConfigurationError("candidate limit must be between 1 and %d, got %d", settings.MaxExhaustiveCandidates, limit)
	}

	switch oversize {
	case settings.OversizeReject, settings.OversizeGreedy:
	default:
		return nil, errors.NewConfigurationError("unknown oversize policy %q", oversize)
	}

	if exact == nil || (oversize == settings.OversizeGreedy && fallback == nil) {
		return nil, errors.NewConfigurationError("bounded strategy needs an exact strategy and, for %q, a fallback", settings.OversizeGreedy)
	}

	initPrometheusMetrics()

	return &BoundedStrategy{
		logger:   logger,
		exact:    exact,
		fallback: fallback,
		limit:    limit,
		oversize: oversize,
	}, nil
}

func (s *BoundedStrategy) Name() string {
	return "bounded(" + s.exact.Name() + ")"
}

func (s *BoundedStrategy) Select(candidates []Candidate, graph *ConflictGraph) ([]int, error) {
	if len(candidates) <= s.limit {
		return s.exact.Select(candidates, graph)
	}

	if s.oversize == settings.OversizeReject {
		return nil, errors.NewThresholdExceededError("%d feasible candidates exceed the exhaustive search limit of %d", len(candidates), s.limit)
	}

	s.logger.Warnf("[BoundedStrategy] %d feasible candidates exceed the limit of %d, using %s approximation", len(candidates), s.limit, s.fallback.Name())
	prometheusEpochApproximations.Inc()

	return s.fallback.Select(candidates, graph)
}
