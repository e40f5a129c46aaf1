package epoch

import (
	"time"

	"github.com/bsv-blockchain/epochledger/errors"
	"github.com/bsv-blockchain/epochledger/model"
	"github.com/bsv-blockchain/epochledger/services/validator"
	"github.com/bsv-blockchain/epochledger/settings"
	"github.com/bsv-blockchain/epochledger/stores/utxo"
	"github.com/bsv-blockchain/epochledger/ulogger"
)

// Selector accepts the conflict free subset of the batch with the greatest total fee.
//
// Every candidate is judged against the original pool only: a transaction spending an output
// created by another candidate of the same batch is infeasible here, even if both would fit
// when applied in sequence. Two feasible candidates conflict when they spend a common outpoint.
type Selector struct {
	logger    ulogger.Logger
	validator validator.Interface
	strategy  Strategy
}

// NewSelector searches exhaustively up to settings.DefaultMaxCandidates feasible candidates and
// rejects larger batches, unless WithStrategy says otherwise.
func NewSelector(logger ulogger.Logger, v validator.Interface, opts ...Option) *Selector {
	initPrometheusMetrics()

	options := ProcessOptions(opts...)

	strategy := options.strategy
	if strategy == nil {
		strategy = &BoundedStrategy{
			logger:   logger,
			exact:    NewExhaustiveStrategy(),
			fallback: NewGreedyStrategy(),
			limit:    settings.DefaultMaxCandidates,
			oversize: settings.OversizeReject,
		}
	}

	return &Selector{
		logger:    logger,
		validator: v,
		strategy:  strategy,
	}
}

// Process fails only when the strategy refuses the batch, for example with ERR_THRESHOLD_EXCEEDED.
func (s *Selector) Process(pool *utxo.Set, candidates []*model.Transaction) (*Result, error) {
	start := time.Now()

	if pool == nil {
		pool = utxo.NewSet()
	}

	result := newResult(pool)

	feasible := make([]Candidate, 0, len(candidates))

	for i, tx := range candidates {
		r := s.validator.Validate(pool, tx)
		if !r.Valid() {
			result.Rejected[i] = r.Err
			continue
		}

		feasible = append(feasible, Candidate{Index: i, Tx: tx, Fee: r.Fee})
	}

	graph := NewConflictGraph(feasible)

	searchStart := time.Now()

	chosen, err := s.strategy.Select(feasible, graph)
	if err != nil {
		s.logger.Warnf("[Selector][%s] %s strategy failed on %d feasible candidates: %v", result.RunID, s.strategy.Name(), len(feasible), err)
		return nil, err
	}

	prometheusEpochSelectorSearch.Observe(time.Since(searchStart).Seconds())

	for _, pos := range chosen {
		if pos < 0 || pos >= len(feasible) {
			return nil, errors.NewProcessingError("[Selector] %s strategy returned position %d of %d", s.strategy.Name(), pos, len(feasible))
		}
	}

	if !graph.Independent(chosen) {
		return nil, errors.NewProcessingError("[Selector] %s strategy returned conflicting candidates", s.strategy.Name())
	}

	selected := make([]bool, len(feasible))
	for _, pos := range chosen {
		selected[pos] = true
	}

	var total feeTotal

	for pos, c := range feasible {
		if !selected[pos] {
			result.Rejected[c.Index] = errors.NewTxConflictingError("candidate %d not in the %s fee set", c.Index, s.strategy.Name())
			continue
		}

		total = total.add(c.Fee)

		result.Accepted = append(result.Accepted, c.Tx)
		result.Pool.Apply(c.Tx)
	}

	result.TotalFees = total.amount()

	prometheusEpochAccepted.WithLabelValues(settings.PolicyMaxFee).Add(float64(len(result.Accepted)))
	prometheusEpochRejected.WithLabelValues(settings.PolicyMaxFee).Add(float64(len(result.Rejected)))
	prometheusEpochProcess.WithLabelValues(settings.PolicyMaxFee).Observe(time.Since(start).Seconds())

	s.logger.Infof("[Selector][%s] accepted %d of %d candidates (%d feasible), fees %d", result.RunID, len(result.Accepted), len(candidates), len(feasible), result.TotalFees)

	return result, nil
}
