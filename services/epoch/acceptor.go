package epoch

import (
	"time"

	"github.com/bsv-blockchain/epochledger/model"
	"github.com/bsv-blockchain/epochledger/services/validator"
	"github.com/bsv-blockchain/epochledger/settings"
	"github.com/bsv-blockchain/epochledger/stores/utxo"
	"github.com/bsv-blockchain/epochledger/ulogger"
)

// Acceptor maximizes the number of accepted transactions. It passes over the batch in the
// submitted order, accepting and applying every candidate valid against the working pool, and
// stops after the first pass that accepts nothing. Transactions spending each other's outputs
// in a cycle never validate and stay rejected.
type Acceptor struct {
	logger    ulogger.Logger
	validator validator.Interface
}

func NewAcceptor(logger ulogger.Logger, v validator.Interface) *Acceptor {
	initPrometheusMetrics()

	return &Acceptor{
		logger:    logger,
		validator: v,
	}
}

// Process never fails; the error is there to satisfy Handler.
func (a *Acceptor) Process(pool *utxo.Set, candidates []*model.Transaction) (*Result, error) {
	start := time.Now()
	result := newResult(pool)

	var (
		accepted = make([]bool, len(candidates))
		total    feeTotal
		passes   int
	)

	for progress := len(candidates) > 0; progress; {
		progress = false
		passes++

		for i, tx := range candidates {
			if accepted[i] {
				continue
			}

			r := a.validator.Validate(result.Pool, tx)
			if !r.Valid() {
				result.Rejected[i] = r.Err
				continue
			}

			delete(result.Rejected, i)

			accepted[i] = true
			progress = true
			total = total.add(r.Fee)

			result.Accepted = append(result.Accepted, tx)
			result.Pool.Apply(tx)
		}
	}

	result.TotalFees = total.amount()

	prometheusEpochAcceptorPasses.Observe(float64(passes))
	prometheusEpochAccepted.WithLabelValues(settings.PolicyCount).Add(float64(len(result.Accepted)))
	prometheusEpochRejected.WithLabelValues(settings.PolicyCount).Add(float64(len(result.Rejected)))
	prometheusEpochProcess.WithLabelValues(settings.PolicyCount).Observe(time.Since(start).Seconds())

	a.logger.Infof("[Acceptor][%s] accepted %d of %d candidates in %d passes, fees %d", result.RunID, len(result.Accepted), len(candidates), passes, result.TotalFees)

	return result, nil
}
