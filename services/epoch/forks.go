package epoch

import (
	"context"

	"github.com/bsv-blockchain/epochledger/errors"
	"github.com/bsv-blockchain/epochledger/model"
	"github.com/bsv-blockchain/epochledger/stores/utxo"
	"github.com/bsv-blockchain/epochledger/util"
	"golang.org/x/sync/errgroup"
)

// Fork is one competing view of an epoch: its own starting pool and batch.
type Fork struct {
	Name       string
	Pool       *utxo.Set
	Candidates []*model.Transaction
}

type ForkResult struct {
	Name   string
	Result *Result
}

// ProcessForks runs every fork through handler with at most concurrency epochs in flight.
// Results are returned in fork order. The first failure cancels the forks not yet started.
func ProcessForks(ctx context.Context, handler Handler, forks []Fork, concurrency int) ([]*ForkResult, error) {
	if concurrency < 1 {
		return nil, errors.NewInvalidArgumentError("fork concurrency must be positive, got %d", concurrency)
	}

	initPrometheusMetrics()

	results := make([]*ForkResult, len(forks))

	g, gCtx := errgroup.WithContext(ctx)
	util.SafeSetLimit(g, concurrency)

	for i := range forks {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			result, err := handler.Process(forks[i].Pool, forks[i].Candidates)
			if err != nil {
				return errors.NewProcessingError("fork %q failed", forks[i].Name, err)
			}

			prometheusEpochForks.Inc()

			results[i] = &ForkResult{
				Name:   forks[i].Name,
				Result: result,
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
