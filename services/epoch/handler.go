/*
Package epoch chooses which transactions of a batch are applied to the pool of unspent outputs.

Two policies are provided. Acceptor accepts as many valid, mutually consistent transactions as
possible by passing over the batch until a pass accepts nothing, so chains of dependent
transactions are accepted in any submission order. Selector instead picks the conflict free
subset of transactions valid against the original pool with the greatest total fee.

Both are pure batch transforms: the supplied pool is cloned, only the clone is mutated, and the
clone is returned as the new pool.
*/
package epoch

import (
	"github.com/bsv-blockchain/epochledger/errors"
	"github.com/bsv-blockchain/epochledger/model"
	"github.com/bsv-blockchain/epochledger/services/validator"
	"github.com/bsv-blockchain/epochledger/settings"
	"github.com/bsv-blockchain/epochledger/stores/utxo"
	"github.com/bsv-blockchain/epochledger/ulogger"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/google/uuid"
)

// Handler processes one epoch.
type Handler interface {
	Process(pool *utxo.Set, candidates []*model.Transaction) (*Result, error)
}

// Result is the outcome of an epoch.
type Result struct {
	RunID uuid.UUID
	// Accepted is in acceptance order for Acceptor and in batch order for Selector.
	Accepted []*model.Transaction
	// Pool is the new pool, owned by the caller.
	Pool      *utxo.Set
	TotalFees model.Amount
	// Rejected maps the batch position of every candidate that was left out to the reason.
	Rejected map[int]error
}

// AcceptedIDs returns the ids of the accepted transactions in order.
func (r *Result) AcceptedIDs() []chainhash.Hash {
	ids := make([]chainhash.Hash, len(r.Accepted))
	for i, tx := range r.Accepted {
		ids[i] = tx.ID()
	}

	return ids
}

func newResult(pool *utxo.Set) *Result {
	return &Result{
		RunID:    uuid.New(),
		Accepted: []*model.Transaction{},
		Pool:     utxo.NewSetFrom(pool),
		Rejected: map[int]error{},
	}
}

// NewHandler builds the handler configured by tSettings.
func NewHandler(logger ulogger.Logger, tSettings *settings.Settings, v validator.Interface) (Handler, error) {
	if err := tSettings.Validate(); err != nil {
		return nil, err
	}

	switch tSettings.Epoch.Policy {
	case settings.PolicyCount:
		return NewAcceptor(logger, v), nil
	case settings.PolicyMaxFee:
		strategy, err := NewBoundedStrategy(logger, NewExhaustiveStrategy(), NewGreedyStrategy(), tSettings.Epoch.MaxCandidates, tSettings.Epoch.OversizePolicy)
		if err != nil {
			return nil, err
		}

		return NewSelector(logger, v, WithStrategy(strategy)), nil
	default:
		return nil, errors.NewConfigurationError("unknown epoch policy %q", tSettings.Epoch.Policy)
	}
}
