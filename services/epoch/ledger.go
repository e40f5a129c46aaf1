package epoch

import (
	"sync"

	"github.com/bsv-blockchain/epochledger/model"
	"github.com/bsv-blockchain/epochledger/stores/utxo"
	"github.com/bsv-blockchain/epochledger/ulogger"
)

// Ledger keeps the canonical pool between epochs and feeds each batch through its handler.
// Epochs are serialized; the pool is never handed out without copying.
type Ledger struct {
	mu      sync.Mutex
	logger  ulogger.Logger
	handler Handler
	pool    *utxo.Set
	epochs  uint64
}

func NewLedger(logger ulogger.Logger, pool *utxo.Set, handler Handler) *Ledger {
	return &Ledger{
		logger:  logger,
		handler: handler,
		pool:    utxo.NewSetFrom(pool),
	}
}

// HandleTxs runs one epoch and, when it succeeds, makes its pool the canonical one.
// On failure the canonical pool is unchanged.
func (l *Ledger) HandleTxs(candidates []*model.Transaction) (*Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	result, err := l.handler.Process(l.pool, candidates)
	if err != nil {
		return nil, err
	}

	l.pool = result.Pool
	result.Pool = result.Pool.Clone()
	l.epochs++

	l.logger.Debugf("[Ledger] epoch %d (%s) done, pool holds %d outputs", l.epochs, result.RunID, l.pool.Len())

	return result, nil
}

// Pool returns a copy of the canonical pool.
func (l *Ledger) Pool() *utxo.Set {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.pool.Clone()
}

// Epochs returns the number of epochs applied so far.
func (l *Ledger) Epochs() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.epochs
}
