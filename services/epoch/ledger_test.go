package epoch

import (
	"context"
	"testing"

	"github.com/bsv-blockchain/epochledger/errors"
	"github.com/bsv-blockchain/epochledger/model"
	"github.com/bsv-blockchain/epochledger/settings"
	"github.com/bsv-blockchain/epochledger/stores/utxo"
	"github.com/bsv-blockchain/epochledger/ulogger"
	"github.com/bsv-blockchain/epochledger/util/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_SuccessiveEpochs(t *testing.T) {
	o1 := test.Coin("O1", 0)
	genesis := alicePool(map[model.Outpoint]model.Amount{o1: 10})

	ledger := NewLedger(ulogger.TestLogger{}, genesis, newTestAcceptor())

	// the ledger took a copy
	genesis.Remove(o1)
	assert.True(t, ledger.Pool().Contains(o1))

	t1 := spend(t, []model.Outpoint{o1}, 9)

	result, err := ledger.HandleTxs([]*model.Transaction{t1})
	require.NoError(t, err)
	assert.Equal(t, []*model.Transaction{t1}, result.Accepted)

	t2 := spend(t, []model.Outpoint{test.Out(t1, 0)}, 8)

	result, err = ledger.HandleTxs([]*model.Transaction{t2, t1})
	require.NoError(t, err)
	assert.Equal(t, []*model.Transaction{t2}, result.Accepted)
	assert.Equal(t, uint64(2), ledger.Epochs())

	pool := ledger.Pool()
	assert.Equal(t, 1, pool.Len())
	assert.True(t, pool.Contains(test.Out(t2, 0)))

	// neither the returned result nor Pool() alias the canonical pool
	result.Pool.Remove(test.Out(t2, 0))
	pool.Remove(test.Out(t2, 0))
	assert.True(t, ledger.Pool().Contains(test.Out(t2, 0)))
}

type failingHandler struct{}

func (failingHandler) Process(_ *utxo.Set, _ []*model.Transaction) (*Result, error) {
	return nil, errors.NewThresholdExceededError("too big")
}

func TestLedger_FailureKeepsPool(t *testing.T) {
	o1 := test.Coin("O1", 0)
	ledger := NewLedger(ulogger.TestLogger{}, alicePool(map[model.Outpoint]model.Amount{o1: 10}), failingHandler{})

	_, err := ledger.HandleTxs([]*model.Transaction{spend(t, []model.Outpoint{o1}, 1)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrThresholdExceeded))

	assert.True(t, ledger.Pool().Contains(o1))
	assert.Equal(t, uint64(0), ledger.Epochs())
}

func TestLedger_NilPool(t *testing.T) {
	ledger := NewLedger(ulogger.TestLogger{}, nil, newTestSelector())

	result, err := ledger.HandleTxs(nil)
	require.NoError(t, err)
	assert.Empty(t, result.Accepted)
	assert.Equal(t, 0, ledger.Pool().Len())
}

func TestProcessForks(t *testing.T) {
	o1 := test.Coin("O1", 0)
	shared := alicePool(map[model.Outpoint]model.Amount{o1: 10})

	ta := spend(t, []model.Outpoint{o1}, 9)
	tb := spend(t, []model.Outpoint{o1}, 2)

	forks := []Fork{
		{Name: "a", Pool: shared, Candidates: []*model.Transaction{ta, tb}},
		{Name: "b", Pool: shared, Candidates: []*model.Transaction{tb, ta}},
		{Name: "empty", Pool: shared},
	}

	results, err := ProcessForks(context.Background(), newTestAcceptor(), forks, 2)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "a", results[0].Name)
	assert.Equal(t, []*model.Transaction{ta}, results[0].Result.Accepted)
	assert.Equal(t, []*model.Transaction{tb}, results[1].Result.Accepted)
	assert.Empty(t, results[2].Result.Accepted)

	// each fork worked on its own copy
	assert.True(t, shared.Contains(o1))
	assert.Equal(t, 1, shared.Len())
	assert.True(t, results[0].Result.Pool.Contains(test.Out(ta, 0)))
	assert.False(t, results[1].Result.Pool.Contains(test.Out(ta, 0)))
}

func TestProcessForks_Errors(t *testing.T) {
	forks := []Fork{{Name: "x", Pool: utxo.NewSet()}}

	t.Run("bad concurrency", func(t *testing.T) {
		_, err := ProcessForks(context.Background(), newTestAcceptor(), forks, 0)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrInvalidArgument))
	})

	t.Run("handler failure", func(t *testing.T) {
		_, err := ProcessForks(context.Background(), failingHandler{}, forks, 1)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrThresholdExceeded))
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := ProcessForks(ctx, newTestAcceptor(), forks, 1)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestNewHandler(t *testing.T) {
	v := newTestValidator()

	t.Run("count", func(t *testing.T) {
		h, err := NewHandler(ulogger.TestLogger{}, settings.NewSettings(), v)
		require.NoError(t, err)

		_, ok := h.(*Acceptor)
		assert.True(t, ok)
	})

	t.Run("maxfee", func(t *testing.T) {
		tSettings := settings.NewSettings()
		tSettings.Epoch.Policy = settings.PolicyMaxFee
		tSettings.Epoch.MaxCandidates = 2

		h, err := NewHandler(ulogger.TestLogger{}, tSettings, v)
		require.NoError(t, err)

		selector, ok := h.(*Selector)
		require.True(t, ok)
		assert.Equal(t, "bounded(exhaustive)", selector.strategy.Name())

		pool, batch := independentBatch(t, 3)

		_, err = h.Process(pool, batch)
		assert.True(t, errors.Is(err, errors.ErrThresholdExceeded))
	})

	t.Run("bad settings", func(t *testing.T) {
		tSettings := settings.NewSettings()
		tSettings.Epoch.Policy = "random"

		_, err := NewHandler(ulogger.TestLogger{}, tSettings, v)
		assert.True(t, errors.Is(err, errors.ErrConfiguration))
	})
}
