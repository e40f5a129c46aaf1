package epoch

import (
	"testing"

	"github.com/bsv-blockchain/epochledger/model"
	"github.com/bsv-blockchain/epochledger/services/validator"
	"github.com/bsv-blockchain/epochledger/settings"
	"github.com/bsv-blockchain/epochledger/stores/utxo"
	"github.com/bsv-blockchain/epochledger/ulogger"
	"github.com/bsv-blockchain/epochledger/util/test"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/stretchr/testify/require"
)

func newTestValidator() *validator.Validator {
	return validator.New(ulogger.TestLogger{}, settings.NewSettings())
}

// spend builds a tx spending ops, each owned by Alice, with one output to Alice per value.
func spend(t *testing.T, ops []model.Outpoint, values ...model.Amount) *model.Transaction {
	t.Helper()

	spends := make([]test.Spend, len(ops))
	for i, op := range ops {
		spends[i] = test.Spend{Outpoint: op, Signer: test.Alice}
	}

	pays := make([]test.Pay, len(values))
	for i, v := range values {
		pays[i] = test.Pay{Value: v, To: test.Alice}
	}

	return test.SignedTx(t, spends, pays)
}

func alicePool(values map[model.Outpoint]model.Amount) *utxo.Set {
	set := utxo.NewSet()
	for op, v := range values {
		set.Insert(op, model.NewOutput(v, test.Alice.Owner()))
	}

	return set
}

func poolValue(t *testing.T, set *utxo.Set) model.Amount {
	t.Helper()

	var total model.Amount

	set.Each(func(_ model.Outpoint, out *model.Output) bool {
		total += out.Value
		return true
	})

	return total
}

func indicesOf(t *testing.T, batch, accepted []*model.Transaction) []int {
	t.Helper()

	indices := make([]int, 0, len(accepted))

	for _, tx := range accepted {
		found := false

		for i, candidate := range batch {
			if candidate == tx {
				indices = append(indices, i)
				found = true

				break
			}
		}

		require.True(t, found, "accepted tx %s is not in the batch", tx.ID())
	}

	return indices
}

func idSet(txs []*model.Transaction) map[chainhash.Hash]struct{} {
	ids := make(map[chainhash.Hash]struct{}, len(txs))
	for _, tx := range txs {
		ids[tx.ID()] = struct{}{}
	}

	return ids
}

func requireNoDoubleSpend(t *testing.T, accepted []*model.Transaction) {
	t.Helper()

	seen := map[model.Outpoint]struct{}{}

	for _, tx := range accepted {
		for _, op := range tx.Spends() {
			_, dup := seen[op]
			require.False(t, dup, "outpoint %s spent twice", op)

			seen[op] = struct{}{}
		}
	}
}
