package test

import (
	"testing"

	"github.com/bsv-blockchain/epochledger/errors"
	"github.com/bsv-blockchain/epochledger/model"
	"github.com/bsv-blockchain/epochledger/stores/utxo"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	bec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/stretchr/testify/require"
)

// Key is a deterministic key pair for tests.
type Key struct {
	Priv *bec.PrivateKey
	Pub  *bec.PublicKey
}

func (k Key) Owner() []byte {
	return k.Pub.Compressed()
}

// NewKey derives a key from name, so the same name always yields the same key.
func NewKey(name string) Key {
	priv, pub := bec.PrivateKeyFromBytes(chainhash.HashB([]byte("THIS_IS_A_DETERMINISTIC_PRIVATE_KEY_" + name)))
	return Key{Priv: priv, Pub: pub}
}

var (
	Alice = NewKey("alice")
	Bob   = NewKey("bob")
	Carol = NewKey("carol")
)

// Coin is a funding outpoint outside any transaction built in the test.
func Coin(name string, index uint32) model.Outpoint {
	return model.NewOutpoint(chainhash.DoubleHashH([]byte("coin_"+name)), index)
}

// Pool builds a set from outpoint/output pairs.
func Pool(entries map[model.Outpoint]*model.Output) *utxo.Set {
	set := utxo.NewSet()
	for op, out := range entries {
		set.Insert(op, out)
	}

	return set
}

// Spend describes an input: the outpoint and the key that signs for it.
type Spend struct {
	Outpoint model.Outpoint
	Signer   Key
}

// Pay describes an output.
type Pay struct {
	Value model.Amount
	To    Key
}

// SignedTx builds a transaction and signs every input with its spend's signer.
func SignedTx(t testing.TB, spends []Spend, pays []Pay) *model.Transaction {
	t.Helper()

	tx, err := BuildTx(spends, pays)
	require.NoError(t, err)

	return tx
}

func BuildTx(spends []Spend, pays []Pay) (*model.Transaction, error) {
	builder := model.NewTxBuilder()

	for _, s := range spends {
		builder.AddInput(s.Outpoint.TxID, s.Outpoint.Index)
	}

	for _, p := range pays {
		builder.AddOutput(p.Value, p.To.Owner())
	}

	for i, s := range spends {
		if err := builder.Sign(i, s.Signer.Priv); err != nil {
			return nil, errors.NewProcessingError("sign input %d", i, err)
		}
	}

	return builder.Build()
}

// Out returns the outpoint of output i of tx.
func Out(tx *model.Transaction, i int) model.Outpoint {
	return tx.OutputOutpoint(i)
}

// IDs returns the ids of txs in order.
func IDs(txs []*model.Transaction) []chainhash.Hash {
	ids := make([]chainhash.Hash, len(txs))
	for i, tx := range txs {
		ids[i] = tx.ID()
	}

	return ids
}
