package model

import (
	"bytes"
	"fmt"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
)

// Amount is a fixed-point count of the smallest currency unit.
type Amount int64

// Outpoint identifies an unspent output by the transaction that produced it and the output index.
type Outpoint struct {
	TxID  chainhash.Hash
	Index uint32
}

func NewOutpoint(txID chainhash.Hash, index uint32) Outpoint {
	return Outpoint{TxID: txID, Index: index}
}

func (o Outpoint) String() string {
	return fmt.Sprintf("%s:%d", o.TxID.String(), o.Index)
}

// Compare orders outpoints by the raw tx id bytes, then by index.
func (o Outpoint) Compare(other Outpoint) int {
	if c := bytes.Compare(o.TxID[:], other.TxID[:]); c != 0 {
		return c
	}

	switch {
	case o.Index < other.Index:
		return -1
	case o.Index > other.Index:
		return 1
	default:
		return 0
	}
}

// Output is immutable once created. Owner is a compressed secp256k1 public key.
type Output struct {
	Value Amount
	Owner []byte
}

func NewOutput(value Amount, owner []byte) *Output {
	return &Output{
		Value: value,
		Owner: bytes.Clone(owner),
	}
}

func (o *Output) Equal(other *Output) bool {
	if o == nil || other == nil {
		return o == other
	}

	return o.Value == other.Value && bytes.Equal(o.Owner, other.Owner)
}

// Input spends PreviousOutpoint. Index is the input's position within its transaction.
type Input struct {
	PreviousOutpoint Outpoint
	Signature        []byte
	Index            int
}
