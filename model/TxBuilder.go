package model

import (
	"bytes"
	"math"

	"github.com/bsv-blockchain/epochledger/errors"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	bec "github.com/bsv-blockchain/go-sdk/primitives/ec"
)

// TxBuilder assembles a Transaction. Signatures are attached after the structure is complete,
// since the signing payload covers every input and output.
type TxBuilder struct {
	inputs  []Input
	outputs []Output
}

func NewTxBuilder() *TxBuilder {
	return &TxBuilder{}
}

func (b *TxBuilder) AddInput(prevTxID chainhash.Hash, index uint32) *TxBuilder {
	b.inputs = append(b.inputs, Input{
		PreviousOutpoint: Outpoint{TxID: prevTxID, Index: index},
		Index:            len(b.inputs),
	})

	return b
}

func (b *TxBuilder) AddOutput(value Amount, owner []byte) *TxBuilder {
	b.outputs = append(b.outputs, Output{Value: value, Owner: bytes.Clone(owner)})
	return b
}

// SetSignature attaches a precomputed signature to input i.
func (b *TxBuilder) SetSignature(i int, signature []byte) error {
	if i < 0 || i >= len(b.inputs) {
		return errors.NewInvalidArgumentError("input index %d out of range [0,%d)", i, len(b.inputs))
	}

	b.inputs[i].Signature = bytes.Clone(signature)

	return nil
}

// Sign signs input i with privKey over the signing payload of the transaction built so far.
// Adding inputs or outputs afterwards invalidates the signature.
func (b *TxBuilder) Sign(i int, privKey *bec.PrivateKey) error {
	if i < 0 || i >= len(b.inputs) {
		return errors.NewInvalidArgumentError("input index %d out of range [0,%d)", i, len(b.inputs))
	}

	payload := b.unsigned().SigningPayload(i)

	sig, err := privKey.Sign(chainhash.DoubleHashB(payload))
	if err != nil {
		return errors.NewProcessingError("failed to sign input %d", i, err)
	}

	b.inputs[i].Signature = sig.Serialize()

	return nil
}

// Build returns the immutable transaction. The builder may keep being used.
func (b *TxBuilder) Build() (*Transaction, error) {
	if uint64(len(b.inputs)) > math.MaxUint32 || uint64(len(b.outputs)) > math.MaxUint32 {
		return nil, errors.NewInvalidArgumentError("too many inputs or outputs")
	}

	inputs := make([]Input, len(b.inputs))
	for i, in := range b.inputs {
		in.Signature = bytes.Clone(in.Signature)
		inputs[i] = in
	}

	outputs := make([]Output, len(b.outputs))
	for i, out := range b.outputs {
		outputs[i] = Output{Value: out.Value, Owner: bytes.Clone(out.Owner)}
	}

	return newTransaction(inputs, outputs), nil
}

func (b *TxBuilder) unsigned() *Transaction {
	inputs := make([]Input, len(b.inputs))
	for i, in := range b.inputs {
		in.Signature = nil
		inputs[i] = in
	}

	return newTransaction(inputs, b.outputs)
}
