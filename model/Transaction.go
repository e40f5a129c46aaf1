package model

import (
	"bytes"
	"encoding/binary"

	"github.com/bsv-blockchain/epochledger/util"
	"github.com/bsv-blockchain/go-bt/v2"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
)

// Transaction is built with a TxBuilder and never changes afterwards.
// Accessors hand out copies so callers cannot mutate a transaction that has been validated.
type Transaction struct {
	inputs  []Input
	outputs []Output
	id      chainhash.Hash
	raw     []byte
}

func newTransaction(inputs []Input, outputs []Output) *Transaction {
	tx := &Transaction{
		inputs:  inputs,
		outputs: outputs,
	}

	tx.raw = tx.structuralBytes()
	tx.id = chainhash.DoubleHashH(tx.raw)

	return tx
}

// ID is the double sha256 of the structural serialization, which excludes signatures.
func (tx *Transaction) ID() chainhash.Hash {
	return tx.id
}

func (tx *Transaction) NumInputs() int {
	return len(tx.inputs)
}

func (tx *Transaction) NumOutputs() int {
	return len(tx.outputs)
}

func (tx *Transaction) Input(i int) Input {
	in := tx.inputs[i]
	in.Signature = bytes.Clone(in.Signature)

	return in
}

func (tx *Transaction) Output(i int) *Output {
	out := tx.outputs[i]
	return NewOutput(out.Value, out.Owner)
}

func (tx *Transaction) Inputs() []Input {
	inputs := make([]Input, len(tx.inputs))
	for i := range tx.inputs {
		inputs[i] = tx.Input(i)
	}

	return inputs
}

func (tx *Transaction) Outputs() []*Output {
	outputs := make([]*Output, len(tx.outputs))
	for i := range tx.outputs {
		outputs[i] = tx.Output(i)
	}

	return outputs
}

// Spends returns the outpoints referenced by the inputs, in input order, duplicates included.
func (tx *Transaction) Spends() []Outpoint {
	spends := make([]Outpoint, len(tx.inputs))
	for i, in := range tx.inputs {
		spends[i] = in.PreviousOutpoint
	}

	return spends
}

// OutputOutpoint is the outpoint output i will have once the transaction is applied.
func (tx *Transaction) OutputOutpoint(i int) Outpoint {
	return Outpoint{TxID: tx.id, Index: uint32(i)} //nolint:gosec // output count is bounded by the builder
}

// SigningPayload returns the bytes the signature of input i commits to:
// the structural serialization followed by i as a little endian uint32.
func (tx *Transaction) SigningPayload(i int) []byte {
	payload := make([]byte, len(tx.raw), len(tx.raw)+4)
	copy(payload, tx.raw)

	return binary.LittleEndian.AppendUint32(payload, uint32(i)) //nolint:gosec // input index is bounded by the builder
}

// Bytes returns the structural serialization without signatures.
func (tx *Transaction) Bytes() []byte {
	return bytes.Clone(tx.raw)
}

func (tx *Transaction) String() string {
	return tx.id.String()
}

func (tx *Transaction) structuralBytes() []byte {
	buf := make([]byte, 0, tx.structuralSize())

	buf = append(buf, bt.VarInt(uint64(len(tx.inputs))).Bytes()...)
	for _, in := range tx.inputs {
		buf = append(buf, in.PreviousOutpoint.TxID[:]...)
		buf = binary.LittleEndian.AppendUint32(buf, in.PreviousOutpoint.Index)
	}

	buf = append(buf, bt.VarInt(uint64(len(tx.outputs))).Bytes()...)
	for _, out := range tx.outputs {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(out.Value)) //nolint:gosec // two's complement keeps negative values distinct
		buf = append(buf, bt.VarInt(uint64(len(out.Owner))).Bytes()...)
		buf = append(buf, out.Owner...)
	}

	return buf
}

func (tx *Transaction) structuralSize() uint64 {
	size := util.VarintSize(uint64(len(tx.inputs))) + uint64(len(tx.inputs))*36
	size += util.VarintSize(uint64(len(tx.outputs)))

	for _, out := range tx.outputs {
		size += 8 + util.VarintSize(uint64(len(out.Owner))) + uint64(len(out.Owner))
	}

	return size
}
