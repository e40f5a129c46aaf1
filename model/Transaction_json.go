package model

import (
	"encoding/hex"

	"github.com/bsv-blockchain/epochledger/errors"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type inputJSON struct {
	TxID      string `json:"txid"`
	Vout      uint32 `json:"vout"`
	Signature string `json:"signature,omitempty"`
}

type outputJSON struct {
	Value Amount `json:"value"`
	Owner string `json:"owner"`
}

type transactionJSON struct {
	ID      string       `json:"id,omitempty"`
	Inputs  []inputJSON  `json:"inputs"`
	Outputs []outputJSON `json:"outputs"`
}

func (tx *Transaction) MarshalJSON() ([]byte, error) {
	txJSON := transactionJSON{
		ID:      tx.id.String(),
		Inputs:  make([]inputJSON, len(tx.inputs)),
		Outputs: make([]outputJSON, len(tx.outputs)),
	}

	for i, in := range tx.inputs {
		txJSON.Inputs[i] = inputJSON{
			TxID:      in.PreviousOutpoint.TxID.String(),
			Vout:      in.PreviousOutpoint.Index,
			Signature: hex.EncodeToString(in.Signature),
		}
	}

	for i, out := range tx.outputs {
		txJSON.Outputs[i] = outputJSON{
			Value: out.Value,
			Owner: hex.EncodeToString(out.Owner),
		}
	}

	return json.Marshal(txJSON)
}

// UnmarshalJSON rebuilds the transaction. A supplied id must match the recomputed one.
func (tx *Transaction) UnmarshalJSON(data []byte) error {
	var txJSON transactionJSON
	if err := json.Unmarshal(data, &txJSON); err != nil {
		return errors.NewInvalidArgumentError("invalid transaction json", err)
	}

	builder := NewTxBuilder()

	for _, in := range txJSON.Inputs {
		prevTxID, err := chainhash.NewHashFromStr(in.TxID)
		if err != nil {
			return errors.NewInvalidArgumentError("invalid input txid %q", in.TxID, err)
		}

		builder.AddInput(*prevTxID, in.Vout)
	}

	for i, in := range txJSON.Inputs {
		sig, err := hex.DecodeString(in.Signature)
		if err != nil {
			return errors.NewInvalidArgumentError("invalid signature hex on input %d", i, err)
		}

		if err = builder.SetSignature(i, sig); err != nil {
			return err
		}
	}

	for i, out := range txJSON.Outputs {
		owner, err := hex.DecodeString(out.Owner)
		if err != nil {
			return errors.NewInvalidArgumentError("invalid owner hex on output %d", i, err)
		}

		builder.AddOutput(out.Value, owner)
	}

	built, err := builder.Build()
	if err != nil {
		return err
	}

	if txJSON.ID != "" && txJSON.ID != built.id.String() {
		return errors.NewInvalidArgumentError("transaction id mismatch: declared %s, computed %s", txJSON.ID, built.id.String())
	}

	*tx = *built

	return nil
}

type outpointJSON struct {
	TxID  string `json:"txid"`
	Index uint32 `json:"vout"`
}

func (o Outpoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(outpointJSON{TxID: o.TxID.String(), Index: o.Index})
}

func (o *Outpoint) UnmarshalJSON(data []byte) error {
	var opJSON outpointJSON
	if err := json.Unmarshal(data, &opJSON); err != nil {
		return errors.NewInvalidArgumentError("invalid outpoint json", err)
	}

	txID, err := chainhash.NewHashFromStr(opJSON.TxID)
	if err != nil {
		return errors.NewInvalidArgumentError("invalid outpoint txid %q", opJSON.TxID, err)
	}

	o.TxID = *txID
	o.Index = opJSON.Index

	return nil
}

func (o *Output) MarshalJSON() ([]byte, error) {
	return json.Marshal(outputJSON{Value: o.Value, Owner: hex.EncodeToString(o.Owner)})
}

func (o *Output) UnmarshalJSON(data []byte) error {
	var outJSON outputJSON
	if err := json.Unmarshal(data, &outJSON); err != nil {
		return errors.NewInvalidArgumentError("invalid output json", err)
	}

	owner, err := hex.DecodeString(outJSON.Owner)
	if err != nil {
		return errors.NewInvalidArgumentError("invalid owner hex", err)
	}

	o.Value = outJSON.Value
	o.Owner = owner

	return nil
}
