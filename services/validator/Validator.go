/*
Package validator implements the per-transaction validity rules of an epoch.

A transaction is valid against a pool of unspent outputs when:
  - every input references an outpoint present in the pool
  - every input signature verifies under the referenced output's owner key
    over the transaction's signing payload for that input
  - no outpoint is referenced by more than one input
  - no output value is negative
  - the referenced input values cover the output values

Validation is read only with respect to the pool. The reason a transaction
fails is reported as a coded error so each rule can be observed on its own,
while IsValid keeps the plain boolean contract.
*/
package validator

import (
	"math"
	"time"

	"github.com/bsv-blockchain/epochledger/errors"
	"github.com/bsv-blockchain/epochledger/model"
	"github.com/bsv-blockchain/epochledger/settings"
	"github.com/bsv-blockchain/epochledger/stores/utxo"
	"github.com/bsv-blockchain/epochledger/ulogger"
)

// Result is the tagged outcome of validating one transaction.
// Fee is only meaningful when Err is nil.
type Result struct {
	Fee model.Amount
	Err error
}

func (r Result) Valid() bool {
	return r.Err == nil
}

// Interface is implemented by Validator and by anything the epoch handlers can validate with.
type Interface interface {
	Validate(pool *utxo.Set, tx *model.Transaction) Result
	IsValid(pool *utxo.Set, tx *model.Transaction) bool
}

type Validator struct {
	logger   ulogger.Logger
	verifier Verifier
}

// New creates a validator. Unless a verifier is passed in, signatures are checked with
// ECDSAVerifier, wrapped in a CachingVerifier when the settings enable the signature cache.
func New(logger ulogger.Logger, tSettings *settings.Settings, opts ...Option) *Validator {
	initPrometheusMetrics()

	options := ProcessOptions(opts...)

	verifier := options.verifier
	if verifier == nil {
		verifier = ECDSAVerifier{}

		if tSettings != nil && tSettings.Validator.SigCacheEnabled {
			verifier = NewCachingVerifier(verifier, uint64(tSettings.Validator.SigCacheSize), tSettings.Validator.SigCacheTTL) //nolint:gosec // validated positive
		}
	}

	return &Validator{
		logger:   logger,
		verifier: verifier,
	}
}

// IsValid reports whether tx may be applied to pool.
func (v *Validator) IsValid(pool *utxo.Set, tx *model.Transaction) bool {
	return v.Validate(pool, tx).Valid()
}

// Fee returns the input sum minus the output sum of a valid transaction.
func (v *Validator) Fee(pool *utxo.Set, tx *model.Transaction) (model.Amount, error) {
	result := v.Validate(pool, tx)
	if result.Err != nil {
		return 0, result.Err
	}

	return result.Fee, nil
}

// Validate evaluates every rule against pool and returns the fee or the first failure.
func (v *Validator) Validate(pool *utxo.Set, tx *model.Transaction) Result {
	start := time.Now()
	defer func() {
		prometheusValidatorValidate.Observe(time.Since(start).Seconds())
	}()

	result := v.validate(pool, tx)
	if result.Err != nil {
		prometheusValidatorInvalidTransactions.WithLabelValues(errors.CodeOf(result.Err).String()).Inc()
		id := "<nil>"
		if tx != nil {
			id = tx.ID().String()
		}

		v.logger.Debugf("[Validate][%s] invalid: %v", id, result.Err)
	}

	return result
}

func (v *Validator) validate(pool *utxo.Set, tx *model.Transaction) Result {
	if tx == nil {
		return Result{Err: errors.NewTxInvalidError("nil transaction")}
	}

	var (
		inputSum  model.Amount
		outputSum model.Amount
		ok        bool
	)

	seen := make(map[model.Outpoint]struct{}, tx.NumInputs())

	for i := 0; i < tx.NumInputs(); i++ {
		in := tx.Input(i)

		prevOut, found := pool.Get(in.PreviousOutpoint)
		if !found {
			return Result{Err: errors.NewTxMissingInputError("input %d spends %s which is not in the pool", i, in.PreviousOutpoint)}
		}

		if !v.verifier.Verify(prevOut.Owner, tx.SigningPayload(i), in.Signature) {
			return Result{Err: errors.NewTxInvalidSignatureError("input %d signature does not verify for %s", i, in.PreviousOutpoint)}
		}

		if _, dup := seen[in.PreviousOutpoint]; dup {
			return Result{Err: errors.NewTxDuplicateInputError("input %d spends %s a second time", i, in.PreviousOutpoint)}
		}

		seen[in.PreviousOutpoint] = struct{}{}

		if inputSum, ok = addAmounts(inputSum, prevOut.Value); !ok {
			return Result{Err: errors.NewTxInvalidError("input values overflow at input %d", i)}
		}
	}

	for i := 0; i < tx.NumOutputs(); i++ {
		out := tx.Output(i)

		if out.Value < 0 {
			return Result{Err: errors.NewTxNegativeOutputError("output %d has negative value %d", i, out.Value)}
		}

		if outputSum, ok = addAmounts(outputSum, out.Value); !ok {
			return Result{Err: errors.NewTxInvalidError("output values overflow at output %d", i)}
		}
	}

	if inputSum < outputSum {
		return Result{Err: errors.NewTxInsufficientInputError("inputs %d do not cover outputs %d", inputSum, outputSum)}
	}

	return Result{Fee: inputSum - outputSum}
}

// addAmounts reports false when a+b does not fit in an int64.
func addAmounts(a, b model.Amount) (model.Amount, bool) {
	if b > 0 && a > math.MaxInt64-b {
		return 0, false
	}

	if b < 0 && a < math.MinInt64-b {
		return 0, false
	}

	return a + b, true
}
