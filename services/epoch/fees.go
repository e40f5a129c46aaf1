package epoch

import (
	"math"
	"math/bits"

	"github.com/bsv-blockchain/epochledger/model"
)

// feeTotal is an unsigned 128 bit sum of non-negative fees, wide enough for any subset of
// up to 2^64 candidates without wrapping.
type feeTotal struct {
	hi, lo uint64
}

func (f feeTotal) add(fee model.Amount) feeTotal {
	lo, carry := bits.Add64(f.lo, uint64(fee), 0) //nolint:gosec // fees of valid transactions are non-negative
	return feeTotal{hi: f.hi + carry, lo: lo}
}

func (f feeTotal) plus(o feeTotal) feeTotal {
	lo, carry := bits.Add64(f.lo, o.lo, 0)
	return feeTotal{hi: f.hi + o.hi + carry, lo: lo}
}

func (f feeTotal) cmp(o feeTotal) int {
	switch {
	case f.hi < o.hi:
		return -1
	case f.hi > o.hi:
		return 1
	case f.lo < o.lo:
		return -1
	case f.lo > o.lo:
		return 1
	default:
		return 0
	}
}

// amount saturates at math.MaxInt64.
func (f feeTotal) amount() model.Amount {
	if f.hi != 0 || f.lo > math.MaxInt64 {
		return math.MaxInt64
	}

	return model.Amount(f.lo)
}

// ratioGreater reports whether feeA/weightA > feeB/weightB for non-negative fees and positive weights.
func ratioGreater(feeA model.Amount, weightA uint64, feeB model.Amount, weightB uint64) bool {
	hiA, loA := bits.Mul64(uint64(feeA), weightB) //nolint:gosec // non-negative
	hiB, loB := bits.Mul64(uint64(feeB), weightA) //nolint:gosec // non-negative

	return feeTotal{hi: hiA, lo: loA}.cmp(feeTotal{hi: hiB, lo: loB}) > 0
}
