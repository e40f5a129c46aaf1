package util

import (
	"math"
	"testing"

	"github.com/bsv-blockchain/go-bt/v2"
	"github.com/stretchr/testify/assert"
	"golang.org/x/sync/errgroup"
)

func TestVarintSize(t *testing.T) {
	for _, x := range []uint64{0, 1, 0xfc, 0xfd, 0xffff, 0x10000, 0xffffffff, 0x100000000, math.MaxUint64} {
		assert.Equal(t, uint64(len(bt.VarInt(x).Bytes())), VarintSize(x), "value %d", x)
	}
}

func TestSafeSetLimit(t *testing.T) {
	g := &errgroup.Group{}

	assert.NotPanics(t, func() { SafeSetLimit(g, 4) })
	assert.PanicsWithValue(t, "limit cannot be 0", func() { SafeSetLimit(&errgroup.Group{}, 0) })
}
