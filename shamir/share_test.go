package shamir

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linearShares(xs ...int64) []*Share {
	shares := make([]*Share, len(xs))
	for i, x := range xs {
		shares[i] = &Share{X: big.NewInt(x), Y: big.NewInt(5 + 3*x)}
	}
	return shares
}

func TestNewShareSet(t *testing.T) {
	set, err := NewShareSet(3, 2, linearShares(1, 2, 3))
	require.NoError(t, err)
	assert.Equal(t, 3, set.Total)
	assert.Equal(t, 2, set.Threshold)

	picked := set.Pick([]int{0, 2})
	require.Len(t, picked, 2)
	assert.Equal(t, "3", picked[1].X.String())

	xs := set.Indices([]int{1, 2})
	assert.Equal(t, "2", xs[0].String())
	assert.Equal(t, "3", xs[1].String())
}

func TestNewShareSetThreshold(t *testing.T) {
	cases := []struct {
		name     string
		n, k     int
		shareXs  []int64
		expected error
	}{
		{"k is zero", 3, 0, []int64{1, 2, 3}, ErrInvalidThreshold},
		{"k is negative", 3, -1, []int64{1, 2, 3}, ErrInvalidThreshold},
		{"k above n", 2, 3, []int64{1, 2}, ErrInvalidThreshold},
		{"n above share count", 4, 2, []int64{1, 2, 3}, ErrInvalidThreshold},
		{"n below share count", 2, 2, []int64{1, 2, 3}, ErrInvalidThreshold},
		{"duplicate index", 3, 2, []int64{1, 2, 1}, ErrDuplicateShareIndex},
		{"zero index", 2, 2, []int64{0, 1}, ErrInvalidShareIndex},
		{"negative index", 2, 2, []int64{-3, 1}, ErrInvalidShareIndex},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewShareSet(c.n, c.k, linearShares(c.shareXs...))
			assert.ErrorIs(t, err, c.expected)
		})
	}

	_, err := NewShareSet(1, 1, []*Share{{X: big.NewInt(1)}})
	assert.ErrorIs(t, err, ErrInvalidShareIndex)
}

func TestShareSetBinary(t *testing.T) {
	huge, _ := new(big.Int).SetString("1606938044258990275541962092341162602522202993782792835301376", 10)
	shares := linearShares(4, 9, 2)
	shares[1].Y = huge

	set, err := NewShareSet(3, 2, shares)
	require.NoError(t, err)

	data, err := set.MarshalBinary()
	require.NoError(t, err)

	decoded, err := UnmarshalShareSet(data)
	require.NoError(t, err)
	assert.Equal(t, set.Total, decoded.Total)
	assert.Equal(t, set.Threshold, decoded.Threshold)
	require.Len(t, decoded.Shares, 3)
	for i := range shares {
		assert.Equal(t, shares[i].X.String(), decoded.Shares[i].X.String())
		assert.Equal(t, shares[i].Y.String(), decoded.Shares[i].Y.String())
	}

	_, err = UnmarshalShareSet(data[:len(data)-1])
	assert.Error(t, err)
	_, err = UnmarshalShareSet(append(data, 0))
	assert.Error(t, err)
}

func TestShareSetFingerprint(t *testing.T) {
	a, err := NewShareSet(3, 2, linearShares(1, 2, 3))
	require.NoError(t, err)
	b, err := NewShareSet(3, 2, linearShares(1, 2, 3))
	require.NoError(t, err)
	c, err := NewShareSet(3, 2, linearShares(1, 3, 2))
	require.NoError(t, err)

	fa, err := a.Fingerprint()
	require.NoError(t, err)
	fb, err := b.Fingerprint()
	require.NoError(t, err)
	fc, err := c.Fingerprint()
	require.NoError(t, err)

	assert.Len(t, fa, 64)
	assert.Equal(t, fa, fb)
	assert.NotEqual(t, fa, fc, "order is part of the set identity")
}
