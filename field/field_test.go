package field

import (
	"crypto/rand"
	"math/big"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMersenne521(t *testing.T) {
	p := Mersenne521()
	assert.Equal(t, 521, p.BitLen())
	assert.True(t, p.ProbablyPrime(20))

	// callers must not be able to alter the shared constant
	p.SetInt64(7)
	assert.Equal(t, 521, Mersenne521().BitLen())
}

func TestReduce(t *testing.T) {
	p := big.NewInt(13)
	cases := []struct {
		in, want int64
	}{
		{0, 0},
		{5, 5},
		{13, 0},
		{27, 1},
		{-1, 12},
		{-13, 0},
		{-27, 12},
	}
	for _, c := range cases {
		assert.Equal(t, big.NewInt(c.want).String(), Reduce(big.NewInt(c.in), p).String(), "reduce %d", c.in)
	}
}

func TestArithmetic(t *testing.T) {
	p := big.NewInt(101)
	a, b := big.NewInt(57), big.NewInt(88)

	assert.Equal(t, "44", Add(a, b, p).String())
	assert.Equal(t, "70", Sub(a, b, p).String())
	assert.Equal(t, "67", Mul(a, b, p).String())
	assert.Equal(t, "44", Neg(a, p).String())
	assert.Equal(t, "0", Neg(big.NewInt(0), p).String())
}

func TestModInverseLaw(t *testing.T) {
	for _, name := range []string{DefaultName, "secp256k1", "p256", "p521"} {
		t.Run(name, func(t *testing.T) {
			p := Get(name)
			require.NotNil(t, p)

			for i := 0; i < 20; i++ {
				a, err := rand.Int(rand.Reader, p)
				require.NoError(t, err)
				if a.Sign() == 0 {
					continue
				}
				inv, err := ModInverse(a, p)
				require.NoError(t, err)
				assert.True(t, inv.Sign() >= 0 && inv.Cmp(p) < 0)
				assert.Equal(t, int64(1), Mul(a, inv, p).Int64())
				assert.Equal(t, 0, inv.Cmp(new(big.Int).ModInverse(a, p)))
			}
		})
	}
}

func TestModInverseNegativeInput(t *testing.T) {
	p := big.NewInt(17)
	inv, err := ModInverse(big.NewInt(-3), p)
	require.NoError(t, err)
	// -3 == 14 (mod 17), 14 * 11 = 154 = 9*17 + 1
	assert.Equal(t, "11", inv.String())
}

func TestModInverseEdgeCases(t *testing.T) {
	inv, err := ModInverse(big.NewInt(5), big.NewInt(1))
	require.NoError(t, err)
	assert.Equal(t, 0, inv.Sign())

	_, err = ModInverse(big.NewInt(0), big.NewInt(17))
	assert.ErrorIs(t, err, ErrDivisionByZero)

	_, err = ModInverse(big.NewInt(34), big.NewInt(17))
	assert.ErrorIs(t, err, ErrDivisionByZero)

	_, err = ModInverse(big.NewInt(6), big.NewInt(9))
	assert.ErrorIs(t, err, ErrNoInverse)

	_, err = ModInverse(big.NewInt(3), big.NewInt(0))
	assert.ErrorIs(t, err, ErrInvalidModulus)
}

func TestRegistry(t *testing.T) {
	names := Names()
	sort.Strings(names)
	assert.Equal(t, []string{DefaultName, "p256", "p521", "secp256k1"}, names)

	assert.Nil(t, Get("nope"))
	assert.Equal(t, 0, Get(DefaultName).Cmp(Mersenne521()))

	assert.Panics(t, func() { Register(DefaultName, big.NewInt(7)) })
	assert.Panics(t, func() { Register("composite", big.NewInt(15)) })

	Register("f7", big.NewInt(7))
	defer delete(primes, "f7")
	assert.Equal(t, "7", Get("f7").String())
}
