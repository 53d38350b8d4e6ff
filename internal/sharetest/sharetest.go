// Package sharetest generates honest shares of a known secret for tests.
package sharetest

import (
	"crypto/rand"
	"math/big"

	"github.com/izouxv/goShareVote/field"
	"github.com/izouxv/goShareVote/shamir"
	"github.com/pkg/errors"
)

// Split evaluates a random polynomial of degree t-1 with constant term
// secret at x = 1..n, modulo prime.
func Split(secret *big.Int, n, t int, prime *big.Int) ([]*shamir.Share, error) {
	if t < 1 || n < t {
		return nil, errors.Errorf("invalid parameters: n=%d, t=%d", n, t)
	}

	// f(x) = secret + a_1*x + a_2*x^2 + ... + a_{t-1}*x^{t-1}
	coeffs := make([]*big.Int, t)
	coeffs[0] = field.Reduce(secret, prime)
	for i := 1; i < t; i++ {
		c, err := rand.Int(rand.Reader, prime)
		if err != nil {
			return nil, err
		}
		coeffs[i] = c
	}

	shares := make([]*shamir.Share, n)
	for i := 1; i <= n; i++ {
		x := big.NewInt(int64(i))
		shares[i-1] = &shamir.Share{X: x, Y: Eval(coeffs, x, prime)}
	}
	return shares, nil
}

// Eval computes the polynomial with the given coefficients at x by Horner's rule.
func Eval(coeffs []*big.Int, x, prime *big.Int) *big.Int {
	y := new(big.Int)
	for i := len(coeffs) - 1; i >= 0; i-- {
		y = field.Mul(y, x, prime)
		y = field.Add(y, coeffs[i], prime)
	}
	return y
}

// Corrupt returns a copy of shares where the share at each position has a
// random non-zero offset added to its value, so it no longer lies on the
// polynomial.
func Corrupt(shares []*shamir.Share, prime *big.Int, positions ...int) ([]*shamir.Share, error) {
	out := make([]*shamir.Share, len(shares))
	copy(out, shares)
	bound := new(big.Int).Sub(prime, big.NewInt(1))
	for _, p := range positions {
		offset, err := rand.Int(rand.Reader, bound)
		if err != nil {
			return nil, err
		}
		offset.Add(offset, big.NewInt(1))
		out[p] = &shamir.Share{
			X: shares[p].X,
			Y: field.Add(shares[p].Y, offset, prime),
		}
	}
	return out, nil
}
