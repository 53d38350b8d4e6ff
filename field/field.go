package field

import (
	"math/big"

	"github.com/pkg/errors"
)

var (
	// ErrDivisionByZero is returned when inverting an element congruent to zero.
	ErrDivisionByZero = errors.New("division by zero in prime field")
	// ErrNoInverse is returned when gcd(a, m) != 1.
	ErrNoInverse = errors.New("element has no modular inverse")
	// ErrInvalidModulus is returned for a nil or non-positive modulus.
	ErrInvalidModulus = errors.New("modulus must be positive")
)

var one = big.NewInt(1)

// Mersenne521 returns a fresh copy of the prime 2^521 - 1.
func Mersenne521() *big.Int {
	p := new(big.Int).Lsh(one, 521)
	return p.Sub(p, one)
}

// Reduce maps a into [0, p). The remainder is taken first and p is added
// back when it is negative, so the result never depends on the sign of a.
func Reduce(a, p *big.Int) *big.Int {
	res := new(big.Int).Rem(a, p)
	if res.Sign() < 0 {
		res.Add(res, p)
	}
	return res
}

func Add(a, b, p *big.Int) (res *big.Int) {
	res = new(big.Int).Add(a, b)
	return Reduce(res, p)
}

func Sub(a, b, p *big.Int) (res *big.Int) {
	res = new(big.Int).Sub(a, b)
	return Reduce(res, p)
}

func Mul(a, b, p *big.Int) (res *big.Int) {
	res = new(big.Int).Mul(a, b)
	return Reduce(res, p)
}

func Neg(a, p *big.Int) (res *big.Int) {
	res = new(big.Int).Neg(a)
	return Reduce(res, p)
}

// ModInverse returns the multiplicative inverse of a modulo m using the
// extended Euclidean algorithm. The result lies in [0, m). A modulus of 1
// yields 0.
func ModInverse(a, m *big.Int) (*big.Int, error) {
	if m == nil || m.Sign() <= 0 {
		return nil, ErrInvalidModulus
	}
	if m.Cmp(one) == 0 {
		return new(big.Int), nil
	}

	r0 := new(big.Int).Set(m)
	r1 := Reduce(a, m)
	if r1.Sign() == 0 {
		return nil, errors.Wrapf(ErrDivisionByZero, "invert %s mod %s", a, m)
	}

	// invariant: r_i == x_i * a (mod m)
	x0, x1 := new(big.Int), big.NewInt(1)
	q, t := new(big.Int), new(big.Int)
	for r1.Sign() != 0 {
		q.QuoRem(r0, r1, t)
		r0, r1 = r1, new(big.Int).Set(t)

		t.Mul(q, x1)
		x0, x1 = x1, new(big.Int).Sub(x0, t)
	}
	if r0.Cmp(one) != 0 {
		return nil, errors.Wrapf(ErrNoInverse, "gcd(%s, %s) = %s", a, m, r0)
	}

	if x0.Sign() < 0 {
		x0.Add(x0, m)
	}
	return x0, nil
}
