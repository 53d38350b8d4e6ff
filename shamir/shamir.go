package shamir

import (
	"math/big"

	"github.com/izouxv/goShareVote/field"
	"github.com/pkg/errors"
)

// ErrNoShares is returned when interpolating an empty point set.
var ErrNoShares = errors.New("no shares provided")

// Share represents a share of a secret: the point (X, Y) on the sharing
// polynomial. X is the share index.
type Share struct {
	X *big.Int
	Y *big.Int
}

// InterpolateAtZero evaluates at x = 0 the unique polynomial of degree
// len(points)-1 passing through points, modulo prime. The result is in
// [0, prime). Points must have pairwise distinct X values; a repeated X
// fails with field.ErrDivisionByZero.
func InterpolateAtZero(points []*Share, prime *big.Int) (*big.Int, error) {
	if prime == nil || prime.Cmp(big.NewInt(1)) <= 0 {
		return nil, field.ErrInvalidModulus
	}
	if len(points) == 0 {
		return nil, ErrNoShares
	}

	secret := new(big.Int)
	for i, shareI := range points {
		// Lagrange basis polynomial l_i(0) = prod(-x_j) / prod(x_i - x_j)
		num := big.NewInt(1)
		den := big.NewInt(1)

		for j, shareJ := range points {
			if i == j {
				continue
			}
			num = field.Mul(num, field.Neg(shareJ.X, prime), prime)
			den = field.Mul(den, field.Sub(shareI.X, shareJ.X, prime), prime)
		}

		inv, err := field.ModInverse(den, prime)
		if err != nil {
			return nil, errors.Wrapf(err, "basis polynomial for x=%s", shareI.X)
		}

		term := field.Mul(shareI.Y, num, prime)
		term = field.Mul(term, inv, prime)
		secret = field.Add(secret, term, prime)
	}

	return secret, nil
}
