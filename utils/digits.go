package utils

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	MinBase = 2
	MaxBase = 36

	digitAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
)

var (
	// ErrInvalidBase is returned for a base outside [MinBase, MaxBase].
	ErrInvalidBase = errors.New("invalid base")
	// ErrInvalidDigit is returned for a character that is not a digit of the base.
	ErrInvalidDigit = errors.New("invalid digit")
)

func checkBase(base int) error {
	if base < MinBase || base > MaxBase {
		return errors.Wrapf(ErrInvalidBase, "base %d not in [%d, %d]", base, MinBase, MaxBase)
	}
	return nil
}

// ParseBase parses a string-encoded base such as "16".
func ParseBase(s string) (int, error) {
	base, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidBase, "parse base %q", s)
	}
	if err := checkBase(base); err != nil {
		return 0, err
	}
	return base, nil
}

// DecodeDigits converts a case-insensitive digit string in the given base
// into a non-negative integer, most significant digit first.
func DecodeDigits(digits string, base int) (*big.Int, error) {
	if err := checkBase(base); err != nil {
		return nil, err
	}
	if digits == "" {
		return nil, errors.Wrap(ErrInvalidDigit, "empty digit string")
	}

	b := big.NewInt(int64(base))
	d := new(big.Int)
	res := new(big.Int)
	for i, ch := range digits {
		// fold ASCII only: strings.ToLower maps U+212A (Kelvin) to 'k'
		if 'A' <= ch && ch <= 'Z' {
			ch += 'a' - 'A'
		}
		v := strings.IndexRune(digitAlphabet, ch)
		if v < 0 || v >= base {
			return nil, errors.Wrapf(ErrInvalidDigit, "%q at offset %d in base %d", ch, i, base)
		}
		res.Mul(res, b)
		res.Add(res, d.SetInt64(int64(v)))
	}
	return res, nil
}

// EncodeDigits renders v >= 0 in the given base using lower-case digits.
func EncodeDigits(v *big.Int, base int) (string, error) {
	if err := checkBase(base); err != nil {
		return "", err
	}
	if v == nil || v.Sign() < 0 {
		return "", errors.New("cannot encode a negative value")
	}
	return v.Text(base), nil
}
