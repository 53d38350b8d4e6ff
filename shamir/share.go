package shamir

import (
	"bytes"
	"math/big"

	"github.com/izouxv/goShareVote/utils"
	"github.com/pkg/errors"
)

var (
	// ErrInvalidThreshold is returned when k <= 0, k > n or n differs from
	// the number of shares.
	ErrInvalidThreshold = errors.New("invalid threshold")
	// ErrDuplicateShareIndex is returned when two shares have the same X.
	ErrDuplicateShareIndex = errors.New("duplicate share index")
	// ErrInvalidShareIndex is returned for a missing or non-positive X.
	ErrInvalidShareIndex = errors.New("share index must be a positive integer")
)

// ShareSet is an ordered, validated set of shares together with the declared
// total n and threshold k. It is never modified after NewShareSet.
type ShareSet struct {
	Total     int
	Threshold int
	Shares    []*Share
}

// NewShareSet validates shares against the declared total and threshold.
// The order of shares is kept: combinations are enumerated over it.
func NewShareSet(total, threshold int, shares []*Share) (*ShareSet, error) {
	if threshold <= 0 || threshold > total {
		return nil, errors.Wrapf(ErrInvalidThreshold, "k=%d, n=%d", threshold, total)
	}
	if total != len(shares) {
		return nil, errors.Wrapf(ErrInvalidThreshold, "n=%d but %d shares given", total, len(shares))
	}

	seen := make(map[string]struct{}, len(shares))
	for i, s := range shares {
		if s == nil || s.X == nil || s.Y == nil {
			return nil, errors.Wrapf(ErrInvalidShareIndex, "share #%d is incomplete", i)
		}
		if s.X.Sign() <= 0 {
			return nil, errors.Wrapf(ErrInvalidShareIndex, "share #%d has index %s", i, s.X)
		}
		key := s.X.String()
		if _, ok := seen[key]; ok {
			return nil, errors.Wrapf(ErrDuplicateShareIndex, "index %s", key)
		}
		seen[key] = struct{}{}
	}

	return &ShareSet{
		Total:     total,
		Threshold: threshold,
		Shares:    shares,
	}, nil
}

// Pick returns the shares at the given positions.
func (s *ShareSet) Pick(positions []int) []*Share {
	picked := make([]*Share, len(positions))
	for i, p := range positions {
		picked[i] = s.Shares[p]
	}
	return picked
}

// Indices returns the X values of the shares at the given positions.
func (s *ShareSet) Indices(positions []int) []*big.Int {
	xs := make([]*big.Int, len(positions))
	for i, p := range positions {
		xs[i] = s.Shares[p].X
	}
	return xs
}

// MarshalBinary encodes n, k and every share as varints and length-prefixed
// integers.
func (s *ShareSet) MarshalBinary() ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := utils.WriteVarInt(buf, int64(s.Total)); err != nil {
		return nil, err
	}
	if err := utils.WriteVarInt(buf, int64(s.Threshold)); err != nil {
		return nil, err
	}
	for _, share := range s.Shares {
		if err := utils.WriteBigInt(buf, share.X); err != nil {
			return nil, err
		}
		if err := utils.WriteBigInt(buf, share.Y); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// UnmarshalShareSet decodes data written by MarshalBinary and validates it.
func UnmarshalShareSet(data []byte) (*ShareSet, error) {
	buf := bytes.NewBuffer(data)

	total, _, err := utils.ReadVarInt(buf)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read total")
	}
	threshold, _, err := utils.ReadVarInt(buf)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read threshold")
	}
	if total < 0 || total > int64(buf.Len()) {
		return nil, errors.Wrapf(ErrInvalidThreshold, "n=%d", total)
	}

	shares := make([]*Share, 0, total)
	for i := int64(0); i < total; i++ {
		x, err := utils.ReadBigInt(buf)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read X of share #%d", i)
		}
		y, err := utils.ReadBigInt(buf)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read Y of share #%d", i)
		}
		shares = append(shares, &Share{X: x, Y: y})
	}
	if buf.Len() != 0 {
		return nil, errors.Errorf("%d trailing bytes", buf.Len())
	}

	return NewShareSet(int(total), int(threshold), shares)
}

// Fingerprint identifies the share set by the SHA3-256 of its binary form.
func (s *ShareSet) Fingerprint() (string, error) {
	data, err := s.MarshalBinary()
	if err != nil {
		return "", err
	}
	return utils.Fingerprint(data)
}
