// Package sharefile reads share documents of the form
//
//	{
//	  "keys": {"n": 4, "k": 3},
//	  "1": {"base": "10", "value": "4"},
//	  "2": {"base": "2", "value": "111"},
//	  ...
//	}
//
// into a validated shamir.ShareSet. Comments and trailing commas are
// accepted. Files ending in BinaryExt hold the compact binary form written
// by Save instead.
package sharefile

import (
	"bytes"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"sort"

	"github.com/izouxv/goShareVote/shamir"
	"github.com/izouxv/goShareVote/utils"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/tailscale/hujson"
)

const (
	// KeysField is the object key holding n and k.
	KeysField = "keys"
	// BinaryExt is the extension of share files in binary form.
	BinaryExt = ".ssb"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	// ErrInvalidShareData is matched by every *ShareError.
	ErrInvalidShareData = errors.New("invalid share data")
	// ErrMissingKeys is returned when the document has no keys object.
	ErrMissingKeys = errors.New(`missing "keys" object`)
	// ErrMalformed is returned when the document is not a JSON object.
	ErrMalformed = errors.New("malformed share document")
)

// ShareError reports a share entry that could not be decoded.
type ShareError struct {
	Index string
	Err   error
}

func (e *ShareError) Error() string {
	return fmt.Sprintf("share %q: %v", e.Index, e.Err)
}

func (e *ShareError) Unwrap() []error {
	return []error{ErrInvalidShareData, e.Err}
}

type keys struct {
	N *int `json:"n"`
	K *int `json:"k"`
}

type entry struct {
	Base  base   `json:"base"`
	Value string `json:"value"`
}

// base accepts both "16" and 16.
type base string

func (b *base) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*b = base(s)
		return nil
	}
	*b = base(data)
	return nil
}

// Load reads the share file at path, JSON or binary depending on its
// extension.
func Load(path string) (*shamir.ShareSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read share document")
	}
	if filepath.Ext(path) == BinaryExt {
		set, err := shamir.UnmarshalShareSet(data)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformed, "decode %s: %v", path, err)
		}
		return set, nil
	}
	set, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return set, nil
}

// Save writes set to path in binary form. path must end in BinaryExt.
func Save(path string, set *shamir.ShareSet) error {
	if filepath.Ext(path) != BinaryExt {
		return errors.Errorf("binary share file %s must end in %s", path, BinaryExt)
	}
	data, err := set.MarshalBinary()
	if err != nil {
		return errors.Wrap(err, "encode share set")
	}
	return errors.Wrap(os.WriteFile(path, data, 0o600), "write share file")
}

// Parse decodes a share document. Shares are ordered by ascending index.
func Parse(data []byte) (*shamir.ShareSet, error) {
	data, err := standardize(data)
	if err != nil {
		return nil, errors.Wrap(ErrMalformed, err.Error())
	}

	var (
		head   *keys
		shares []*shamir.Share
		seen   = make(map[string]struct{})
		decErr error
	)
	iter := jsoniter.ParseBytes(json, data)
	if iter.WhatIsNext() != jsoniter.ObjectValue {
		return nil, errors.Wrap(ErrMalformed, "top level value is not an object")
	}
	iter.ReadObjectCB(func(it *jsoniter.Iterator, key string) bool {
		raw := it.SkipAndReturnBytes()
		if it.Error != nil {
			return false
		}
		if _, ok := seen[key]; ok {
			decErr = errors.Wrapf(ErrMalformed, "key %q appears twice", key)
			return false
		}
		seen[key] = struct{}{}

		if key == KeysField {
			head = new(keys)
			if err := json.Unmarshal(raw, head); err != nil {
				decErr = errors.Wrapf(ErrMalformed, "decode %q: %v", KeysField, err)
				return false
			}
			return true
		}

		share, err := decodeShare(key, raw)
		if err != nil {
			decErr = err
			return false
		}
		shares = append(shares, share)
		return true
	})
	if decErr != nil {
		return nil, decErr
	}
	if iter.Error != nil {
		return nil, errors.Wrap(ErrMalformed, iter.Error.Error())
	}
	if head == nil {
		return nil, ErrMissingKeys
	}
	if head.N == nil || head.K == nil {
		return nil, errors.Wrap(ErrMissingKeys, `"n" and "k" are required`)
	}

	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].X.Cmp(shares[j].X) < 0
	})
	return shamir.NewShareSet(*head.N, *head.K, shares)
}

func decodeShare(key string, raw []byte) (*shamir.Share, error) {
	x, ok := new(big.Int).SetString(key, 10)
	if !ok || x.Sign() <= 0 {
		return nil, &ShareError{Index: key, Err: shamir.ErrInvalidShareIndex}
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, &ShareError{Index: key, Err: err}
	}
	b, err := utils.ParseBase(string(e.Base))
	if err != nil {
		return nil, &ShareError{Index: key, Err: err}
	}
	y, err := utils.DecodeDigits(e.Value, b)
	if err != nil {
		return nil, &ShareError{Index: key, Err: err}
	}
	return &shamir.Share{X: x, Y: y}, nil
}

func standardize(b []byte) ([]byte, error) {
	ast, err := hujson.Parse(b)
	if err != nil {
		return nil, err
	}
	ast.Standardize()
	return ast.Pack(), nil
}
