package utils

import (
	"encoding/binary"
	"io"
	"math/big"

	"github.com/pkg/errors"
)

// MaxVarBytes bounds a single length-prefixed field when reading.
const MaxVarBytes = 1 << 20

type readByte struct {
	in   io.Reader
	read int
}

func (s *readByte) ReadByte() (byte, error) {
	var data [1]byte
	if _, err := io.ReadFull(s.in, data[:]); err != nil {
		return 0, err
	}
	s.read++
	return data[0], nil
}

// ReadVarInt reads a zig-zag varint and reports how many bytes it used.
func ReadVarInt(r io.Reader) (num int64, n int, err error) {
	rb := &readByte{in: r}
	num, err = binary.ReadVarint(rb)
	return num, rb.read, err
}

// WriteVarInt writes num as a zig-zag varint.
func WriteVarInt(w io.Writer, num int64) error {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutVarint(buf[:], num)
	_, err := w.Write(buf[:n])
	return err
}

// ReadVarBytes reads a length-prefixed byte slice.
func ReadVarBytes(r io.Reader) (data []byte, varIntLen int, err error) {
	num, n, err := ReadVarInt(r)
	if err != nil {
		return nil, n, err
	}
	if num < 0 || num > MaxVarBytes {
		return nil, n, errors.Errorf("var bytes length %d out of range", num)
	}
	data = make([]byte, num)
	if _, err = io.ReadFull(r, data); err != nil {
		return nil, n, errors.Wrap(err, "read var bytes")
	}
	return data, n, nil
}

// WriteVarBytes writes data prefixed with its length.
func WriteVarBytes(w io.Writer, data []byte) error {
	if err := WriteVarInt(w, int64(len(data))); err != nil {
		return err
	}
	_, err := w.Write(data)
	return err
}

// WriteBigInt writes the sign and magnitude of v.
func WriteBigInt(w io.Writer, v *big.Int) error {
	if err := WriteVarInt(w, int64(v.Sign())); err != nil {
		return err
	}
	return WriteVarBytes(w, v.Bytes())
}

// ReadBigInt reads a value written by WriteBigInt.
func ReadBigInt(r io.Reader) (*big.Int, error) {
	sign, _, err := ReadVarInt(r)
	if err != nil {
		return nil, errors.Wrap(err, "read sign")
	}
	if sign < -1 || sign > 1 {
		return nil, errors.Errorf("invalid sign %d", sign)
	}
	mag, _, err := ReadVarBytes(r)
	if err != nil {
		return nil, err
	}
	v := new(big.Int).SetBytes(mag)
	if sign < 0 {
		v.Neg(v)
	}
	return v, nil
}
