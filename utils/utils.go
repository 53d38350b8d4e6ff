package utils

import (
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"
)

// Sha3Hash converts a message to a hash value using SHA3-256.
func Sha3Hash(message []byte) ([]byte, error) {
	sha := sha3.New256()
	_, err := sha.Write(message)
	if err != nil {
		return nil, err
	}
	return sha.Sum(nil), nil
}

// Fingerprint returns the hex SHA3-256 digest of message.
func Fingerprint(message []byte) (string, error) {
	sum, err := Sha3Hash(message)
	if err != nil {
		return "", err
	}
	return common.Bytes2Hex(sum), nil
}
