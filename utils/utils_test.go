package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprint(t *testing.T) {
	fp, err := Fingerprint([]byte(""))
	require.NoError(t, err)
	assert.Equal(t, "a7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a", fp)

	other, err := Fingerprint([]byte("shares"))
	require.NoError(t, err)
	assert.Len(t, other, 64)
	assert.NotEqual(t, fp, other)
}
