package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "secret1", hash)

	assert.True(t, CheckPassword(hash, "secret1"))
	assert.False(t, CheckPassword(hash, "secret2"))
	assert.False(t, CheckPassword(hash, ""))
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("secret1")
	require.NoError(t, err)
	second, err := HashPassword("secret1")
	require.NoError(t, err)

	// A fresh salt per call means no two hashes match.
	assert.NotEqual(t, first, second)
	assert.True(t, CheckPassword(first, "secret1"))
	assert.True(t, CheckPassword(second, "secret1"))
}

func TestCheckPasswordFailsClosed(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{name: "empty hash", hash: ""},
		{name: "not a bcrypt hash", hash: "plaintext"},
		{name: "truncated hash", hash: "$2a$12$abc"},
		{name: "unknown prefix", hash: "$9z$12$aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, CheckPassword(tt.hash, "secret1"))
		})
	}
}
