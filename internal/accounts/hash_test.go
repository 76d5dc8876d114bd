package accounts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Known-answer vectors for stored legacy credentials. The negative value
// exercises the signed 32-bit wraparound that must survive bit-for-bit.
func TestLegacyHasher_KnownVectors(t *testing.T) {
	tests := []struct {
		password string
		want     string
	}{
		{"", "0"},
		{"a", "97"},
		{"hello", "99162322"},
		{"secret1", "1970177921"},
		{"secret2", "1970177922"},
		{"password", "1216985755"},
		{"correct horse battery staple", "1237976533"},
		{"пароль123", "-625199374"},
	}

	h := LegacyHasher{}
	for _, tt := range tests {
		got, err := h.Hash(tt.password)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "hash(%q)", tt.password)
	}
}

func TestLegacyHasher_DeterministicAndVerify(t *testing.T) {
	h := LegacyHasher{}

	a, err := h.Hash("repeatable")
	require.NoError(t, err)
	b, err := h.Hash("repeatable")
	require.NoError(t, err)
	assert.Equal(t, a, b)

	assert.True(t, h.Verify(a, "repeatable"))
	assert.False(t, h.Verify(a, "repeatable2"))
}

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := BcryptHasher{}

	stored, err := h.Hash("secret1")
	require.NoError(t, err)
	require.NotEqual(t, "secret1", stored)

	assert.True(t, h.Verify(stored, "secret1"))
	assert.False(t, h.Verify(stored, "wrong"))
}

// Bcrypt hashes embed a random salt, so the same password must not produce
// the same stored value twice.
func TestBcryptHasher_Salted(t *testing.T) {
	h := BcryptHasher{}

	a, err := h.Hash("secret1")
	require.NoError(t, err)
	b, err := h.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
