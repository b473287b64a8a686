package finpulse_test

import (
	"testing"

	"github.com/finpulse/finpulse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Run("hashes a password", func(t *testing.T) {
		hash, err := finpulse.HashPassword("some-password")
		require.NoError(t, err)
		assert.NotEmpty(t, hash)
		assert.NotEqual(t, "some-password", hash)
	})

	t.Run("rejects empty passwords", func(t *testing.T) {
		_, err := finpulse.HashPassword("")
		assert.ErrorIs(t, err, finpulse.ErrNoEmptyString)
	})

	t.Run("same password yields different hashes", func(t *testing.T) {
		h1, err := finpulse.HashPassword("some-password")
		require.NoError(t, err)
		h2, err := finpulse.HashPassword("some-password")
		require.NoError(t, err)
		assert.NotEqual(t, h1, h2)
	})
}

func TestComparePasswordAndHash(t *testing.T) {
	hash, err := finpulse.HashPassword("correct-password")
	require.NoError(t, err)

	t.Run("accepts the right password", func(t *testing.T) {
		assert.NoError(t, finpulse.ComparePasswordAndHash("correct-password", hash))
	})

	t.Run("rejects the wrong password", func(t *testing.T) {
		err := finpulse.ComparePasswordAndHash("wrong-password", hash)
		assert.ErrorIs(t, err, finpulse.ErrMismatchedHashAndPassword)
	})

	t.Run("rejects a bogus hash", func(t *testing.T) {
		err := finpulse.ComparePasswordAndHash("correct-password", "not-a-hash")
		assert.Error(t, err)
	})
}

func TestRandomPasswordHash(t *testing.T) {
	h := finpulse.RandomPasswordHash()
	assert.NotEmpty(t, h)
}
