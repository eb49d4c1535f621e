package feed_test

import (
	"testing"

	"github.com/goliatone/go-feed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashSecret(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		wantErr bool
	}{
		{
			name:   "valid secret",
			secret: "securePassword123!",
		},
		{
			name:    "empty secret",
			secret:  "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := feed.HashSecret(tt.secret)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, hash)

			err = feed.CompareSecretAndHash(tt.secret, hash)
			assert.NoError(t, err)
		})
	}
}

func TestCompareSecretAndHash(t *testing.T) {
	secret := "testPassword123!"
	hash, err := feed.HashSecret(secret)
	require.NoError(t, err)

	t.Run("matching secret", func(t *testing.T) {
		assert.NoError(t, feed.CompareSecretAndHash(secret, hash))
	})

	t.Run("wrong secret", func(t *testing.T) {
		err := feed.CompareSecretAndHash("wrongPassword", hash)
		assert.ErrorIs(t, err, feed.ErrMismatchedHashAndSecret)
	})

	t.Run("invalid hash", func(t *testing.T) {
		err := feed.CompareSecretAndHash(secret, "not-a-bcrypt-hash")
		assert.Error(t, err)
	})
}

func TestRandomSecretHash(t *testing.T) {
	hash := feed.RandomSecretHash()
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, hash, feed.RandomSecretHash())
}
