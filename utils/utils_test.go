package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	userID := primitive.NewObjectID()

	token, err := GenerateToken(userID, secret, time.Hour)
	require.NoError(t, err)

	parsed, err := ParseToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(primitive.NewObjectID(), []byte("right"), time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, []byte("wrong"))
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	secret := []byte("test-secret")
	token, err := GenerateToken(primitive.NewObjectID(), secret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, secret)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hashed, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hashed)
	assert.True(t, ComparePassword("secret123", hashed))
	assert.False(t, ComparePassword("secret124", hashed))
}

func TestGenerateVerificationCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code := GenerateVerificationCode()
		require.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9')
		}
		seen[code] = true
	}
	assert.Greater(t, len(seen), 1)
}
