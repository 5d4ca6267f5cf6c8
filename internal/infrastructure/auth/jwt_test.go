package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ebookstore/backend/internal/infrastructure/config"
)

func newTestJWTService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:          "test-secret-at-least-32-characters-long",
		TokenExpiration: expiration,
		Issuer:          "bookstore-test",
	})
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	userID := uuid.New()

	token, err := svc.Issue(userID, "reader@example.com", "customer")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "reader@example.com", claims.Email)
	assert.Equal(t, "customer", claims.Role)
	assert.Equal(t, "bookstore-test", claims.Issuer)
}

func TestJWTService_Verify(t *testing.T) {
	t.Run("expired token", func(t *testing.T) {
		svc := newTestJWTService(-time.Minute)
		token, err := svc.Issue(uuid.New(), "reader@example.com", "customer")
		require.NoError(t, err)

		_, err = svc.Verify(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		svc := newTestJWTService(time.Hour)
		_, err := svc.Verify("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token signed with a different secret", func(t *testing.T) {
		svc := newTestJWTService(time.Hour)
		other := NewJWTService(config.JWTConfig{
			Secret:          "a-completely-different-signing-secret!!",
			TokenExpiration: time.Hour,
			Issuer:          "bookstore-test",
		})
		token, err := other.Issue(uuid.New(), "reader@example.com", "customer")
		require.NoError(t, err)

		_, err = svc.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token from a different issuer", func(t *testing.T) {
		svc := newTestJWTService(time.Hour)
		other := NewJWTService(config.JWTConfig{
			Secret:          "test-secret-at-least-32-characters-long",
			TokenExpiration: time.Hour,
			Issuer:          "someone-else",
		})
		token, err := other.Issue(uuid.New(), "reader@example.com", "customer")
		require.NoError(t, err)

		_, err = svc.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher()

	t.Run("hash verifies against the original password", func(t *testing.T) {
		hash, err := hasher.Hash("correct horse battery staple")
		require.NoError(t, err)
		assert.NotEqual(t, "correct horse battery staple", hash)

		assert.True(t, hasher.Verify(hash, "correct horse battery staple"))
		assert.False(t, hasher.Verify(hash, "wrong password"))
	})

	t.Run("same password hashes differently each time", func(t *testing.T) {
		first, err := hasher.Hash("repeatable")
		require.NoError(t, err)
		second, err := hasher.Hash("repeatable")
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})

	t.Run("passwords beyond the bcrypt limit are rejected", func(t *testing.T) {
		long := make([]byte, 80)
		for i := range long {
			long[i] = 'a'
		}
		_, err := hasher.Hash(string(long))
		assert.ErrorIs(t, err, ErrPasswordTooLong)
	})
}
