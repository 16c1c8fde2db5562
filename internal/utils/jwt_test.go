package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestNewAccessToken_Claims(t *testing.T) {
	at, err := NewAccessToken("test-secret", "alice", "CUSTOMER", 15)
	assert.NoError(t, err)
	assert.NotEmpty(t, at.Token)

	parsed, err := jwt.Parse(at.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	assert.NoError(t, err)
	assert.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("unexpected claims type")
	}
	assert.Equal(t, "alice", claims["sub"])
	assert.Equal(t, "CUSTOMER", claims["role"])
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), at.Exp, 5*time.Second)
}

func TestNewAccessToken_WrongSecretRejected(t *testing.T) {
	at, err := NewAccessToken("test-secret", "alice", "CUSTOMER", 15)
	assert.NoError(t, err)

	_, err = jwt.Parse(at.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	})
	assert.Error(t, err)
}

func TestHashRefreshRaw_Deterministic(t *testing.T) {
	a, err := NewRefreshToken(30)
	assert.NoError(t, err)
	b, err := NewRefreshToken(30)
	assert.NoError(t, err)

	assert.NotEqual(t, a.Raw, b.Raw)
	assert.Equal(t, HashRefreshRaw(a.Raw), HashRefreshRaw(a.Raw))
	assert.NotEqual(t, HashRefreshRaw(a.Raw), HashRefreshRaw(b.Raw))
	assert.Len(t, HashRefreshRaw(a.Raw), 64)
}
