package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_AccessTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, 24*time.Hour)
	userID := uuid.New()
	staffID := uuid.New()

	token, err := m.GenerateAccessToken(userID, "cashier@chalkboard.id", "cashier", &staffID)
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "cashier", claims.Role)
	require.NotNil(t, claims.StaffID)
	assert.Equal(t, staffID, *claims.StaffID)
}

func TestJWTManager_RejectsForeignSecret(t *testing.T) {
	issuer := NewJWTManager("one", time.Hour, time.Hour)
	verifier := NewJWTManager("two", time.Hour, time.Hour)

	token, err := issuer.GenerateAccessToken(uuid.New(), "a@b.c", "admin", nil)
	require.NoError(t, err)

	_, err = verifier.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	m := NewJWTManager("secret", -time.Minute, time.Hour)

	token, err := m.GenerateAccessToken(uuid.New(), "a@b.c", "admin", nil)
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestJWTManager_RefreshToken(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, time.Hour)
	userID := uuid.New()

	token, err := m.GenerateRefreshToken(userID)
	require.NoError(t, err)

	got, err := m.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestGenerateNumbers(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	order := GenerateOrderNumber(now)
	trx := GenerateTransactionNumber(now)

	assert.Regexp(t, `^FNB-20260314-[0-9A-F]{8}$`, order)
	assert.Regexp(t, `^TRX-20260314-[0-9A-F]{8}$`, trx)
	assert.NotEqual(t, order, GenerateOrderNumber(now))
}
