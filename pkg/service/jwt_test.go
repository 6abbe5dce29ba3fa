package service

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("secret", time.Hour, zap.NewNop())

	token, err := svc.GenerateSessionToken("sess-42")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "sess-42", claims.SessionID)
	assert.Equal(t, time.Hour, svc.GetSessionTTL())
}

func TestSessionTokenRejectsForeignSignature(t *testing.T) {
	token, err := NewJWTService("other", time.Hour, zap.NewNop()).GenerateSessionToken("sess")
	require.NoError(t, err)

	_, err = NewJWTService("secret", time.Hour, zap.NewNop()).ValidateToken(token)
	assert.Error(t, err)
}

func TestSessionTokenExpired(t *testing.T) {
	svc := NewJWTService("secret", -time.Minute, zap.NewNop())
	token, err := svc.GenerateSessionToken("sess")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}
