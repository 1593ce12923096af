package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-signing-secret"

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken(testSecret, 42)
	require.NoError(t, err)
	require.NotEmpty(t, tok.Token)

	// Expiry is pinned to the fixed TTL, give or take clock skew of the call.
	assert.WithinDuration(t, time.Now().UTC().Add(AccessTokenTTL), tok.Exp, 5*time.Second)

	uid, err := ParseAccessToken(testSecret, tok.Token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), uid)
}

func TestParseAccessTokenWrongSecret(t *testing.T) {
	tok, err := NewAccessToken(testSecret, 42)
	require.NoError(t, err)

	_, err = ParseAccessToken("a-different-secret", tok.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseAccessTokenTamperedSignature(t *testing.T) {
	tok, err := NewAccessToken(testSecret, 42)
	require.NoError(t, err)

	parts := strings.Split(tok.Token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = ParseAccessToken(testSecret, tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseAccessTokenExpired(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "42",
		IssuedAt:  jwt.NewNumericDate(time.Now().UTC().Add(-3 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().UTC().Add(-time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ParseAccessToken(testSecret, signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseAccessTokenSubjectValidation(t *testing.T) {
	sign := func(sub string) string {
		claims := jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().UTC()),
			ExpiresAt: jwt.NewNumericDate(time.Now().UTC().Add(time.Hour)),
		}
		if sub != "" {
			claims.Subject = sub
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)
		return signed
	}

	for _, sub := range []string{"", "not-a-number", "0"} {
		_, err := ParseAccessToken(testSecret, sign(sub))
		assert.ErrorIs(t, err, ErrInvalidSubject, "subject %q must be rejected as payload, not signature", sub)
	}
}

func TestParseAccessTokenRejectsUnsignedAlg(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(time.Now().UTC().Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseAccessToken(testSecret, signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
