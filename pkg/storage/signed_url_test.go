package storage

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLSignerRoundTrip(t *testing.T) {
	signer := NewURLSigner("secret", time.Hour)
	token, expiresAt, err := signer.Sign("SR-1403-0001", "shift-reports/1403-01-01/SR-1403-0001.pdf")
	require.NoError(t, err)
	require.False(t, expiresAt.IsZero())

	parsed, err := signer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "SR-1403-0001", parsed.Subject)
	assert.Equal(t, "shift-reports/1403-01-01/SR-1403-0001.pdf", parsed.Path)
	assert.True(t, expiresAt.Equal(parsed.ExpiresAt))
}

func TestURLSignerExpired(t *testing.T) {
	signer := NewURLSigner("secret", time.Minute)
	base := time.Date(2024, 3, 20, 8, 0, 0, 0, time.UTC)
	signer.now = func() time.Time { return base }
	token, _, err := signer.Sign("SR-1", "a.pdf")
	require.NoError(t, err)

	signer.now = func() time.Time { return base.Add(2 * time.Minute) }
	parsed, err := signer.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
	require.NotNil(t, parsed)
	assert.Equal(t, "a.pdf", parsed.Path)
}

func TestURLSignerRejectsTampering(t *testing.T) {
	signer := NewURLSigner("secret", time.Hour)
	token, _, err := signer.Sign("SR-1", "a.pdf")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	parts[2] = "Li4vZXRjL3Bhc3N3ZA"
	_, err = signer.Verify(strings.Join(parts, "."))
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewURLSigner("other", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = signer.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, _, err = NewURLSigner("", time.Hour).Sign("SR-1", "a.pdf")
	assert.Error(t, err)
}
