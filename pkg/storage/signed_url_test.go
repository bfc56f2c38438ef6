package storage

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignedURLSignerGenerateAndParse(t *testing.T) {
	signer := NewSignedURLSigner("secret", time.Hour)
	token, expiresAt, err := signer.Generate("exp-1", "week-2025-01-06.csv")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.False(t, expiresAt.IsZero())

	exportID, name, parsedExpiry, err := signer.Parse(token, false)
	require.NoError(t, err)
	require.Equal(t, "exp-1", exportID)
	require.Equal(t, "week-2025-01-06.csv", name)
	require.WithinDuration(t, expiresAt, parsedExpiry, time.Second)
}

func TestSignedURLSignerExpired(t *testing.T) {
	signer := NewSignedURLSigner("secret", time.Millisecond*10)
	token, _, err := signer.Generate("exp-1", "week-2025-01-06.csv")
	require.NoError(t, err)
	time.Sleep(time.Millisecond * 20)

	_, _, _, err = signer.Parse(token, false)
	require.Error(t, err)

	exportID, name, _, err := signer.Parse(token, true)
	require.NoError(t, err)
	require.Equal(t, "exp-1", exportID)
	require.Equal(t, "week-2025-01-06.csv", name)
}

func TestSignedURLSignerRejectsTampering(t *testing.T) {
	signer := NewSignedURLSigner("secret", time.Hour)
	token, _, err := signer.Generate("exp-1", "week-2025-01-06.csv")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	parts[0] = "exp-2"
	_, _, _, err = signer.Parse(strings.Join(parts, "."), false)
	require.Error(t, err)

	other := NewSignedURLSigner("different", time.Hour)
	_, _, _, err = other.Parse(token, false)
	require.Error(t, err)
}
