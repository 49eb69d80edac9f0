package token

import (
	"encoding/base64"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// resign appends a valid HS256 signature to the given "header.payload".
func resign(t *testing.T, signingString string) string {
	t.Helper()
	sig, err := jwt.SigningMethodHS256.Sign(signingString, []byte(secret))
	require.NoError(t, err)
	return signingString + "." + base64.RawURLEncoding.EncodeToString(sig)
}
