package service

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenService_GenerateToken(t *testing.T) {
	tokens := NewTokenService()

	t.Run("Success_HeaderSafeToken", func(t *testing.T) {
		plain, hash, err := tokens.GenerateToken()
		require.NoError(t, err)

		raw, err := base64.RawURLEncoding.DecodeString(plain)
		require.NoError(t, err)
		assert.Len(t, raw, sessionTokenBytes)
		assert.False(t, strings.ContainsAny(plain, "+/= "), "token must be usable in an Authorization header")

		sum := sha256.Sum256([]byte(plain))
		assert.Equal(t, hex.EncodeToString(sum[:]), hash)
	})

	t.Run("Success_EverySessionGetsItsOwnToken", func(t *testing.T) {
		seen := make(map[string]struct{})
		for i := 0; i < 20; i++ {
			plain, hash, err := tokens.GenerateToken()
			require.NoError(t, err)
			_, dup := seen[plain]
			assert.False(t, dup)
			seen[plain] = struct{}{}
			assert.NotEqual(t, plain, hash)
		}
	})
}

func TestSessionTokenService_HashToken(t *testing.T) {
	tokens := NewTokenService()

	t.Run("Success_MiddlewareLookupMatchesStoredHash", func(t *testing.T) {
		plain, stored, err := tokens.GenerateToken()
		require.NoError(t, err)

		assert.Equal(t, stored, tokens.HashToken(plain))
	})

	t.Run("Success_DistinctTokensDistinctKeys", func(t *testing.T) {
		assert.NotEqual(t, tokens.HashToken("session-a"), tokens.HashToken("session-b"))
		assert.Len(t, tokens.HashToken(""), 64)
	})
}
