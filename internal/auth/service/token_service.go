package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"

	apperrors "github.com/dheeverse/dheeverse/internal/errors"
)

// sessionTokenBytes is the entropy of a session bearer token.
const sessionTokenBytes = 32

type sessionTokenService struct{}

// NewTokenService returns the TokenService used by login and the auth middleware.
func NewTokenService() TokenService {
	return &sessionTokenService{}
}

// GenerateToken returns a URL-safe bearer token for a new session and the hash stored
// with it.
func (s *sessionTokenService) GenerateToken() (string, string, error) {
	raw := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate session token")
	}

	plain := base64.RawURLEncoding.EncodeToString(raw)
	return plain, s.HashToken(plain), nil
}

func (s *sessionTokenService) HashToken(plainToken string) string {
	sum := sha256.Sum256([]byte(plainToken))
	return hex.EncodeToString(sum[:])
}
