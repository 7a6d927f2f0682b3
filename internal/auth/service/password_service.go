package service

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/allisson/go-pwdhash"

	authDomain "github.com/dheeverse/dheeverse/internal/auth/domain"
	apperrors "github.com/dheeverse/dheeverse/internal/errors"
)

// passwordService implements PasswordService using Argon2id.
type passwordService struct {
	hasher *pwdhash.PasswordHasher
}

// Hash hashes plain using Argon2id.
func (s *passwordService) Hash(plain string) (string, error) {
	hash, err := s.hasher.Hash([]byte(plain))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash secret")
	}
	return hash, nil
}

// Compare performs a constant-time comparison between plain and its hash.
func (s *passwordService) Compare(plain string, hash string) bool {
	if hash == "" {
		return false
	}
	ok, err := s.hasher.Verify([]byte(plain), hash)
	if err != nil {
		return false
	}
	return ok
}

// GenerateOTP draws each digit uniformly from crypto/rand.
func (s *passwordService) GenerateOTP() (string, string, error) {
	var b strings.Builder
	ten := big.NewInt(10)
	for i := 0; i < authDomain.OTPLength; i++ {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", "", apperrors.Wrap(err, "failed to generate code")
		}
		b.WriteByte(byte('0' + n.Int64()))
	}

	code := b.String()
	hash, err := s.Hash(code)
	if err != nil {
		return "", "", err
	}
	return code, hash, nil
}

// NewPasswordService creates a PasswordService using the interactive Argon2id policy.
func NewPasswordService() (PasswordService, error) {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}

	return &passwordService{
		hasher: hasher,
	}, nil
}
