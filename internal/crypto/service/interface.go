// Package service provides field-level encryption for sensitive journal data.
// Values are encrypted with AES-256-CBC under a process-wide key and stored as
// "hex(iv):hex(ciphertext)" tokens.
package service

import (
	"context"

	cryptoDomain "github.com/dheeverse/dheeverse/internal/crypto/domain"
)

// FieldEncryptor transforms sensitive text between plaintext and stored token form.
type FieldEncryptor interface {
	// Initialize resolves and validates the key eagerly. Calling it is optional; without
	// it the key is resolved on first use.
	Initialize(ctx context.Context) error

	// Encrypt returns a fresh token for plaintext. Identical inputs yield different tokens.
	Encrypt(plaintext string) (string, error)

	// Decrypt returns the plaintext of token. Values that are not shaped like a token
	// are returned unchanged.
	Decrypt(token string) (string, error)

	// EncryptValue is Encrypt with nil passthrough.
	EncryptValue(plaintext *string) (*string, error)

	// DecryptValue is Decrypt with nil passthrough.
	DecryptValue(token *string) (*string, error)

	// EncryptSensitiveFields returns a copy of fields with every present value encrypted.
	EncryptSensitiveFields(fields cryptoDomain.SensitiveFields) (cryptoDomain.SensitiveFields, error)

	// DecryptSensitiveFields returns a copy of fields with every present value decrypted.
	DecryptSensitiveFields(fields cryptoDomain.SensitiveFields) (cryptoDomain.SensitiveFields, error)
}

// KeyLoader supplies the hex-encoded field encryption key.
type KeyLoader interface {
	LoadKey(ctx context.Context) (string, error)
}
