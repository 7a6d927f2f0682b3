package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	cryptoDomain "github.com/dheeverse/dheeverse/internal/crypto/domain"
)

// ConfigKeyLoader returns a hex key taken verbatim from configuration.
type ConfigKeyLoader struct {
	hexKey string
}

// NewConfigKeyLoader creates a loader for a plain JOURNAL_ENCRYPTION_KEY value.
func NewConfigKeyLoader(hexKey string) *ConfigKeyLoader {
	return &ConfigKeyLoader{hexKey: hexKey}
}

// LoadKey returns the configured value. Validation happens in the encryptor.
func (l *ConfigKeyLoader) LoadKey(ctx context.Context) (string, error) {
	if strings.TrimSpace(l.hexKey) == "" {
		return "", cryptoDomain.ErrEncryptionKeyNotConfigured
	}
	return l.hexKey, nil
}

// KMSKeyLoader unwraps a KMS-encrypted hex key.
//
// The configured value is the base64 encoding of the KMS ciphertext produced by
// the create-encryption-key command with --kms-key-uri.
type KMSKeyLoader struct {
	kmsService KMSService
	keyURI     string
	wrappedKey string
	logger     *slog.Logger
}

// NewKMSKeyLoader creates a loader that decrypts wrappedKey with the keeper at keyURI.
func NewKMSKeyLoader(kmsService KMSService, keyURI, wrappedKey string, logger *slog.Logger) *KMSKeyLoader {
	return &KMSKeyLoader{
		kmsService: kmsService,
		keyURI:     keyURI,
		wrappedKey: wrappedKey,
		logger:     logger,
	}
}

// LoadKey opens the keeper, decrypts the wrapped key and closes the keeper.
func (l *KMSKeyLoader) LoadKey(ctx context.Context) (string, error) {
	if strings.TrimSpace(l.wrappedKey) == "" {
		return "", cryptoDomain.ErrEncryptionKeyNotConfigured
	}

	ciphertext, err := base64.StdEncoding.DecodeString(strings.TrimSpace(l.wrappedKey))
	if err != nil {
		return "", fmt.Errorf("%w: wrapped key is not valid base64", cryptoDomain.ErrKMSDecryptionFailed)
	}

	keeper, err := l.kmsService.OpenKeeper(ctx, l.keyURI)
	if err != nil {
		return "", fmt.Errorf("%w: %v", cryptoDomain.ErrKMSDecryptionFailed, err)
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil && l.logger != nil {
			l.logger.Warn("failed to close KMS keeper", slog.Any("error", closeErr))
		}
	}()

	plaintext, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: %v", cryptoDomain.ErrKMSDecryptionFailed, err)
	}
	defer cryptoDomain.Zero(plaintext)

	if l.logger != nil {
		l.logger.Info("journal encryption key unwrapped with KMS")
	}
	return string(plaintext), nil
}

// WrapKey encrypts hexKey with the keeper at keyURI and returns the base64 ciphertext
// to store in JOURNAL_ENCRYPTION_KEY.
func WrapKey(ctx context.Context, kmsService KMSService, keyURI, hexKey string) (wrapped string, err error) {
	keeper, err := kmsService.OpenKeeper(ctx, keyURI)
	if err != nil {
		return "", err
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil && err == nil {
			wrapped, err = "", fmt.Errorf("failed to close KMS keeper: %w", closeErr)
		}
	}()

	ciphertext, err := keeper.Encrypt(ctx, []byte(hexKey))
	if err != nil {
		return "", fmt.Errorf("failed to encrypt key with KMS: %w", err)
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}
