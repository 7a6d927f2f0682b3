package service

import (
	"bytes"
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"log/slog"
	"sync"

	cryptoDomain "github.com/dheeverse/dheeverse/internal/crypto/domain"
	"github.com/dheeverse/dheeverse/internal/metrics"
)

// AESCBCFieldEncryptor implements FieldEncryptor with AES-256 in CBC mode and PKCS#7 padding.
//
// The key is obtained from the KeyLoader exactly once per instance, either through
// Initialize or on the first encrypt/decrypt call. A failed load is cached as well, so
// every later call reports the same configuration error instead of retrying.
//
// Safe for concurrent use.
type AESCBCFieldEncryptor struct {
	loader  KeyLoader
	logger  *slog.Logger
	metrics metrics.BusinessMetrics

	once    sync.Once
	block   cipher.Block
	loadErr error
}

// NewAESCBCFieldEncryptor creates a field encryptor. No key is loaded until first use.
func NewAESCBCFieldEncryptor(
	loader KeyLoader,
	logger *slog.Logger,
	businessMetrics metrics.BusinessMetrics,
) *AESCBCFieldEncryptor {
	if businessMetrics == nil {
		businessMetrics = metrics.NewNoOpBusinessMetrics()
	}
	return &AESCBCFieldEncryptor{
		loader:  loader,
		logger:  logger,
		metrics: businessMetrics,
	}
}

// Initialize loads and validates the key now so that misconfiguration fails at startup.
func (e *AESCBCFieldEncryptor) Initialize(ctx context.Context) error {
	_, err := e.cipherBlock(ctx)
	return err
}

func (e *AESCBCFieldEncryptor) cipherBlock(ctx context.Context) (cipher.Block, error) {
	e.once.Do(func() {
		e.block, e.loadErr = e.loadBlock(ctx)
	})
	return e.block, e.loadErr
}

func (e *AESCBCFieldEncryptor) loadBlock(ctx context.Context) (cipher.Block, error) {
	if e.loader == nil {
		return nil, cryptoDomain.ErrEncryptionKeyNotConfigured
	}

	hexKey, err := e.loader.LoadKey(ctx)
	if err != nil {
		return nil, err
	}

	key, err := cryptoDomain.ParseEncryptionKey(hexKey)
	if err != nil {
		return nil, err
	}
	defer key.Close()

	// aes.NewCipher copies the key into its expanded schedule.
	block, err := aes.NewCipher(key.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}
	return block, nil
}

// Encrypt encrypts the UTF-8 bytes of plaintext under a fresh random IV.
func (e *AESCBCFieldEncryptor) Encrypt(plaintext string) (string, error) {
	block, err := e.cipherBlock(context.Background())
	if err != nil {
		return "", err
	}

	iv := make([]byte, cryptoDomain.IVSize)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("failed to generate iv: %w", err)
	}

	padded := pkcs7Pad([]byte(plaintext), block.BlockSize())
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return cryptoDomain.FormatToken(iv, ciphertext), nil
}

// Decrypt reverses Encrypt. Values that do not parse as a token are returned unchanged
// and reported through the logger and the decrypt_passthrough metric.
func (e *AESCBCFieldEncryptor) Decrypt(token string) (string, error) {
	block, err := e.cipherBlock(context.Background())
	if err != nil {
		return "", err
	}

	iv, ciphertext, ok := cryptoDomain.ParseToken(token)
	if !ok {
		e.recordPassthrough(token)
		return token, nil
	}

	padded := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, ciphertext)

	plaintext, err := pkcs7Unpad(padded, block.BlockSize())
	if err != nil {
		return "", cryptoDomain.ErrDecryptionFailed
	}
	return string(plaintext), nil
}

// EncryptValue encrypts *plaintext; nil is returned as nil.
func (e *AESCBCFieldEncryptor) EncryptValue(plaintext *string) (*string, error) {
	if plaintext == nil {
		return nil, nil
	}
	token, err := e.Encrypt(*plaintext)
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// DecryptValue decrypts *token; nil is returned as nil.
func (e *AESCBCFieldEncryptor) DecryptValue(token *string) (*string, error) {
	if token == nil {
		return nil, nil
	}
	plaintext, err := e.Decrypt(*token)
	if err != nil {
		return nil, err
	}
	return &plaintext, nil
}

// EncryptSensitiveFields encrypts every present field of a copy of fields.
func (e *AESCBCFieldEncryptor) EncryptSensitiveFields(
	fields cryptoDomain.SensitiveFields,
) (cryptoDomain.SensitiveFields, error) {
	return fields.Map(e.Encrypt)
}

// DecryptSensitiveFields decrypts every present field of a copy of fields.
func (e *AESCBCFieldEncryptor) DecryptSensitiveFields(
	fields cryptoDomain.SensitiveFields,
) (cryptoDomain.SensitiveFields, error) {
	return fields.Map(e.Decrypt)
}

func (e *AESCBCFieldEncryptor) recordPassthrough(value string) {
	// Empty strings hold nothing that could be lost.
	if value == "" {
		return
	}
	if e.logger != nil {
		e.logger.Warn("field value is not an encrypted token, returning it unchanged",
			slog.Int("length", len(value)),
		)
	}
	e.metrics.RecordOperation(context.Background(), "fieldcrypt", "decrypt_passthrough", "success")
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	return append(bytes.Clone(data), bytes.Repeat([]byte{byte(padding)}, padding)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("invalid padded length %d", len(data))
	}

	padding := int(data[len(data)-1])
	if padding == 0 || padding > blockSize {
		return nil, fmt.Errorf("invalid padding byte %d", padding)
	}

	for _, b := range data[len(data)-padding:] {
		if int(b) != padding {
			return nil, fmt.Errorf("inconsistent padding")
		}
	}
	return data[:len(data)-padding], nil
}
