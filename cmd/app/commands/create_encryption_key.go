package commands

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"

	cryptoDomain "github.com/dheeverse/dheeverse/internal/crypto/domain"
	cryptoService "github.com/dheeverse/dheeverse/internal/crypto/service"
)

// EncryptionKeyOutput is the json form of create-encryption-key.
type EncryptionKeyOutput struct {
	JournalEncryptionKey string `json:"journal_encryption_key"`
	KMSKeyURI            string `json:"kms_key_uri,omitempty"`
}

// RunCreateEncryptionKey generates a random 256-bit journal key. With a KMS key URI the
// hex key is wrapped and the printed value is the base64 ciphertext that the server
// unwraps at startup.
func RunCreateEncryptionKey(
	ctx context.Context,
	kmsService cryptoService.KMSService,
	logger *slog.Logger,
	writer io.Writer,
	kmsKeyURI string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	raw := make([]byte, cryptoDomain.KeySize)
	if _, err := io.ReadFull(rand.Reader, raw); err != nil {
		return fmt.Errorf("failed to generate encryption key: %w", err)
	}
	defer cryptoDomain.Zero(raw)

	value := hex.EncodeToString(raw)
	if kmsKeyURI != "" {
		wrapped, err := cryptoService.WrapKey(ctx, kmsService, kmsKeyURI, value)
		if err != nil {
			return fmt.Errorf("failed to wrap encryption key: %w", err)
		}
		value = wrapped
		logger.Info("encryption key wrapped with KMS")
	}

	output := EncryptionKeyOutput{JournalEncryptionKey: value, KMSKeyURI: kmsKeyURI}
	if format == "json" {
		return writeJSON(writer, output)
	}

	_, _ = fmt.Fprintln(writer, "# Add these to your environment:")
	_, _ = fmt.Fprintf(writer, "JOURNAL_ENCRYPTION_KEY=%s\n", output.JournalEncryptionKey)
	if kmsKeyURI != "" {
		_, _ = fmt.Fprintf(writer, "KMS_KEY_URI=%s\n", kmsKeyURI)
	}
	return nil
}
