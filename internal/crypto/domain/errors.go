package domain

import (
	"github.com/dheeverse/dheeverse/internal/errors"
)

// Field encryption error definitions.
//
// Key errors wrap errors.ErrMisconfigured: they are never the caller's fault and
// are surfaced by the HTTP layer as 500 Internal Server Error.
var (
	// ErrEncryptionKeyNotConfigured indicates JOURNAL_ENCRYPTION_KEY is absent.
	ErrEncryptionKeyNotConfigured = errors.Wrap(errors.ErrMisconfigured, "journal encryption key is not configured")

	// ErrInvalidEncryptionKey indicates the configured key is not 64 hex characters (32 bytes).
	ErrInvalidEncryptionKey = errors.Wrap(
		errors.ErrMisconfigured,
		"journal encryption key must be 64 hexadecimal characters",
	)

	// ErrKMSDecryptionFailed indicates the KMS keeper could not unwrap the configured key.
	ErrKMSDecryptionFailed = errors.Wrap(errors.ErrMisconfigured, "failed to unwrap journal encryption key with KMS")

	// ErrDecryptionFailed indicates a well-formed token could not be decrypted.
	//
	// This happens when the token was written with a different key or its ciphertext
	// was altered. The specific cause is not disclosed.
	ErrDecryptionFailed = errors.Wrap(errors.ErrMisconfigured, "decryption failed")
)
