// Package domain defines the field encryption key, the stored token format and the
// set of sensitive journal fields.
package domain

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// EncryptionKey holds the raw 32-byte AES-256 key used for field encryption.
type EncryptionKey struct {
	key []byte
}

// ParseEncryptionKey validates and decodes a 64-character hex key (case-insensitive).
//
// Surrounding whitespace is ignored. An empty value returns ErrEncryptionKeyNotConfigured;
// a value of the wrong length or with non-hex characters returns ErrInvalidEncryptionKey.
// The key material never appears in returned errors.
func ParseEncryptionKey(hexKey string) (*EncryptionKey, error) {
	hexKey = strings.TrimSpace(hexKey)
	if hexKey == "" {
		return nil, ErrEncryptionKeyNotConfigured
	}

	if len(hexKey) != KeyHexLength {
		return nil, fmt.Errorf("%w: got %d characters", ErrInvalidEncryptionKey, len(hexKey))
	}

	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("%w: contains non-hex characters", ErrInvalidEncryptionKey)
	}

	if len(key) != KeySize {
		Zero(key)
		return nil, fmt.Errorf("%w: decoded to %d bytes", ErrInvalidEncryptionKey, len(key))
	}

	return &EncryptionKey{key: key}, nil
}

// Bytes returns the raw key material. Callers must not retain or modify it.
func (k *EncryptionKey) Bytes() []byte {
	return k.key
}

// Close zeroes the key material.
func (k *EncryptionKey) Close() {
	Zero(k.key)
	k.key = nil
}
