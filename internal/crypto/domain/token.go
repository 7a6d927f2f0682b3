package domain

import (
	"encoding/hex"
	"strings"
)

// FormatToken renders an IV and ciphertext as the stored "hex(iv):hex(ciphertext)" token.
func FormatToken(iv, ciphertext []byte) string {
	return hex.EncodeToString(iv) + TokenDelimiter + hex.EncodeToString(ciphertext)
}

// ParseToken splits a stored token on its first delimiter and hex-decodes both segments.
//
// ok is false when the value does not have the shape of a token this package could
// have produced: a missing delimiter, an empty or non-hex segment, an IV that is not
// IVSize bytes, or a ciphertext that is not a positive multiple of the block size.
// Such values are legacy plaintext or corrupt data and must be left untouched.
func ParseToken(token string) (iv, ciphertext []byte, ok bool) {
	ivHex, ctHex, found := strings.Cut(token, TokenDelimiter)
	if !found || ivHex == "" || ctHex == "" {
		return nil, nil, false
	}

	iv, err := hex.DecodeString(ivHex)
	if err != nil || len(iv) != IVSize {
		return nil, nil, false
	}

	ciphertext, err = hex.DecodeString(ctHex)
	if err != nil || len(ciphertext) == 0 || len(ciphertext)%IVSize != 0 {
		return nil, nil, false
	}

	return iv, ciphertext, true
}

// IsToken reports whether value has the shape of an encrypted field token.
func IsToken(value string) bool {
	_, _, ok := ParseToken(value)
	return ok
}
