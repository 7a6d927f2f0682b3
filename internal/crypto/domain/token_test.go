package domain

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAndParseToken(t *testing.T) {
	iv := bytes.Repeat([]byte{0x01}, IVSize)
	ciphertext := bytes.Repeat([]byte{0xfe}, 32)

	token := FormatToken(iv, ciphertext)
	assert.Equal(t, strings.Repeat("01", 16)+":"+strings.Repeat("fe", 32), token)

	gotIV, gotCT, ok := ParseToken(token)
	require.True(t, ok)
	assert.Equal(t, iv, gotIV)
	assert.Equal(t, ciphertext, gotCT)
}

func TestParseToken_UppercaseHex(t *testing.T) {
	token := strings.Repeat("AB", 16) + ":" + strings.Repeat("CD", 16)
	assert.True(t, IsToken(token))
}

func TestParseToken_NotAToken(t *testing.T) {
	validIV := strings.Repeat("00", 16)
	validCT := strings.Repeat("00", 16)

	tests := []struct {
		name  string
		value string
	}{
		{"empty", ""},
		{"no delimiter", "not-a-valid-token"},
		{"empty ciphertext segment", "abcd:"},
		{"empty iv segment", ":" + validCT},
		{"delimiter only", ":"},
		{"plain sentence with colon", "Note to self: breathe"},
		{"non-hex iv", strings.Repeat("zz", 16) + ":" + validCT},
		{"non-hex ciphertext", validIV + ":" + strings.Repeat("zz", 16)},
		{"short iv", "abcd:" + validCT},
		{"ciphertext not block aligned", validIV + ":" + strings.Repeat("00", 15)},
		{"second delimiter", validIV + ":" + validCT + ":" + validCT},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iv, ct, ok := ParseToken(tt.value)
			assert.False(t, ok)
			assert.Nil(t, iv)
			assert.Nil(t, ct)
			assert.False(t, IsToken(tt.value))
		})
	}
}
