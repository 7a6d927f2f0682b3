package domain

const (
	// KeySize is the AES-256 key length in bytes.
	KeySize = 32

	// KeyHexLength is the length of the hex-encoded key accepted from configuration.
	KeyHexLength = KeySize * 2

	// IVSize is the length of the per-value random initialization vector (one AES block).
	IVSize = 16

	// TokenDelimiter separates the hex IV from the hex ciphertext in a stored token.
	TokenDelimiter = ":"
)
