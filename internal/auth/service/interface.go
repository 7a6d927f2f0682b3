// Package service provides the credential primitives used by authentication:
// Argon2id hashing for passwords, archive PINs and one-time codes, and opaque
// bearer tokens stored as SHA-256 hashes.
package service

// PasswordService hashes and verifies low-entropy secrets typed by users.
type PasswordService interface {
	// Hash returns the Argon2id PHC string for plain.
	Hash(plain string) (string, error)

	// Compare reports whether plain matches hash in constant time.
	Compare(plain string, hash string) bool

	// GenerateOTP returns a random numeric code of domain.OTPLength digits and its hash.
	GenerateOTP() (code string, codeHash string, err error)
}

// TokenService issues bearer tokens for login sessions. Only the hash is persisted
// in sessions.token_hash; the plain token goes back to the client once.
type TokenService interface {
	GenerateToken() (plainToken string, tokenHash string, err error)

	// HashToken maps a presented bearer token to its sessions.token_hash lookup key.
	HashToken(plainToken string) string
}
