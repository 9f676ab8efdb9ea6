package ports

// PasswordHasher hashes and verifies passwords (Argon2id).
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenIssuer signs and validates bearer tokens. Tokens are stateless: once
// issued, a token stays valid until its embedded expiry regardless of later
// account changes.
type TokenIssuer interface {
	Issue(userID string) (string, error)
	// Verify returns the user ID embedded in the token, or
	// errors.ErrInvalidToken on bad signature, malformed input, or expiry.
	Verify(tokenString string) (string, error)
}
