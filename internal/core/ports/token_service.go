package ports

// TokenService issues and verifies signed session tokens. Tokens are
// stateless: validity is decided entirely by signature and expiry.
type TokenService interface {
	Issue(userID string) (string, error)
	// Verify returns the user id carried by the token and true when the
	// token is valid. Every failure mode reports the same (zero, false).
	Verify(token string) (string, bool)
}
