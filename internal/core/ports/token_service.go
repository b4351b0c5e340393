package ports

// TokenService issues and validates the signed bearer tokens used for
// authentication. All operations are local: no I/O, no shared mutable state.
type TokenService interface {
	// Issue produces a signed token for the given subject (the username or
	// email the client logged in with).
	Issue(subject string) (string, error)
	// Validate reports whether the token parses, its signature verifies, and
	// it has not expired. It fails closed and never panics on garbage input.
	Validate(token string) bool
	// ExtractSubject returns the embedded subject, or "" when the token fails
	// verification for any reason. A tampered token and an expired one are
	// indistinguishable here.
	ExtractSubject(token string) string
}
