package domain

import "time"

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// Authorizer answers capability questions about an actor. Admin checks go
// through here rather than comparing against a single configured identifier,
// so multiple admins can be supported without touching call sites.
type Authorizer interface {
	IsAdmin(userID string) bool
}
