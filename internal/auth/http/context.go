// Package http provides HTTP handlers and middleware for sign-up, login and
// session authentication.
package http

import (
	"context"

	"github.com/google/uuid"

	authDomain "github.com/dheeverse/dheeverse/internal/auth/domain"
)

// sessionKey is a context key type for storing authenticated sessions.
type sessionKey struct{}

// WithSession stores an authenticated session in the context.
// This is typically called by the authentication middleware after successful token validation.
func WithSession(ctx context.Context, session *authDomain.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// GetSession retrieves an authenticated session from the context.
// Returns (session, true) if a session is present, or (nil, false) if no session was set.
func GetSession(ctx context.Context) (*authDomain.Session, bool) {
	session, ok := ctx.Value(sessionKey{}).(*authDomain.Session)
	return session, ok && session != nil
}

// GetUserID returns the user id of the authenticated session.
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	session, ok := GetSession(ctx)
	if !ok {
		return uuid.Nil, false
	}
	return session.UserID, true
}
