// Package usecase defines business logic interfaces for sign-up, email
// verification, one-time codes and session management.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/dheeverse/dheeverse/internal/auth/domain"
	outboxDomain "github.com/dheeverse/dheeverse/internal/outbox/domain"
	userDomain "github.com/dheeverse/dheeverse/internal/user/domain"
)

// UserRepository defines the user persistence operations needed by authentication.
// Implementations must support transaction-aware operations via context propagation.
type UserRepository interface {
	// Create stores a new user. Returns ErrUserAlreadyExists on a duplicate email.
	Create(ctx context.Context, user *userDomain.User) error

	// GetByEmail retrieves a user by lower-cased email. Returns ErrUserNotFound if not found.
	GetByEmail(ctx context.Context, email string) (*userDomain.User, error)

	// Update persists profile, credential and verification changes.
	Update(ctx context.Context, user *userDomain.User) error
}

// SessionRepository defines persistence operations for sessions.
type SessionRepository interface {
	// Create stores a new session.
	Create(ctx context.Context, session *authDomain.Session) error

	// GetByTokenHash retrieves a session by token hash. Returns ErrSessionNotFound if not found.
	GetByTokenHash(ctx context.Context, tokenHash string) (*authDomain.Session, error)

	// Revoke marks a single session as revoked at the given time.
	Revoke(ctx context.Context, sessionID uuid.UUID, revokedAt time.Time) error

	// RevokeAllByUserID revokes every active session of the user except exceptID.
	RevokeAllByUserID(ctx context.Context, userID uuid.UUID, exceptID uuid.UUID, revokedAt time.Time) error
}

// OTPRepository defines persistence operations for one-time codes.
type OTPRepository interface {
	// Create stores a new code.
	Create(ctx context.Context, otp *authDomain.OTPCode) error

	// GetLatest returns the most recent code for the user and purpose.
	// Returns ErrOTPNotFound if none exists.
	GetLatest(ctx context.Context, userID uuid.UUID, purpose authDomain.OTPPurpose) (*authDomain.OTPCode, error)

	// Update persists attempt counts and consumption.
	Update(ctx context.Context, otp *authDomain.OTPCode) error
}

// OutboxEventRepository stores mail jobs in the same transaction as the state change.
type OutboxEventRepository interface {
	Create(ctx context.Context, event *outboxDomain.OutboxEvent) error
}

// AuthUseCase defines the account lifecycle from sign-up to logout.
type AuthUseCase interface {
	// SignUp registers an unverified user and mails an email verification code.
	SignUp(ctx context.Context, input *authDomain.SignUpInput) (*userDomain.User, error)

	// VerifyEmail consumes the verification code, marks the user verified and
	// issues a session.
	VerifyEmail(ctx context.Context, email string, code string) (*authDomain.SessionOutput, error)

	// ResendOTP mails a fresh verification code. Unknown or verified emails are
	// ignored so the response does not reveal whether an account exists.
	ResendOTP(ctx context.Context, email string) error

	// Login verifies credentials and issues a session.
	Login(ctx context.Context, input *authDomain.LoginInput) (*authDomain.SessionOutput, error)

	// Authenticate resolves a token hash to an active session.
	Authenticate(ctx context.Context, tokenHash string) (*authDomain.Session, error)

	// Logout revokes the session identified by the token hash.
	Logout(ctx context.Context, tokenHash string) error
}

// OTPUseCase issues and verifies one-time codes. Issue must run inside the
// caller's transaction; Verify must not, so failed attempts are persisted.
type OTPUseCase interface {
	Issue(ctx context.Context, user *userDomain.User, purpose authDomain.OTPPurpose, target string) error
	Verify(
		ctx context.Context,
		userID uuid.UUID,
		purpose authDomain.OTPPurpose,
		code string,
	) (*authDomain.OTPCode, error)
}
