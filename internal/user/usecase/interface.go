// Package usecase implements account settings: profile, password, email
// change and the archive PIN.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/dheeverse/dheeverse/internal/auth/domain"
	outboxDomain "github.com/dheeverse/dheeverse/internal/outbox/domain"
	"github.com/dheeverse/dheeverse/internal/user/domain"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

// SessionRevoker revokes sessions after a credential change.
type SessionRevoker interface {
	RevokeAllByUserID(ctx context.Context, userID uuid.UUID, exceptID uuid.UUID, revokedAt time.Time) error
}

// OTPUseCase issues and verifies one-time codes.
type OTPUseCase interface {
	Issue(ctx context.Context, user *domain.User, purpose authDomain.OTPPurpose, target string) error
	Verify(
		ctx context.Context,
		userID uuid.UUID,
		purpose authDomain.OTPPurpose,
		code string,
	) (*authDomain.OTPCode, error)
}

// OutboxEventRepository stores mail jobs in the caller's transaction.
type OutboxEventRepository interface {
	Create(ctx context.Context, event *outboxDomain.OutboxEvent) error
}

// PasswordHasher hashes and compares passwords and PINs.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(plain string, hash string) bool
}

// ChangePasswordInput carries a password change for the session's owner.
// Every session except SessionID is revoked on success.
type ChangePasswordInput struct {
	UserID          uuid.UUID
	SessionID       uuid.UUID
	CurrentPassword string
	NewPassword     string
}

// UseCase defines the account settings operations.
type UseCase interface {
	// Get returns the user's profile.
	Get(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// ChangePassword verifies the current password, stores the new one and
	// signs out every other session.
	ChangePassword(ctx context.Context, input *ChangePasswordInput) error

	// RequestEmailChange mails an email_change code to newEmail.
	RequestEmailChange(ctx context.Context, userID uuid.UUID, newEmail string) error

	// ConfirmEmailChange swaps the email to the address the code was sent to.
	ConfirmEmailChange(ctx context.Context, userID uuid.UUID, code string) (*domain.User, error)

	// SetArchivePIN sets or replaces the archive PIN. Replacing requires currentPIN.
	SetArchivePIN(ctx context.Context, userID uuid.UUID, currentPIN *string, newPIN string) error

	// VerifyArchivePIN checks pin against the stored archive PIN.
	VerifyArchivePIN(ctx context.Context, userID uuid.UUID, pin string) error
}
