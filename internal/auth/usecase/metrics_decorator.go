package usecase

import (
	"context"
	"time"

	authDomain "github.com/dheeverse/dheeverse/internal/auth/domain"
	"github.com/dheeverse/dheeverse/internal/metrics"
	userDomain "github.com/dheeverse/dheeverse/internal/user/domain"
)

// authUseCaseWithMetrics decorates AuthUseCase with metrics instrumentation.
type authUseCaseWithMetrics struct {
	next    AuthUseCase
	metrics metrics.BusinessMetrics
}

// NewAuthUseCaseWithMetrics wraps an AuthUseCase with metrics recording.
func NewAuthUseCaseWithMetrics(useCase AuthUseCase, m metrics.BusinessMetrics) AuthUseCase {
	return &authUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (a *authUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, a.metrics, "auth", operation, start, err)
}

// SignUp records metrics for sign-up operations.
func (a *authUseCaseWithMetrics) SignUp(
	ctx context.Context,
	input *authDomain.SignUpInput,
) (*userDomain.User, error) {
	start := time.Now()
	user, err := a.next.SignUp(ctx, input)
	a.record(ctx, "signup", start, err)
	return user, err
}

// VerifyEmail records metrics for email verification operations.
func (a *authUseCaseWithMetrics) VerifyEmail(
	ctx context.Context,
	email string,
	code string,
) (*authDomain.SessionOutput, error) {
	start := time.Now()
	output, err := a.next.VerifyEmail(ctx, email, code)
	a.record(ctx, "verify_email", start, err)
	return output, err
}

// ResendOTP records metrics for code resend operations.
func (a *authUseCaseWithMetrics) ResendOTP(ctx context.Context, email string) error {
	start := time.Now()
	err := a.next.ResendOTP(ctx, email)
	a.record(ctx, "resend_otp", start, err)
	return err
}

// Login records metrics for login operations.
func (a *authUseCaseWithMetrics) Login(
	ctx context.Context,
	input *authDomain.LoginInput,
) (*authDomain.SessionOutput, error) {
	start := time.Now()
	output, err := a.next.Login(ctx, input)
	a.record(ctx, "login", start, err)
	return output, err
}

// Authenticate records metrics for session authentication.
func (a *authUseCaseWithMetrics) Authenticate(ctx context.Context, tokenHash string) (*authDomain.Session, error) {
	start := time.Now()
	session, err := a.next.Authenticate(ctx, tokenHash)
	a.record(ctx, "authenticate", start, err)
	return session, err
}

// Logout records metrics for logout operations.
func (a *authUseCaseWithMetrics) Logout(ctx context.Context, tokenHash string) error {
	start := time.Now()
	err := a.next.Logout(ctx, tokenHash)
	a.record(ctx, "logout", start, err)
	return err
}
