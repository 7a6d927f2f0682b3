// Package mocks provides testify mock implementations of the auth use case
// interfaces and their repositories.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/dheeverse/dheeverse/internal/auth/domain"
	outboxDomain "github.com/dheeverse/dheeverse/internal/outbox/domain"
	userDomain "github.com/dheeverse/dheeverse/internal/user/domain"
)

// MockAuthUseCase is a mock implementation of AuthUseCase.
type MockAuthUseCase struct {
	mock.Mock
}

// SignUp mocks the SignUp method.
func (m *MockAuthUseCase) SignUp(ctx context.Context, input *authDomain.SignUpInput) (*userDomain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

// VerifyEmail mocks the VerifyEmail method.
func (m *MockAuthUseCase) VerifyEmail(
	ctx context.Context,
	email string,
	code string,
) (*authDomain.SessionOutput, error) {
	args := m.Called(ctx, email, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.SessionOutput), args.Error(1)
}

// ResendOTP mocks the ResendOTP method.
func (m *MockAuthUseCase) ResendOTP(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

// Login mocks the Login method.
func (m *MockAuthUseCase) Login(
	ctx context.Context,
	input *authDomain.LoginInput,
) (*authDomain.SessionOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.SessionOutput), args.Error(1)
}

// Authenticate mocks the Authenticate method.
func (m *MockAuthUseCase) Authenticate(ctx context.Context, tokenHash string) (*authDomain.Session, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Session), args.Error(1)
}

// Logout mocks the Logout method.
func (m *MockAuthUseCase) Logout(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

// MockOTPUseCase is a mock implementation of OTPUseCase.
type MockOTPUseCase struct {
	mock.Mock
}

// Issue mocks the Issue method.
func (m *MockOTPUseCase) Issue(
	ctx context.Context,
	user *userDomain.User,
	purpose authDomain.OTPPurpose,
	target string,
) error {
	args := m.Called(ctx, user, purpose, target)
	return args.Error(0)
}

// Verify mocks the Verify method.
func (m *MockOTPUseCase) Verify(
	ctx context.Context,
	userID uuid.UUID,
	purpose authDomain.OTPPurpose,
	code string,
) (*authDomain.OTPCode, error) {
	args := m.Called(ctx, userID, purpose, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.OTPCode), args.Error(1)
}

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

// Create mocks the Create method.
func (m *MockUserRepository) Create(ctx context.Context, user *userDomain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// GetByID mocks the GetByID method.
func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

// GetByEmail mocks the GetByEmail method.
func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

// Update mocks the Update method.
func (m *MockUserRepository) Update(ctx context.Context, user *userDomain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockSessionRepository is a mock implementation of SessionRepository.
type MockSessionRepository struct {
	mock.Mock
}

// Create mocks the Create method.
func (m *MockSessionRepository) Create(ctx context.Context, session *authDomain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

// GetByTokenHash mocks the GetByTokenHash method.
func (m *MockSessionRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*authDomain.Session, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Session), args.Error(1)
}

// Revoke mocks the Revoke method.
func (m *MockSessionRepository) Revoke(ctx context.Context, sessionID uuid.UUID, revokedAt time.Time) error {
	args := m.Called(ctx, sessionID, revokedAt)
	return args.Error(0)
}

// RevokeAllByUserID mocks the RevokeAllByUserID method.
func (m *MockSessionRepository) RevokeAllByUserID(
	ctx context.Context,
	userID uuid.UUID,
	exceptID uuid.UUID,
	revokedAt time.Time,
) error {
	args := m.Called(ctx, userID, exceptID, revokedAt)
	return args.Error(0)
}

// MockOTPRepository is a mock implementation of OTPRepository.
type MockOTPRepository struct {
	mock.Mock
}

// Create mocks the Create method.
func (m *MockOTPRepository) Create(ctx context.Context, otp *authDomain.OTPCode) error {
	args := m.Called(ctx, otp)
	return args.Error(0)
}

// GetLatest mocks the GetLatest method.
func (m *MockOTPRepository) GetLatest(
	ctx context.Context,
	userID uuid.UUID,
	purpose authDomain.OTPPurpose,
) (*authDomain.OTPCode, error) {
	args := m.Called(ctx, userID, purpose)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.OTPCode), args.Error(1)
}

// Update mocks the Update method.
func (m *MockOTPRepository) Update(ctx context.Context, otp *authDomain.OTPCode) error {
	args := m.Called(ctx, otp)
	return args.Error(0)
}

// MockOutboxEventRepository is a mock implementation of OutboxEventRepository.
type MockOutboxEventRepository struct {
	mock.Mock
}

// Create mocks the Create method.
func (m *MockOutboxEventRepository) Create(ctx context.Context, event *outboxDomain.OutboxEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockTxManager is a mock implementation of database.TxManager that runs fn
// unless an error is configured.
type MockTxManager struct {
	mock.Mock
}

// WithTx mocks the WithTx method.
func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Get(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}

// MockPasswordService is a mock implementation of PasswordService.
type MockPasswordService struct {
	mock.Mock
}

// Hash mocks the Hash method.
func (m *MockPasswordService) Hash(plain string) (string, error) {
	args := m.Called(plain)
	return args.String(0), args.Error(1)
}

// Compare mocks the Compare method.
func (m *MockPasswordService) Compare(plain string, hash string) bool {
	args := m.Called(plain, hash)
	return args.Bool(0)
}

// GenerateOTP mocks the GenerateOTP method.
func (m *MockPasswordService) GenerateOTP() (string, string, error) {
	args := m.Called()
	return args.String(0), args.String(1), args.Error(2)
}

// MockTokenService is a mock implementation of TokenService.
type MockTokenService struct {
	mock.Mock
}

// GenerateToken mocks the GenerateToken method.
func (m *MockTokenService) GenerateToken() (string, string, error) {
	args := m.Called()
	return args.String(0), args.String(1), args.Error(2)
}

// HashToken mocks the HashToken method.
func (m *MockTokenService) HashToken(plainToken string) string {
	args := m.Called(plainToken)
	return args.String(0)
}
