package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/morsalin101/chat-app/domain"
)

// MockNotificationService implements domain.NotificationService interface for testing
type MockNotificationService struct {
	SendSMSFunc func(to, message string) error

	// SentMessages records every dispatch for assertions
	SentMessages []SentSMS
}

type SentSMS struct {
	To      string
	Message string
}

// NewMockNotificationService creates a new MockNotificationService with default behaviors
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

// SendSMS sends an SMS message
func (m *MockNotificationService) SendSMS(to, message string) error {
	m.SentMessages = append(m.SentMessages, SentSMS{To: to, Message: message})
	if m.SendSMSFunc != nil {
		return m.SendSMSFunc(to, message)
	}
	// Default behavior: success (no actual SMS sent in tests)
	return nil
}

// MockPasswordService implements domain.PasswordService interface for testing
type MockPasswordService struct {
	HashFunc   func(password string) (string, error)
	VerifyFunc func(hashedPassword, password string) bool
}

// NewMockPasswordService creates a new MockPasswordService with default behaviors
func NewMockPasswordService() *MockPasswordService {
	return &MockPasswordService{}
}

// Hash hashes a password
func (m *MockPasswordService) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	// Default behavior: reversible marker, good enough for tests
	return "hashed_" + password, nil
}

// Verify checks a password against its hash
func (m *MockPasswordService) Verify(hashedPassword, password string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(hashedPassword, password)
	}
	return hashedPassword == "hashed_"+password
}

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	IssueAccessTokenFunc  func(identifier string) (string, error)
	IssueRefreshTokenFunc func(identifier string) (string, error)
	RenewAccessTokenFunc  func(refreshToken string) (string, error)
	DecodeIdentifierFunc  func(bearer string) (string, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// IssueAccessToken mints an access token
func (m *MockTokenService) IssueAccessToken(identifier string) (string, error) {
	if m.IssueAccessTokenFunc != nil {
		return m.IssueAccessTokenFunc(identifier)
	}
	return "access_" + identifier, nil
}

// IssueRefreshToken mints a refresh token
func (m *MockTokenService) IssueRefreshToken(identifier string) (string, error) {
	if m.IssueRefreshTokenFunc != nil {
		return m.IssueRefreshTokenFunc(identifier)
	}
	return "refresh_" + identifier, nil
}

// RenewAccessToken mints an access token from a refresh token
func (m *MockTokenService) RenewAccessToken(refreshToken string) (string, error) {
	if m.RenewAccessTokenFunc != nil {
		return m.RenewAccessTokenFunc(refreshToken)
	}
	return "renewed_access", nil
}

// DecodeIdentifier extracts the identity claim from a bearer token
func (m *MockTokenService) DecodeIdentifier(bearer string) (string, error) {
	if m.DecodeIdentifierFunc != nil {
		return m.DecodeIdentifierFunc(bearer)
	}
	return "", domain.ErrTokenInvalid
}

// MockOTPService implements domain.OTPService interface for testing
type MockOTPService struct {
	GenerateFunc       func(ctx context.Context, phone string) (string, error)
	VerifyFunc         func(ctx context.Context, phone, code string) (bool, error)
	ResendFunc         func(ctx context.Context, phone string) (string, error)
	DeleteVerifiedFunc func(ctx context.Context, phone string) error
	SweepExpiredFunc   func(ctx context.Context, now time.Time) (int, error)
}

// NewMockOTPService creates a new MockOTPService with default behaviors
func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

// Generate creates a fresh challenge
func (m *MockOTPService) Generate(ctx context.Context, phone string) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, phone)
	}
	return "123456", nil
}

// Verify checks a code against the live challenge
func (m *MockOTPService) Verify(ctx context.Context, phone, code string) (bool, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, phone, code)
	}
	return true, nil
}

// Resend restarts the challenge
func (m *MockOTPService) Resend(ctx context.Context, phone string) (string, error) {
	if m.ResendFunc != nil {
		return m.ResendFunc(ctx, phone)
	}
	return "123456", nil
}

// DeleteVerified consumes a verified challenge
func (m *MockOTPService) DeleteVerified(ctx context.Context, phone string) error {
	if m.DeleteVerifiedFunc != nil {
		return m.DeleteVerifiedFunc(ctx, phone)
	}
	return nil
}

// SweepExpired removes expired challenges
func (m *MockOTPService) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	if m.SweepExpiredFunc != nil {
		return m.SweepExpiredFunc(ctx, now)
	}
	return 0, nil
}

// MockIdentityService implements domain.IdentityService interface for testing
type MockIdentityService struct {
	FindByIdentifierFunc  func(ctx context.Context, raw string) (*domain.Account, error)
	FindByEmailFunc       func(ctx context.Context, email string) (*domain.Account, error)
	FindByPhoneFunc       func(ctx context.Context, phone string) (*domain.Account, error)
	FindByIDFunc          func(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	IsProfileCompleteFunc func(account *domain.Account) bool
}

// NewMockIdentityService creates a new MockIdentityService with default behaviors
func NewMockIdentityService() *MockIdentityService {
	return &MockIdentityService{}
}

// FindByIdentifier resolves a raw identifier to an account
func (m *MockIdentityService) FindByIdentifier(ctx context.Context, raw string) (*domain.Account, error) {
	if m.FindByIdentifierFunc != nil {
		return m.FindByIdentifierFunc(ctx, raw)
	}
	return nil, domain.ErrAccountNotFound
}

// FindByEmail finds an account by email
func (m *MockIdentityService) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, domain.ErrAccountNotFound
}

// FindByPhone finds an account by phone
func (m *MockIdentityService) FindByPhone(ctx context.Context, phone string) (*domain.Account, error) {
	if m.FindByPhoneFunc != nil {
		return m.FindByPhoneFunc(ctx, phone)
	}
	return nil, domain.ErrAccountNotFound
}

// FindByID finds an account by ID
func (m *MockIdentityService) FindByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrAccountNotFound
}

// IsProfileComplete reports profile completeness
func (m *MockIdentityService) IsProfileComplete(account *domain.Account) bool {
	if m.IsProfileCompleteFunc != nil {
		return m.IsProfileCompleteFunc(account)
	}
	return account.FullName != "" && account.ProfilePicture != ""
}

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	SignupWithPasswordFunc func(ctx context.Context, email, password, fullName string) (*domain.SignupResult, error)
	LoginWithPasswordFunc  func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	SignupWithOTPFunc      func(ctx context.Context, phone, fullName, code string) (*domain.AuthResult, error)
	LoginWithOTPFunc       func(ctx context.Context, phone, code string) (*domain.AuthResult, error)
	RefreshFunc            func(ctx context.Context, refreshToken string) (*domain.AuthResult, error)
	ResolveBearerFunc      func(ctx context.Context, bearer string) (*domain.Account, error)
	LinkPhoneFunc          func(ctx context.Context, accountID uuid.UUID, phone, code string) error
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) SignupWithPassword(ctx context.Context, email, password, fullName string) (*domain.SignupResult, error) {
	if m.SignupWithPasswordFunc != nil {
		return m.SignupWithPasswordFunc(ctx, email, password, fullName)
	}
	return &domain.SignupResult{Token: "access_" + email, AccountID: uuid.New()}, nil
}

func (m *MockAuthService) LoginWithPassword(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if m.LoginWithPasswordFunc != nil {
		return m.LoginWithPasswordFunc(ctx, email, password)
	}
	return nil, domain.ErrInvalidCredentials
}

func (m *MockAuthService) SignupWithOTP(ctx context.Context, phone, fullName, code string) (*domain.AuthResult, error) {
	if m.SignupWithOTPFunc != nil {
		return m.SignupWithOTPFunc(ctx, phone, fullName, code)
	}
	return nil, domain.ErrOTPNotFound
}

func (m *MockAuthService) LoginWithOTP(ctx context.Context, phone, code string) (*domain.AuthResult, error) {
	if m.LoginWithOTPFunc != nil {
		return m.LoginWithOTPFunc(ctx, phone, code)
	}
	return nil, domain.ErrOTPNotFound
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, refreshToken)
	}
	return nil, domain.ErrTokenInvalid
}

func (m *MockAuthService) ResolveBearer(ctx context.Context, bearer string) (*domain.Account, error) {
	if m.ResolveBearerFunc != nil {
		return m.ResolveBearerFunc(ctx, bearer)
	}
	return nil, domain.ErrTokenInvalid
}

func (m *MockAuthService) LinkPhone(ctx context.Context, accountID uuid.UUID, phone, code string) error {
	if m.LinkPhoneFunc != nil {
		return m.LinkPhoneFunc(ctx, accountID, phone, code)
	}
	return nil
}

// Compile-time interface compliance verification
var (
	_ domain.NotificationService = (*MockNotificationService)(nil)
	_ domain.PasswordService     = (*MockPasswordService)(nil)
	_ domain.TokenService        = (*MockTokenService)(nil)
	_ domain.OTPService          = (*MockOTPService)(nil)
	_ domain.IdentityService     = (*MockIdentityService)(nil)
	_ domain.AuthService         = (*MockAuthService)(nil)
)
