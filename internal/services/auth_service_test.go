package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/morsalin101/chat-app/domain"
	"github.com/morsalin101/chat-app/internal/mocks"
)

type authServiceMocks struct {
	accountRepo *mocks.MockAccountRepository
	identitySvc *mocks.MockIdentityService
	passwordSvc *mocks.MockPasswordService
	tokenSvc    *mocks.MockTokenService
	otpSvc      *mocks.MockOTPService
}

func newAuthServiceForTest(t *testing.T) (domain.AuthService, *authServiceMocks) {
	t.Helper()

	m := &authServiceMocks{
		accountRepo: mocks.NewMockAccountRepository(),
		identitySvc: mocks.NewMockIdentityService(),
		passwordSvc: mocks.NewMockPasswordService(),
		tokenSvc:    mocks.NewMockTokenService(),
		otpSvc:      mocks.NewMockOTPService(),
	}
	svc := NewAuthService(m.accountRepo, m.identitySvc, m.passwordSvc, m.tokenSvc, m.otpSvc, 15*time.Minute)
	return svc, m
}

func TestAuthServiceImpl_SignupWithPassword(t *testing.T) {
	svc, m := newAuthServiceForTest(t)
	ctx := context.Background()

	var created *domain.Account
	m.accountRepo.CreateFunc = func(ctx context.Context, account *domain.Account) error {
		account.ID = uuid.New()
		created = account
		return nil
	}

	result, err := svc.SignupWithPassword(ctx, "a@b.com", "pw", "Ann")
	if err != nil {
		t.Fatalf("SignupWithPassword: %v", err)
	}

	if created == nil {
		t.Fatal("expected account to be created")
	}
	if created.Email != "a@b.com" {
		t.Errorf("created email %q", created.Email)
	}
	if created.PasswordHash != "hashed_pw" {
		t.Errorf("password stored as %q, want the hash", created.PasswordHash)
	}
	if created.Phone != "" {
		t.Errorf("email signup must not set a phone, got %q", created.Phone)
	}
	if result.Token != "access_a@b.com" {
		t.Errorf("token %q", result.Token)
	}
	if result.AccountID != created.ID {
		t.Errorf("result account id %s, want %s", result.AccountID, created.ID)
	}
	if result.RequiresOtpVerification {
		t.Error("email signup must not require OTP verification")
	}
}

func TestAuthServiceImpl_SignupWithPassword_Duplicate(t *testing.T) {
	svc, m := newAuthServiceForTest(t)

	m.accountRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.Account, error) {
		return &domain.Account{ID: uuid.New(), Email: email}, nil
	}

	if _, err := svc.SignupWithPassword(context.Background(), "a@b.com", "pw2", "Bob"); !errors.Is(err, domain.ErrAccountExists) {
		t.Errorf("expected ErrAccountExists, got %v", err)
	}
}

func TestAuthServiceImpl_LoginWithPassword(t *testing.T) {
	tests := []struct {
		name          string
		setup         func(m *authServiceMocks)
		password      string
		expectedError error
		checkResult   func(t *testing.T, result *domain.AuthResult)
	}{
		{
			name: "unknown email",
			setup: func(m *authServiceMocks) {
				// default FindByEmail: not found
			},
			password:      "pw",
			expectedError: domain.ErrInvalidCredentials,
		},
		{
			name: "wrong password",
			setup: func(m *authServiceMocks) {
				m.accountRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.Account, error) {
					return &domain.Account{ID: uuid.New(), Email: email, PasswordHash: "hashed_pw"}, nil
				}
			},
			password:      "not-pw",
			expectedError: domain.ErrInvalidCredentials,
		},
		{
			name: "successful login",
			setup: func(m *authServiceMocks) {
				m.accountRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.Account, error) {
					return &domain.Account{
						ID:             uuid.New(),
						Email:          email,
						PasswordHash:   "hashed_pw",
						FullName:       "Ann",
						ProfilePicture: "https://cdn/p.png",
					}, nil
				}
			},
			password: "pw",
			checkResult: func(t *testing.T, result *domain.AuthResult) {
				if result.AccessToken != "access_a@b.com" {
					t.Errorf("access token %q", result.AccessToken)
				}
				if result.RefreshToken != "refresh_a@b.com" {
					t.Errorf("refresh token %q", result.RefreshToken)
				}
				if !result.ProfileComplete {
					t.Error("expected complete profile")
				}
				if result.ExpiresIn != 15*60 {
					t.Errorf("expires_in %d, want %d", result.ExpiresIn, 15*60)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newAuthServiceForTest(t)
			tt.setup(m)

			result, err := svc.LoginWithPassword(context.Background(), "a@b.com", tt.password)
			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Fatalf("expected %v, got %v", tt.expectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoginWithPassword: %v", err)
			}
			tt.checkResult(t, result)
		})
	}
}

func TestAuthServiceImpl_SignupWithOTP(t *testing.T) {
	svc, m := newAuthServiceForTest(t)
	ctx := context.Background()

	var created *domain.Account
	m.accountRepo.CreateFunc = func(ctx context.Context, account *domain.Account) error {
		account.ID = uuid.New()
		created = account
		return nil
	}
	var consumed []string
	m.otpSvc.DeleteVerifiedFunc = func(ctx context.Context, phone string) error {
		consumed = append(consumed, phone)
		return nil
	}

	result, err := svc.SignupWithOTP(ctx, "+15550001234", "Ann", "007421")
	if err != nil {
		t.Fatalf("SignupWithOTP: %v", err)
	}

	if created == nil {
		t.Fatal("expected account to be created")
	}
	if created.Phone != "+15550001234" {
		t.Errorf("created phone %q", created.Phone)
	}
	if !created.IsOnline {
		t.Error("OTP signup must mark the account online")
	}
	if created.OtpVerified == nil || !*created.OtpVerified {
		t.Error("OTP signup must mark the account verified")
	}
	if len(consumed) != 1 || consumed[0] != "+15550001234" {
		t.Errorf("expected challenge consumed once, got %v", consumed)
	}
	if result.AccessToken != "access_+15550001234" || result.RefreshToken != "refresh_+15550001234" {
		t.Errorf("tokens %q / %q", result.AccessToken, result.RefreshToken)
	}
	if result.ProfileComplete {
		t.Error("fresh OTP signup cannot have a complete profile")
	}
}

func TestAuthServiceImpl_SignupWithOTP_VerifyFails(t *testing.T) {
	svc, m := newAuthServiceForTest(t)

	m.otpSvc.VerifyFunc = func(ctx context.Context, phone, code string) (bool, error) {
		return false, domain.ErrOTPInvalid
	}
	var createCalled bool
	m.accountRepo.CreateFunc = func(ctx context.Context, account *domain.Account) error {
		createCalled = true
		return nil
	}

	_, err := svc.SignupWithOTP(context.Background(), "+15550001234", "Ann", "999999")
	if !errors.Is(err, domain.ErrOTPInvalid) {
		t.Fatalf("expected wrapped ErrOTPInvalid, got %v", err)
	}
	if createCalled {
		t.Error("no account may be created when verification fails")
	}
}

func TestAuthServiceImpl_SignupWithOTP_DuplicatePhone(t *testing.T) {
	svc, m := newAuthServiceForTest(t)

	m.accountRepo.FindByPhoneFunc = func(ctx context.Context, phone string) (*domain.Account, error) {
		return &domain.Account{ID: uuid.New(), Phone: phone}, nil
	}

	if _, err := svc.SignupWithOTP(context.Background(), "+15550001234", "Ann", "007421"); !errors.Is(err, domain.ErrAccountExists) {
		t.Errorf("expected ErrAccountExists, got %v", err)
	}
}

func TestAuthServiceImpl_LoginWithOTP(t *testing.T) {
	svc, m := newAuthServiceForTest(t)
	ctx := context.Background()

	accountID := uuid.New()
	m.accountRepo.FindByPhoneFunc = func(ctx context.Context, phone string) (*domain.Account, error) {
		return &domain.Account{ID: accountID, Phone: phone, FullName: "Ann"}, nil
	}
	var markedOnline bool
	m.accountRepo.SetOnlineFunc = func(ctx context.Context, id uuid.UUID, online bool) error {
		if id != accountID {
			t.Errorf("marked %s online, want %s", id, accountID)
		}
		markedOnline = online
		return nil
	}
	var consumed bool
	m.otpSvc.DeleteVerifiedFunc = func(ctx context.Context, phone string) error {
		consumed = true
		return nil
	}

	result, err := svc.LoginWithOTP(ctx, "+15550001234", "007421")
	if err != nil {
		t.Fatalf("LoginWithOTP: %v", err)
	}
	if !markedOnline {
		t.Error("expected account to be marked online")
	}
	if !consumed {
		t.Error("expected challenge to be consumed")
	}
	if result.ProfileComplete {
		t.Error("profile without a picture is incomplete")
	}
}

func TestAuthServiceImpl_LoginWithOTP_NoAccount(t *testing.T) {
	// Even a correct, unexpired code cannot log in a phone with no account.
	svc, _ := newAuthServiceForTest(t)

	_, err := svc.LoginWithOTP(context.Background(), "+15550001234", "007421")
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAuthServiceImpl_Refresh(t *testing.T) {
	svc, m := newAuthServiceForTest(t)

	m.tokenSvc.RenewAccessTokenFunc = func(refreshToken string) (string, error) {
		if refreshToken != "refresh_a@b.com" {
			t.Errorf("renewing %q", refreshToken)
		}
		return "fresh_access", nil
	}

	result, err := svc.Refresh(context.Background(), "refresh_a@b.com")
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if result.AccessToken != "fresh_access" {
		t.Errorf("access token %q", result.AccessToken)
	}
	if result.RefreshToken != "refresh_a@b.com" {
		t.Errorf("refresh token must be returned unchanged, got %q", result.RefreshToken)
	}
}

func TestAuthServiceImpl_Refresh_InvalidToken(t *testing.T) {
	svc, m := newAuthServiceForTest(t)

	m.tokenSvc.RenewAccessTokenFunc = func(refreshToken string) (string, error) {
		return "", domain.ErrTokenExpired
	}

	if _, err := svc.Refresh(context.Background(), "stale"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestAuthServiceImpl_ResolveBearer(t *testing.T) {
	svc, m := newAuthServiceForTest(t)

	m.tokenSvc.DecodeIdentifierFunc = func(bearer string) (string, error) {
		return "ann@example.com", nil
	}
	accountID := uuid.New()
	m.identitySvc.FindByIdentifierFunc = func(ctx context.Context, raw string) (*domain.Account, error) {
		if raw != "ann@example.com" {
			t.Errorf("resolving %q", raw)
		}
		return &domain.Account{ID: accountID, Email: raw}, nil
	}

	account, err := svc.ResolveBearer(context.Background(), "Bearer some-token")
	if err != nil {
		t.Fatalf("ResolveBearer: %v", err)
	}
	if account.ID != accountID {
		t.Errorf("resolved account %s, want %s", account.ID, accountID)
	}
}

func TestAuthServiceImpl_ResolveBearer_InvalidToken(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)

	if _, err := svc.ResolveBearer(context.Background(), "Bearer garbage"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestAuthServiceImpl_LinkPhone(t *testing.T) {
	svc, m := newAuthServiceForTest(t)
	ctx := context.Background()

	accountID := uuid.New()
	m.accountRepo.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
		return &domain.Account{ID: id, Email: "ann@example.com"}, nil
	}
	var updated *domain.Account
	m.accountRepo.UpdateFunc = func(ctx context.Context, account *domain.Account) error {
		updated = account
		return nil
	}

	if err := svc.LinkPhone(ctx, accountID, "+15550001234", "007421"); err != nil {
		t.Fatalf("LinkPhone: %v", err)
	}
	if updated == nil {
		t.Fatal("expected account update")
	}
	if updated.Phone != "+15550001234" {
		t.Errorf("linked phone %q", updated.Phone)
	}
	if updated.OtpVerified == nil || !*updated.OtpVerified {
		t.Error("linking must mark the phone verified")
	}
}

func TestAuthServiceImpl_LinkPhone_PhoneTaken(t *testing.T) {
	svc, m := newAuthServiceForTest(t)

	m.accountRepo.FindByPhoneFunc = func(ctx context.Context, phone string) (*domain.Account, error) {
		return &domain.Account{ID: uuid.New(), Phone: phone}, nil
	}

	err := svc.LinkPhone(context.Background(), uuid.New(), "+15550001234", "007421")
	if !errors.Is(err, domain.ErrAccountExists) {
		t.Errorf("expected ErrAccountExists, got %v", err)
	}
}
