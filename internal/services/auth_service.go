package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/morsalin101/chat-app/domain"
)

// AuthServiceImpl implements domain.AuthService, composing the identity
// resolver, OTP engine and token issuer.
type AuthServiceImpl struct {
	accountRepo domain.AccountRepository
	identitySvc domain.IdentityService
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	otpSvc      domain.OTPService
	accessTTL   time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(
	accountRepo domain.AccountRepository,
	identitySvc domain.IdentityService,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	otpSvc domain.OTPService,
	accessTTL time.Duration,
) domain.AuthService {
	return &AuthServiceImpl{
		accountRepo: accountRepo,
		identitySvc: identitySvc,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		otpSvc:      otpSvc,
		accessTTL:   accessTTL,
	}
}

// SignupWithPassword implements domain.AuthService. The email path needs no
// OTP verification.
func (s *AuthServiceImpl) SignupWithPassword(ctx context.Context, email, password, fullName string) (*domain.SignupResult, error) {
	_, err := s.accountRepo.FindByEmail(ctx, email)
	if err == nil {
		return nil, domain.ErrAccountExists
	}
	if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}

	hashed, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &domain.Account{
		Email:        email,
		PasswordHash: hashed,
		FullName:     fullName,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	token, err := s.tokenSvc.IssueAccessToken(email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	return &domain.SignupResult{
		Token:                   token,
		AccountID:               account.ID,
		RequiresOtpVerification: false,
	}, nil
}

// LoginWithPassword implements domain.AuthService. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthServiceImpl) LoginWithPassword(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	account, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !s.passwordSvc.Verify(account.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issueFor(account, email)
}

// SignupWithOTP implements domain.AuthService. The OTP is verified before
// the duplicate-phone check, matching the challenge lifecycle: a consumed
// code is spent regardless of the signup outcome.
func (s *AuthServiceImpl) SignupWithOTP(ctx context.Context, phone, fullName, code string) (*domain.AuthResult, error) {
	if _, err := s.otpSvc.Verify(ctx, phone, code); err != nil {
		log.Printf("OTP_SIGNUP_REJECTED: phone=%s reason=%v", phone, err)
		return nil, fmt.Errorf("otp verification failed: %w", err)
	}

	_, err := s.accountRepo.FindByPhone(ctx, phone)
	if err == nil {
		return nil, domain.ErrAccountExists
	}
	if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}

	verified := true
	account := &domain.Account{
		Phone:       phone,
		FullName:    fullName,
		IsOnline:    true,
		OtpVerified: &verified,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	s.consumeChallenge(ctx, phone)

	return s.issueFor(account, phone)
}

// LoginWithOTP implements domain.AuthService
func (s *AuthServiceImpl) LoginWithOTP(ctx context.Context, phone, code string) (*domain.AuthResult, error) {
	if _, err := s.otpSvc.Verify(ctx, phone, code); err != nil {
		log.Printf("OTP_LOGIN_REJECTED: phone=%s reason=%v", phone, err)
		return nil, fmt.Errorf("otp verification failed: %w", err)
	}

	account, err := s.accountRepo.FindByPhone(ctx, phone)
	if err != nil {
		// No account for a verified phone: the caller should sign up.
		return nil, err
	}

	if err := s.accountRepo.SetOnline(ctx, account.ID, true); err != nil {
		return nil, fmt.Errorf("failed to mark account online: %w", err)
	}
	account.IsOnline = true

	s.consumeChallenge(ctx, phone)

	return s.issueFor(account, phone)
}

// Refresh implements domain.AuthService. A failed refresh is never retried;
// the caller must authenticate from scratch.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	accessToken, err := s.tokenSvc.RenewAccessToken(refreshToken)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	return &domain.AuthResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, nil
}

// ResolveBearer implements domain.AuthService
func (s *AuthServiceImpl) ResolveBearer(ctx context.Context, bearer string) (*domain.Account, error) {
	identifier, err := s.tokenSvc.DecodeIdentifier(bearer)
	if err != nil {
		return nil, err
	}
	return s.identitySvc.FindByIdentifier(ctx, identifier)
}

// LinkPhone implements domain.AuthService, attaching an OTP-verified phone
// to an existing account.
func (s *AuthServiceImpl) LinkPhone(ctx context.Context, accountID uuid.UUID, phone, code string) error {
	if _, err := s.otpSvc.Verify(ctx, phone, code); err != nil {
		return fmt.Errorf("otp verification failed: %w", err)
	}

	owner, err := s.accountRepo.FindByPhone(ctx, phone)
	if err == nil && owner.ID != accountID {
		return domain.ErrAccountExists
	}
	if err != nil && !errors.Is(err, domain.ErrAccountNotFound) {
		return err
	}

	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return err
	}

	verified := true
	account.Phone = phone
	account.OtpVerified = &verified
	return s.accountRepo.Update(ctx, account)
}

// issueFor mints both token kinds for the identifier and reports profile
// completeness.
func (s *AuthServiceImpl) issueFor(account *domain.Account, identifier string) (*domain.AuthResult, error) {
	accessToken, err := s.tokenSvc.IssueAccessToken(identifier)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	refreshToken, err := s.tokenSvc.IssueRefreshToken(identifier)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	return &domain.AuthResult{
		Account:         account,
		AccessToken:     accessToken,
		RefreshToken:    refreshToken,
		ProfileComplete: s.identitySvc.IsProfileComplete(account),
		ExpiresIn:       int64(s.accessTTL.Seconds()),
	}, nil
}

// consumeChallenge removes a verified challenge once a signup or login has
// used it. Failure only shortens the observation window, so log and move on.
func (s *AuthServiceImpl) consumeChallenge(ctx context.Context, phone string) {
	if err := s.otpSvc.DeleteVerified(ctx, phone); err != nil {
		log.Printf("OTP_CONSUME_FAILED: phone=%s error=%v", phone, err)
	}
}
