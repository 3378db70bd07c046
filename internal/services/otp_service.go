package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/morsalin101/chat-app/domain"
)

// CodeLength is fixed: codes are always exactly six decimal digits,
// left-zero-padded, drawn uniformly from 000000..999999.
const CodeLength = 6

var codeSpace = big.NewInt(1_000_000)

// OTPServiceImpl implements domain.OTPService over the challenge store.
type OTPServiceImpl struct {
	challengeRepo   domain.ChallengeRepository
	accountRepo     domain.AccountRepository
	notificationSvc domain.NotificationService
	config          OTPConfig
}

type OTPConfig struct {
	TTL         time.Duration
	MaxAttempts int
}

// NewOTPService creates a new OTP service
func NewOTPService(challengeRepo domain.ChallengeRepository, accountRepo domain.AccountRepository, notificationSvc domain.NotificationService, config OTPConfig) domain.OTPService {
	return &OTPServiceImpl{
		challengeRepo:   challengeRepo,
		accountRepo:     accountRepo,
		notificationSvc: notificationSvc,
		config:          config,
	}
}

// Generate implements domain.OTPService. Any existing challenge for the
// phone is replaced; expiry is fixed at creation and never extended.
func (s *OTPServiceImpl) Generate(ctx context.Context, phone string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", fmt.Errorf("failed to generate otp code: %w", err)
	}

	now := time.Now()
	challenge := &domain.OtpChallenge{
		Phone:     phone,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(s.config.TTL),
		Verified:  false,
		Attempts:  0,
	}

	if err := s.challengeRepo.Replace(ctx, challenge); err != nil {
		return "", err
	}

	// Dispatch is fire-and-forget: a failed send is logged, never surfaced.
	// The challenge stays live and can be resent.
	message := fmt.Sprintf("Your verification code is: %s. Valid for %d minutes.", code, int(s.config.TTL.Minutes()))
	if err := s.notificationSvc.SendSMS(phone, message); err != nil {
		log.Printf("OTP_SMS_FAILED: phone=%s error=%v", phone, err)
	}

	return code, nil
}

// Verify implements domain.OTPService. Order matters: missing, expired and
// over-attempted challenges are rejected before the attempt is charged;
// expiry and throttle rejections delete the row (fail closed).
func (s *OTPServiceImpl) Verify(ctx context.Context, phone, code string) (bool, error) {
	challenge, err := s.challengeRepo.FindByPhone(ctx, phone)
	if err != nil {
		return false, err
	}

	if challenge.Expired(time.Now()) {
		if err := s.challengeRepo.Delete(ctx, phone); err != nil {
			return false, err
		}
		return false, domain.ErrOTPExpired
	}

	if challenge.Attempts >= s.config.MaxAttempts {
		if err := s.challengeRepo.Delete(ctx, phone); err != nil {
			return false, err
		}
		return false, domain.ErrOTPMaxAttempts
	}

	// Charged even when the code turns out to match.
	if _, err := s.challengeRepo.IncrementAttempts(ctx, phone); err != nil {
		return false, err
	}

	if challenge.Code != code {
		// A wrong guess revokes a previously verified phone. Deliberate
		// source policy, kept as the named SetOtpVerified transition.
		s.setAccountVerified(ctx, phone, false)
		return false, domain.ErrOTPInvalid
	}

	if err := s.challengeRepo.MarkVerified(ctx, phone); err != nil {
		return false, err
	}
	s.setAccountVerified(ctx, phone, true)

	// The verified row persists until DeleteVerified so an immediate
	// follow-up consumer can still observe it.
	return true, nil
}

// Resend implements domain.OTPService. Unconditional restart: no prior
// challenge is required and no cooldown applies.
func (s *OTPServiceImpl) Resend(ctx context.Context, phone string) (string, error) {
	return s.Generate(ctx, phone)
}

// DeleteVerified implements domain.OTPService
func (s *OTPServiceImpl) DeleteVerified(ctx context.Context, phone string) error {
	return s.challengeRepo.Delete(ctx, phone)
}

// SweepExpired implements domain.OTPService
func (s *OTPServiceImpl) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	deleted, err := s.challengeRepo.DeleteExpired(ctx, now)
	if err != nil {
		return deleted, err
	}
	if deleted > 0 {
		log.Printf("OTP_SWEEP: deleted=%d", deleted)
	}
	return deleted, nil
}

// setAccountVerified flips the account's verification flag when an account
// holds the challenged phone. No account is a valid state, not an error.
func (s *OTPServiceImpl) setAccountVerified(ctx context.Context, phone string, verified bool) {
	account, err := s.accountRepo.FindByPhone(ctx, phone)
	if err != nil {
		if !errors.Is(err, domain.ErrAccountNotFound) {
			log.Printf("OTP_ACCOUNT_LOOKUP_FAILED: phone=%s error=%v", phone, err)
		}
		return
	}
	if err := s.accountRepo.SetOtpVerified(ctx, account.ID, verified); err != nil {
		log.Printf("OTP_VERIFIED_FLAG_FAILED: account=%s verified=%t error=%v", account.ID, verified, err)
	}
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
