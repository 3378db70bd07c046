package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AccountRepository defines account data access operations
type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByPhone(ctx context.Context, phone string) (*Account, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	Update(ctx context.Context, account *Account) error
	// SetOtpVerified is the named transition flipped by OTP verify outcomes:
	// true on a correct code, false on a wrong one.
	SetOtpVerified(ctx context.Context, id uuid.UUID, verified bool) error
	SetOnline(ctx context.Context, id uuid.UUID, online bool) error
}

// ChallengeRepository persists at most one OTP challenge per phone number.
type ChallengeRepository interface {
	// Replace deletes any existing challenge for the phone and stores the
	// new one. Last writer wins on concurrent calls.
	Replace(ctx context.Context, challenge *OtpChallenge) error
	FindByPhone(ctx context.Context, phone string) (*OtpChallenge, error)
	// IncrementAttempts atomically charges one attempt and returns the new
	// count. Concurrent verifies must each be charged.
	IncrementAttempts(ctx context.Context, phone string) (int, error)
	MarkVerified(ctx context.Context, phone string) error
	Delete(ctx context.Context, phone string) error
	// DeleteExpired removes every challenge whose expiry precedes now and
	// returns how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

// AuthService is the session facade the rest of the application calls.
type AuthService interface {
	SignupWithPassword(ctx context.Context, email, password, fullName string) (*SignupResult, error)
	LoginWithPassword(ctx context.Context, email, password string) (*AuthResult, error)
	SignupWithOTP(ctx context.Context, phone, fullName, code string) (*AuthResult, error)
	LoginWithOTP(ctx context.Context, phone, code string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
	// ResolveBearer turns a raw Authorization header value into the account
	// making the request. Sole integration point for other subsystems.
	ResolveBearer(ctx context.Context, bearer string) (*Account, error)
	// LinkPhone attaches an OTP-verified phone number to an existing account.
	LinkPhone(ctx context.Context, accountID uuid.UUID, phone, code string) error
}

// OTPService owns the challenge state machine.
type OTPService interface {
	// Generate replaces any existing challenge and dispatches the code by
	// SMS. The returned code is for in-process callers only and must never
	// cross an untrusted boundary.
	Generate(ctx context.Context, phone string) (string, error)
	Verify(ctx context.Context, phone, code string) (bool, error)
	// Resend is an unconditional restart of the challenge.
	Resend(ctx context.Context, phone string) (string, error)
	// DeleteVerified consumes a verified challenge. Idempotent.
	DeleteVerified(ctx context.Context, phone string) error
	SweepExpired(ctx context.Context, now time.Time) (int, error)
}

// IdentityService resolves raw identifiers to accounts.
type IdentityService interface {
	FindByIdentifier(ctx context.Context, raw string) (*Account, error)
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByPhone(ctx context.Context, phone string) (*Account, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	// IsProfileComplete informs the caller; it never blocks authentication.
	IsProfileComplete(account *Account) bool
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines token operations
type TokenService interface {
	IssueAccessToken(identifier string) (string, error)
	IssueRefreshToken(identifier string) (string, error)
	// RenewAccessToken validates a refresh token and mints a fresh access
	// token for the identity it carries.
	RenewAccessToken(refreshToken string) (string, error)
	// DecodeIdentifier strips the bearer prefix, validates the token and
	// returns its single identity claim.
	DecodeIdentifier(bearer string) (string, error)
}

// NotificationService defines notification operations
type NotificationService interface {
	SendSMS(to, message string) error
}
