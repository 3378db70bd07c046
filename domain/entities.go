package domain

import (
	"time"

	"github.com/google/uuid"
)

// Account represents one user identity. Email accounts authenticate with a
// password, phone accounts with an OTP; every account has at least one of
// the two identifiers set.
type Account struct {
	ID             uuid.UUID
	Email          string
	Phone          string
	PasswordHash   string
	FullName       string
	ProfilePicture string
	IsOnline       bool
	// OtpVerified is tri-state: nil means the phone was never challenged,
	// true/false track the outcome of the most recent verify attempt.
	OtpVerified *bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OtpChallenge is the live verification record for one phone number.
// At most one challenge exists per phone at any time; expiry is fixed at
// creation and never extended.
type OtpChallenge struct {
	Phone     string
	Code      string
	CreatedAt time.Time
	ExpiresAt time.Time
	Verified  bool
	Attempts  int
}

// Expired reports whether the challenge is past its fixed expiry.
func (c *OtpChallenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// SignupResult is the outcome of a password signup.
type SignupResult struct {
	Token                   string
	AccountID               uuid.UUID
	RequiresOtpVerification bool
}

// AuthResult is the outcome of a login or refresh.
type AuthResult struct {
	Account         *Account
	AccessToken     string
	RefreshToken    string
	ProfileComplete bool
	ExpiresIn       int64
}
