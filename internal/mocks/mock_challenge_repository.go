package mocks

import (
	"context"
	"time"

	"github.com/morsalin101/chat-app/domain"
)

// MockChallengeRepository implements domain.ChallengeRepository interface for testing
type MockChallengeRepository struct {
	ReplaceFunc           func(ctx context.Context, challenge *domain.OtpChallenge) error
	FindByPhoneFunc       func(ctx context.Context, phone string) (*domain.OtpChallenge, error)
	IncrementAttemptsFunc func(ctx context.Context, phone string) (int, error)
	MarkVerifiedFunc      func(ctx context.Context, phone string) error
	DeleteFunc            func(ctx context.Context, phone string) error
	DeleteExpiredFunc     func(ctx context.Context, now time.Time) (int, error)
}

// NewMockChallengeRepository creates a new MockChallengeRepository with default behaviors
func NewMockChallengeRepository() *MockChallengeRepository {
	return &MockChallengeRepository{}
}

// Replace stores a fresh challenge
func (m *MockChallengeRepository) Replace(ctx context.Context, challenge *domain.OtpChallenge) error {
	if m.ReplaceFunc != nil {
		return m.ReplaceFunc(ctx, challenge)
	}
	// Default behavior: success
	return nil
}

// FindByPhone finds the live challenge for a phone
func (m *MockChallengeRepository) FindByPhone(ctx context.Context, phone string) (*domain.OtpChallenge, error) {
	if m.FindByPhoneFunc != nil {
		return m.FindByPhoneFunc(ctx, phone)
	}
	// Default behavior: not found
	return nil, domain.ErrOTPNotFound
}

// IncrementAttempts charges one attempt
func (m *MockChallengeRepository) IncrementAttempts(ctx context.Context, phone string) (int, error) {
	if m.IncrementAttemptsFunc != nil {
		return m.IncrementAttemptsFunc(ctx, phone)
	}
	// Default behavior: first attempt
	return 1, nil
}

// MarkVerified marks the challenge verified
func (m *MockChallengeRepository) MarkVerified(ctx context.Context, phone string) error {
	if m.MarkVerifiedFunc != nil {
		return m.MarkVerifiedFunc(ctx, phone)
	}
	// Default behavior: success
	return nil
}

// Delete removes the challenge
func (m *MockChallengeRepository) Delete(ctx context.Context, phone string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, phone)
	}
	// Default behavior: success
	return nil
}

// DeleteExpired removes expired challenges
func (m *MockChallengeRepository) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	if m.DeleteExpiredFunc != nil {
		return m.DeleteExpiredFunc(ctx, now)
	}
	// Default behavior: nothing to delete
	return 0, nil
}

// Compile-time interface compliance verification
var _ domain.ChallengeRepository = (*MockChallengeRepository)(nil)
