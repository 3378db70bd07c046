package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/morsalin101/chat-app/domain"
)

// MockAccountRepository implements domain.AccountRepository interface for testing
type MockAccountRepository struct {
	CreateFunc         func(ctx context.Context, account *domain.Account) error
	FindByEmailFunc    func(ctx context.Context, email string) (*domain.Account, error)
	FindByPhoneFunc    func(ctx context.Context, phone string) (*domain.Account, error)
	FindByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	UpdateFunc         func(ctx context.Context, account *domain.Account) error
	SetOtpVerifiedFunc func(ctx context.Context, id uuid.UUID, verified bool) error
	SetOnlineFunc      func(ctx context.Context, id uuid.UUID, online bool) error
}

// NewMockAccountRepository creates a new MockAccountRepository with default behaviors
func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{}
}

// Create creates a new account
func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	// Default behavior: success, assigning an ID like the real store
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	return nil
}

// FindByEmail finds an account by email
func (m *MockAccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	// Default behavior: not found
	return nil, domain.ErrAccountNotFound
}

// FindByPhone finds an account by phone number
func (m *MockAccountRepository) FindByPhone(ctx context.Context, phone string) (*domain.Account, error) {
	if m.FindByPhoneFunc != nil {
		return m.FindByPhoneFunc(ctx, phone)
	}
	// Default behavior: not found
	return nil, domain.ErrAccountNotFound
}

// FindByID finds an account by ID
func (m *MockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrAccountNotFound
}

// Update updates an existing account
func (m *MockAccountRepository) Update(ctx context.Context, account *domain.Account) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, account)
	}
	// Default behavior: success
	return nil
}

// SetOtpVerified flips the account's verification flag
func (m *MockAccountRepository) SetOtpVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	if m.SetOtpVerifiedFunc != nil {
		return m.SetOtpVerifiedFunc(ctx, id, verified)
	}
	// Default behavior: success
	return nil
}

// SetOnline flips the account's online flag
func (m *MockAccountRepository) SetOnline(ctx context.Context, id uuid.UUID, online bool) error {
	if m.SetOnlineFunc != nil {
		return m.SetOnlineFunc(ctx, id, online)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.AccountRepository = (*MockAccountRepository)(nil)
