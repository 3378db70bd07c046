package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/morsalin101/chat-app/domain"
)

// IdentityServiceImpl implements domain.IdentityService
type IdentityServiceImpl struct {
	accountRepo domain.AccountRepository
}

// NewIdentityService creates a new identity service
func NewIdentityService(accountRepo domain.AccountRepository) domain.IdentityService {
	return &IdentityServiceImpl{accountRepo: accountRepo}
}

// FindByIdentifier implements domain.IdentityService, routing the lookup on
// the identifier's shape.
func (s *IdentityServiceImpl) FindByIdentifier(ctx context.Context, raw string) (*domain.Account, error) {
	if domain.ClassifyIdentifier(raw) == domain.IdentifierEmail {
		return s.accountRepo.FindByEmail(ctx, raw)
	}
	return s.accountRepo.FindByPhone(ctx, raw)
}

// FindByEmail implements domain.IdentityService
func (s *IdentityServiceImpl) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return s.accountRepo.FindByEmail(ctx, email)
}

// FindByPhone implements domain.IdentityService
func (s *IdentityServiceImpl) FindByPhone(ctx context.Context, phone string) (*domain.Account, error) {
	return s.accountRepo.FindByPhone(ctx, phone)
}

// FindByID implements domain.IdentityService
func (s *IdentityServiceImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	return s.accountRepo.FindByID(ctx, id)
}

// IsProfileComplete implements domain.IdentityService
func (s *IdentityServiceImpl) IsProfileComplete(account *domain.Account) bool {
	return account.FullName != "" && account.ProfilePicture != ""
}
