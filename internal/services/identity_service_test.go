package services

import (
	"context"
	"errors"
	"testing"

	"github.com/morsalin101/chat-app/domain"
	"github.com/morsalin101/chat-app/internal/mocks"
)

func TestIdentityServiceImpl_FindByIdentifier(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantEmailQ  bool
		wantAccount string
	}{
		{name: "email routes to email lookup", raw: "ann@example.com", wantEmailQ: true, wantAccount: "ann@example.com"},
		{name: "phone routes to phone lookup", raw: "+15550001234", wantEmailQ: false, wantAccount: "+15550001234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accountRepo := mocks.NewMockAccountRepository()
			var emailQueried, phoneQueried bool
			accountRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.Account, error) {
				emailQueried = true
				return &domain.Account{Email: email}, nil
			}
			accountRepo.FindByPhoneFunc = func(ctx context.Context, phone string) (*domain.Account, error) {
				phoneQueried = true
				return &domain.Account{Phone: phone}, nil
			}

			svc := NewIdentityService(accountRepo)
			account, err := svc.FindByIdentifier(context.Background(), tt.raw)
			if err != nil {
				t.Fatalf("FindByIdentifier: %v", err)
			}

			if emailQueried != tt.wantEmailQ {
				t.Errorf("email lookup used = %v, want %v", emailQueried, tt.wantEmailQ)
			}
			if phoneQueried == tt.wantEmailQ {
				t.Errorf("phone lookup used = %v, want %v", phoneQueried, !tt.wantEmailQ)
			}
			got := account.Email
			if got == "" {
				got = account.Phone
			}
			if got != tt.wantAccount {
				t.Errorf("resolved %q, want %q", got, tt.wantAccount)
			}
		})
	}
}

func TestIdentityServiceImpl_FindByIdentifier_NotFound(t *testing.T) {
	svc := NewIdentityService(mocks.NewMockAccountRepository())

	if _, err := svc.FindByIdentifier(context.Background(), "ghost@example.com"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestIdentityServiceImpl_IsProfileComplete(t *testing.T) {
	svc := NewIdentityService(mocks.NewMockAccountRepository())

	tests := []struct {
		name     string
		account  *domain.Account
		expected bool
	}{
		{
			name:     "name and picture set",
			account:  &domain.Account{FullName: "Ann", ProfilePicture: "https://cdn/p.png"},
			expected: true,
		},
		{
			name:     "missing picture",
			account:  &domain.Account{FullName: "Ann"},
			expected: false,
		},
		{
			name:     "missing name",
			account:  &domain.Account{ProfilePicture: "https://cdn/p.png"},
			expected: false,
		},
		{
			name:     "empty profile",
			account:  &domain.Account{},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := svc.IsProfileComplete(tt.account); got != tt.expected {
				t.Errorf("IsProfileComplete = %v, want %v", got, tt.expected)
			}
		})
	}
}
