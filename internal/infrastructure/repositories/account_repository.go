package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/morsalin101/chat-app/domain"
	"gorm.io/gorm"
)

// AccountRepositoryImpl implements domain.AccountRepository using GORM
type AccountRepositoryImpl struct {
	db *gorm.DB
}

// DBAccount represents the database model for Account (with GORM tags)
type DBAccount struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email          *string   `gorm:"uniqueIndex;size:255"`
	Phone          *string   `gorm:"uniqueIndex;size:32"`
	PasswordHash   string    `gorm:"column:password"`
	FullName       string    `gorm:"size:255"`
	ProfilePicture string    `gorm:"size:1024"`
	IsOnline       bool      `gorm:"index"`
	OtpVerified    *bool
	CreatedAt      time.Time      `gorm:"index"`
	UpdatedAt      time.Time      `gorm:"index"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBAccount) TableName() string {
	return "accounts"
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) domain.AccountRepository {
	return &AccountRepositoryImpl{db: db}
}

// Create implements domain.AccountRepository
func (r *AccountRepositoryImpl) Create(ctx context.Context, account *domain.Account) error {
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	dbAccount := r.domainToDB(account)
	if err := r.db.WithContext(ctx).Create(dbAccount).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrAccountExists
		}
		return err
	}
	return nil
}

// FindByEmail implements domain.AccountRepository
func (r *AccountRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.findOne(ctx, "email = ?", email)
}

// FindByPhone implements domain.AccountRepository
func (r *AccountRepositoryImpl) FindByPhone(ctx context.Context, phone string) (*domain.Account, error) {
	return r.findOne(ctx, "phone = ?", phone)
}

// FindByID implements domain.AccountRepository
func (r *AccountRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *AccountRepositoryImpl) findOne(ctx context.Context, query string, arg interface{}) (*domain.Account, error) {
	var dbAccount DBAccount
	err := r.db.WithContext(ctx).Where(query, arg).First(&dbAccount).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbAccount), nil
}

// Update implements domain.AccountRepository
func (r *AccountRepositoryImpl) Update(ctx context.Context, account *domain.Account) error {
	dbAccount := r.domainToDB(account)
	return r.db.WithContext(ctx).Save(dbAccount).Error
}

// SetOtpVerified implements domain.AccountRepository. This is the named
// transition driven by OTP verify outcomes: a correct code sets true, a
// wrong one sets false.
func (r *AccountRepositoryImpl) SetOtpVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	return r.db.WithContext(ctx).Model(&DBAccount{}).Where("id = ?", id).Update("otp_verified", verified).Error
}

// SetOnline implements domain.AccountRepository
func (r *AccountRepositoryImpl) SetOnline(ctx context.Context, id uuid.UUID, online bool) error {
	return r.db.WithContext(ctx).Model(&DBAccount{}).Where("id = ?", id).Update("is_online", online).Error
}

// domainToDB converts domain account to database account. Empty identifiers
// are stored as NULL so the unique indexes ignore them.
func (r *AccountRepositoryImpl) domainToDB(account *domain.Account) *DBAccount {
	dbAccount := &DBAccount{
		ID:             account.ID,
		PasswordHash:   account.PasswordHash,
		FullName:       account.FullName,
		ProfilePicture: account.ProfilePicture,
		IsOnline:       account.IsOnline,
		OtpVerified:    account.OtpVerified,
	}
	if account.Email != "" {
		email := account.Email
		dbAccount.Email = &email
	}
	if account.Phone != "" {
		phone := account.Phone
		dbAccount.Phone = &phone
	}
	return dbAccount
}

// dbToDomain converts database account to domain account
func (r *AccountRepositoryImpl) dbToDomain(dbAccount *DBAccount) *domain.Account {
	account := &domain.Account{
		ID:             dbAccount.ID,
		PasswordHash:   dbAccount.PasswordHash,
		FullName:       dbAccount.FullName,
		ProfilePicture: dbAccount.ProfilePicture,
		IsOnline:       dbAccount.IsOnline,
		OtpVerified:    dbAccount.OtpVerified,
		CreatedAt:      dbAccount.CreatedAt,
		UpdatedAt:      dbAccount.UpdatedAt,
	}
	if dbAccount.Email != nil {
		account.Email = *dbAccount.Email
	}
	if dbAccount.Phone != nil {
		account.Phone = *dbAccount.Phone
	}
	return account
}
