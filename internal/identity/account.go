// Package identity is the email/password identity provider. It creates
// accounts and checks credentials; the session itself lives in the auth
// store.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Account is a stored credential record.
type Account struct {
	ID           uint      `gorm:"primaryKey"`
	UID          string    `gorm:"uniqueIndex;size:36;not null"`
	Email        string    `gorm:"uniqueIndex;size:254;not null"`
	PasswordHash string    `gorm:"not null"`
	DisplayName  string    `gorm:"size:60"`
	Building     string    `gorm:"size:120"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AccountRepository persists accounts. Create returns ErrEmailInUse when the
// email is already taken.
type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	GetByEmail(ctx context.Context, email string) (*Account, error)
}

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository returns a gorm-backed AccountRepository.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, account *Account) error {
	account.Email = normalizeEmail(account.Email)
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		// A concurrent sign-up can pass the email check and lose on the unique index.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailInUse
		}
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

// GetByEmail returns nil, nil when no account matches.
func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*Account, error) {
	var account Account
	err := r.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get account by email: %w", err)
	}
	return &account, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
