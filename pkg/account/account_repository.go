package account

import (
	"Donation-Hub/entities"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	AccountRepository interface {
		CreateAccount(ctx context.Context, account *entities.Account) error
		GetAccountByEmail(ctx context.Context, email string, kind string) (*entities.Account, error)
		GetAccountByID(ctx context.Context, id string) (*entities.Account, error)
	}

	accountRepository struct {
		db *gorm.DB
	}
)

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) CreateAccount(ctx context.Context, account *entities.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *accountRepository) GetAccountByEmail(ctx context.Context, email string, kind string) (*entities.Account, error) {
	var account entities.Account
	if err := r.db.WithContext(ctx).
		Where("email = ? AND kind = ?", email, kind).
		First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) GetAccountByID(ctx context.Context, id string) (*entities.Account, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, gorm.ErrRecordNotFound
	}

	var account entities.Account
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}
