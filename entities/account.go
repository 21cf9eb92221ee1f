package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Account struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email           string    `gorm:"not null;uniqueIndex:idx_accounts_email_kind" json:"email"`
	Password        string    `gorm:"not null" json:"-"`
	Kind            string    `gorm:"not null;uniqueIndex:idx_accounts_email_kind" json:"kind"` // donor, organization
	DetailsComplete bool      `gorm:"not null;default:false" json:"details_complete"`

	Timestamp
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	newID(&a.ID)
	return nil
}
