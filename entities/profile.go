package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecentDonation struct {
	ItemName  string `json:"item_name"`
	ItemCount int    `json:"item_count"`
	Date      string `json:"date"`
}

type DonorProfile struct {
	ID                  uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	DonorID             string           `gorm:"not null;uniqueIndex" json:"donor_id"`
	FullName            string           `json:"full_name"`
	Email               string           `json:"email,omitempty"`
	PhoneNumber         string           `json:"phone_number"`
	Address             string           `json:"address"`
	DonationPreferences string           `json:"donation_preferences"`
	TotalDonations      int              `gorm:"not null;default:0" json:"total_donations"`
	ItemsDonated        int              `gorm:"not null;default:0" json:"items_donated"`
	LastDonation        *string          `json:"last_donation"`
	ImpactScore         int              `gorm:"not null;default:0" json:"impact_score"`
	RecentDonations     []RecentDonation `gorm:"type:text;serializer:json" json:"recent_donations"`

	Timestamp
}

func (p *DonorProfile) BeforeCreate(tx *gorm.DB) error {
	newID(&p.ID)
	return nil
}

// OrganizationProfile has no unique constraint on OrganizationID: profile
// creation never rejected a second profile for the same organization.
type OrganizationProfile struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrganizationID     string    `gorm:"not null;index" json:"organization_id"`
	Name               string    `json:"name"`
	RegistrationNumber string    `json:"registration_number"`
	Address            string    `json:"address"`
	HeadName           string    `json:"head_name"`
	TotalPickups       int       `gorm:"not null;default:0" json:"total_pickups"`
	PendingPickups     int       `gorm:"not null;default:0" json:"pending_pickups"`
	CompletedToday     int       `gorm:"not null;default:0" json:"completed_today"`

	Timestamp
}

func (p *OrganizationProfile) BeforeCreate(tx *gorm.DB) error {
	newID(&p.ID)
	return nil
}
