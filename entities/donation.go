package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DonationFields is shared by every store a donation record can live in.
type DonationFields struct {
	DonorID     string `gorm:"not null;index" json:"donor_id"`
	Condition   string `json:"condition"`
	ItemCount   int    `gorm:"not null;default:0" json:"item_count"`
	Date        string `json:"date"`
	Notes       string `gorm:"type:text" json:"notes"`
	Image       string `gorm:"type:text" json:"image,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	Description string `gorm:"type:text" json:"description"`
	ItemName    string `json:"item_name"`
}

type PendingDonation struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	DonationFields
	Timestamp
}

func (d *PendingDonation) BeforeCreate(tx *gorm.DB) error {
	newID(&d.ID)
	return nil
}

type AcceptedRequest struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	DonationID     uuid.UUID `gorm:"type:uuid;index" json:"donation_id"`
	OrganizationID string    `gorm:"not null;index" json:"organization_id"`
	Status         string    `gorm:"not null" json:"status"` // accepted
	MovedAt        time.Time `gorm:"type:timestamp" json:"moved_at"`
	DonationFields
	Timestamp
}

func (r *AcceptedRequest) BeforeCreate(tx *gorm.DB) error {
	newID(&r.ID)
	return nil
}

type DeclinedRequest struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	DonationID     uuid.UUID `gorm:"type:uuid;index" json:"donation_id"`
	OrganizationID string    `gorm:"not null;index" json:"organization_id"`
	Status         string    `gorm:"not null" json:"status"` // declined
	MovedAt        time.Time `gorm:"type:timestamp" json:"moved_at"`
	DonationFields
	Timestamp
}

func (r *DeclinedRequest) BeforeCreate(tx *gorm.DB) error {
	newID(&r.ID)
	return nil
}

type PickupSchedule struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	DonorID        string    `gorm:"not null;index" json:"donor_id"`
	OrganizationID string    `gorm:"not null;index" json:"organization_id"`
	PickupDate     string    `json:"pickup_date"`
	PickupTime     string    `json:"pickup_time"`
	Status         string    `gorm:"not null" json:"status"`
	CreatedAt      time.Time `gorm:"type:timestamp" json:"created_at"`
}

func (p *PickupSchedule) BeforeCreate(tx *gorm.DB) error {
	newID(&p.ID)
	return nil
}
