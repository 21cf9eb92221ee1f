package domain

import (
	"fmt"
	"time"
)

var (
	MessageSuccessCreateDonorProfile        = "donor profile created successfully"
	MessageSuccessCreateOrganizationProfile = "organization profile created successfully"
	MessageSuccessGetProfile                = "profile retrieved successfully"

	MessageFailedCreateDonorProfile        = "failed to create donor profile"
	MessageFailedCreateOrganizationProfile = "failed to create organization profile"
	MessageFailedGetProfile                = "failed to retrieve profile"

	ErrDonorProfileExists     = fmt.Errorf("%w: donor profile already exists", ErrConflict)
	ErrDonorNotFound          = fmt.Errorf("%w: donor not found", ErrNotFound)
	ErrOrganizationNotFound   = fmt.Errorf("%w: organization not found", ErrNotFound)
	ErrInvalidProfileField    = fmt.Errorf("%w: missing required profile field", ErrValidation)
	ErrOrganizationIDRequired = fmt.Errorf("%w: organization_id is required", ErrValidation)
	ErrDonorIDRequired        = fmt.Errorf("%w: donor_id is required", ErrValidation)
)

type (
	DonorProfileRequest struct {
		DonorID             string `json:"donor_id" validate:"required"`
		FullName            string `json:"full_name" validate:"required"`
		Email               string `json:"email" validate:"omitempty,email"`
		PhoneNumber         string `json:"phone_number" validate:"required"`
		Address             string `json:"address" validate:"required"`
		DonationPreferences string `json:"donation_preferences" validate:"required"`
	}

	OrganizationProfileRequest struct {
		OrganizationID     string `json:"organization_id" validate:"required"`
		Name               string `json:"name" validate:"required"`
		RegistrationNumber string `json:"registration_number" validate:"required"`
		Address            string `json:"address" validate:"required"`
		HeadName           string `json:"head_name" validate:"required"`
	}

	CreateProfileResponse struct {
		ProfileID string `json:"profile_id"`
		OwnerID   string `json:"owner_id"`
	}

	RecentDonation struct {
		ItemName  string `json:"item_name"`
		ItemCount int    `json:"item_count"`
		Date      string `json:"date"`
	}

	DonorProfile struct {
		ID                  string           `json:"id"`
		DonorID             string           `json:"donor_id"`
		FullName            string           `json:"full_name"`
		Email               string           `json:"email,omitempty"`
		PhoneNumber         string           `json:"phone_number"`
		Address             string           `json:"address"`
		DonationPreferences string           `json:"donation_preferences"`
		TotalDonations      int              `json:"total_donations"`
		ItemsDonated        int              `json:"items_donated"`
		LastDonation        *string          `json:"last_donation"`
		RecentDonations     []RecentDonation `json:"recent_donations"`
		CreatedAt           time.Time        `json:"created_at"`
	}

	OrganizationProfile struct {
		ID                 string    `json:"id"`
		OrganizationID     string    `json:"organization_id"`
		Name               string    `json:"name"`
		RegistrationNumber string    `json:"registration_number"`
		Address            string    `json:"address"`
		HeadName           string    `json:"head_name"`
		TotalPickups       int       `json:"total_pickups"`
		PendingPickups     int       `json:"pending_pickups"`
		CompletedToday     int       `json:"completed_today"`
		CreatedAt          time.Time `json:"created_at"`
	}
)
