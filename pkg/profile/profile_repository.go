package profile

import (
	"Donation-Hub/entities"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ProfileRepository interface {
		CreateDonorProfile(ctx context.Context, profile *entities.DonorProfile) error
		GetDonorProfileByDonorID(ctx context.Context, donorID string) (*entities.DonorProfile, error)
		GetDonorProfilesByDonorIDs(ctx context.Context, donorIDs []string) ([]*entities.DonorProfile, error)
		GetLeaderboard(ctx context.Context) ([]*entities.DonorProfile, error)

		CreateOrganizationProfile(ctx context.Context, profile *entities.OrganizationProfile) error
		GetOrganizationProfileByOrgID(ctx context.Context, organizationID string) (*entities.OrganizationProfile, error)
	}

	profileRepository struct {
		db *gorm.DB
	}
)

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// CreateDonorProfile inserts the profile and flags the owning account in
// one transaction, so details_complete never disagrees with the profile.
func (r *profileRepository) CreateDonorProfile(ctx context.Context, profile *entities.DonorProfile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(profile).Error; err != nil {
			return err
		}
		return markDetailsComplete(tx, profile.DonorID)
	})
}

func (r *profileRepository) GetDonorProfileByDonorID(ctx context.Context, donorID string) (*entities.DonorProfile, error) {
	var profile entities.DonorProfile
	if err := r.db.WithContext(ctx).Where("donor_id = ?", donorID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) GetDonorProfilesByDonorIDs(ctx context.Context, donorIDs []string) ([]*entities.DonorProfile, error) {
	var profiles []*entities.DonorProfile
	if err := r.db.WithContext(ctx).
		Where("donor_id IN ?", donorIDs).
		Order("created_at ASC").
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *profileRepository) GetLeaderboard(ctx context.Context) ([]*entities.DonorProfile, error) {
	var profiles []*entities.DonorProfile
	if err := r.db.WithContext(ctx).
		Select("donor_id", "full_name", "items_donated").
		Order("items_donated DESC").
		Order("full_name ASC").
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *profileRepository) CreateOrganizationProfile(ctx context.Context, profile *entities.OrganizationProfile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(profile).Error; err != nil {
			return err
		}
		return markDetailsComplete(tx, profile.OrganizationID)
	})
}

// GetOrganizationProfileByOrgID returns the oldest profile when an
// organization has created more than one.
func (r *profileRepository) GetOrganizationProfileByOrgID(ctx context.Context, organizationID string) (*entities.OrganizationProfile, error) {
	var profile entities.OrganizationProfile
	if err := r.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Order("created_at ASC").
		First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// markDetailsComplete skips ids that cannot name an account; profiles carry
// denormalized ids that are not checked against the accounts table.
func markDetailsComplete(tx *gorm.DB, accountID string) error {
	if _, err := uuid.Parse(accountID); err != nil {
		return nil
	}
	return tx.Model(&entities.Account{}).
		Where("id = ?", accountID).
		Update("details_complete", true).Error
}
