package profile

import (
	"Donation-Hub/domain"
	"Donation-Hub/entities"
	"Donation-Hub/internal/utils"
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

type (
	ProfileService interface {
		CreateDonorProfile(ctx context.Context, req domain.DonorProfileRequest) (domain.CreateProfileResponse, error)
		CreateOrganizationProfile(ctx context.Context, req domain.OrganizationProfileRequest) (domain.CreateProfileResponse, error)
		GetDonorProfile(ctx context.Context, donorID string) (*domain.DonorProfile, error)
		GetOrganizationProfile(ctx context.Context, organizationID string) (*domain.OrganizationProfile, error)
	}

	profileService struct {
		profileRepository ProfileRepository
		validator         *validator.Validate
	}
)

func NewProfileService(profileRepository ProfileRepository, validator *validator.Validate) ProfileService {
	return &profileService{
		profileRepository: profileRepository,
		validator:         validator,
	}
}

func (s *profileService) CreateDonorProfile(ctx context.Context, req domain.DonorProfileRequest) (domain.CreateProfileResponse, error) {
	req.DonorID = strings.TrimSpace(req.DonorID)
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)
	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	req.Address = strings.TrimSpace(req.Address)
	req.DonationPreferences = strings.TrimSpace(req.DonationPreferences)

	if err := utils.ValidateStruct(s.validator, req, domain.ErrInvalidProfileField); err != nil {
		return domain.CreateProfileResponse{}, err
	}

	_, err := s.profileRepository.GetDonorProfileByDonorID(ctx, req.DonorID)
	if err == nil {
		return domain.CreateProfileResponse{}, domain.ErrDonorProfileExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.CreateProfileResponse{}, err
	}

	profile := &entities.DonorProfile{
		DonorID:             req.DonorID,
		FullName:            req.FullName,
		Email:               req.Email,
		PhoneNumber:         req.PhoneNumber,
		Address:             req.Address,
		DonationPreferences: req.DonationPreferences,
		RecentDonations:     []entities.RecentDonation{},
	}
	if err := s.profileRepository.CreateDonorProfile(ctx, profile); err != nil {
		// donor_id is unique, so a concurrent create lands here
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(strings.ToLower(err.Error()), "unique") {
			return domain.CreateProfileResponse{}, domain.ErrDonorProfileExists
		}
		return domain.CreateProfileResponse{}, err
	}

	return domain.CreateProfileResponse{
		ProfileID: profile.ID.String(),
		OwnerID:   profile.DonorID,
	}, nil
}

func (s *profileService) CreateOrganizationProfile(ctx context.Context, req domain.OrganizationProfileRequest) (domain.CreateProfileResponse, error) {
	req.OrganizationID = strings.TrimSpace(req.OrganizationID)
	req.Name = strings.TrimSpace(req.Name)
	req.RegistrationNumber = strings.TrimSpace(req.RegistrationNumber)
	req.Address = strings.TrimSpace(req.Address)
	req.HeadName = strings.TrimSpace(req.HeadName)

	if err := utils.ValidateStruct(s.validator, req, domain.ErrInvalidProfileField); err != nil {
		return domain.CreateProfileResponse{}, err
	}

	// No duplicate check: a second profile for the same organization is
	// stored alongside the first and reads keep returning the oldest one.
	profile := &entities.OrganizationProfile{
		OrganizationID:     req.OrganizationID,
		Name:               req.Name,
		RegistrationNumber: req.RegistrationNumber,
		Address:            req.Address,
		HeadName:           req.HeadName,
	}
	if err := s.profileRepository.CreateOrganizationProfile(ctx, profile); err != nil {
		return domain.CreateProfileResponse{}, err
	}

	return domain.CreateProfileResponse{
		ProfileID: profile.ID.String(),
		OwnerID:   profile.OrganizationID,
	}, nil
}

func (s *profileService) GetDonorProfile(ctx context.Context, donorID string) (*domain.DonorProfile, error) {
	if strings.TrimSpace(donorID) == "" {
		return nil, domain.ErrDonorIDRequired
	}

	profile, err := s.profileRepository.GetDonorProfileByDonorID(ctx, donorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDonorNotFound
		}
		return nil, err
	}
	return ToDonorProfile(profile), nil
}

func (s *profileService) GetOrganizationProfile(ctx context.Context, organizationID string) (*domain.OrganizationProfile, error) {
	if strings.TrimSpace(organizationID) == "" {
		return nil, domain.ErrOrganizationIDRequired
	}

	profile, err := s.profileRepository.GetOrganizationProfileByOrgID(ctx, organizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrganizationNotFound
		}
		return nil, err
	}

	return &domain.OrganizationProfile{
		ID:                 profile.ID.String(),
		OrganizationID:     profile.OrganizationID,
		Name:               profile.Name,
		RegistrationNumber: profile.RegistrationNumber,
		Address:            profile.Address,
		HeadName:           profile.HeadName,
		TotalPickups:       profile.TotalPickups,
		PendingPickups:     profile.PendingPickups,
		CompletedToday:     profile.CompletedToday,
		CreatedAt:          profile.CreatedAt,
	}, nil
}

func ToDonorProfile(profile *entities.DonorProfile) *domain.DonorProfile {
	return &domain.DonorProfile{
		ID:                  profile.ID.String(),
		DonorID:             profile.DonorID,
		FullName:            profile.FullName,
		Email:               profile.Email,
		PhoneNumber:         profile.PhoneNumber,
		Address:             profile.Address,
		DonationPreferences: profile.DonationPreferences,
		TotalDonations:      profile.TotalDonations,
		ItemsDonated:        profile.ItemsDonated,
		LastDonation:        profile.LastDonation,
		RecentDonations:     ToRecentDonations(profile.RecentDonations),
		CreatedAt:           profile.CreatedAt,
	}
}

// ToRecentDonations never returns nil so the list encodes as [].
func ToRecentDonations(recent []entities.RecentDonation) []domain.RecentDonation {
	result := make([]domain.RecentDonation, 0, len(recent))
	for _, r := range recent {
		result = append(result, domain.RecentDonation{
			ItemName:  r.ItemName,
			ItemCount: r.ItemCount,
			Date:      r.Date,
		})
	}
	return result
}
