package donation

import (
	"Donation-Hub/domain"
	"Donation-Hub/entities"
	"Donation-Hub/internal/utils"
	"Donation-Hub/internal/utils/mailing"
	"Donation-Hub/internal/utils/metrics"
	"Donation-Hub/internal/utils/storage"
	"Donation-Hub/pkg/account"
	"Donation-Hub/pkg/profile"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	maxRecentDonations = 5
	imageFolder        = "donations"
)

type (
	DonationService interface {
		SubmitDonation(ctx context.Context, req domain.DonationRequest) (*domain.Donation, error)
		AcceptRequest(ctx context.Context, req domain.TransitionRequest) (*domain.Donation, error)
		DeclineRequest(ctx context.Context, req domain.TransitionRequest) (*domain.Donation, error)
		ListPending(ctx context.Context, organizationID string) (*domain.PendingPickupsResponse, error)
		SchedulePickup(ctx context.Context, req domain.PickupRequest) (*domain.PickupSchedule, error)
		ListAccepted(ctx context.Context, organizationID string) ([]*domain.Donation, error)
		ListDeclined(ctx context.Context, organizationID string) ([]*domain.Donation, error)
		ListDonorDonations(ctx context.Context, donorID string) ([]*domain.Donation, error)
	}

	Option func(*donationService)

	donationService struct {
		donationRepository DonationRepository
		profileRepository  profile.ProfileRepository
		accountRepository  account.AccountRepository
		validator          *validator.Validate
		s3                 storage.AwsS3
		mailer             mailing.Mailer
		metrics            *metrics.Metrics
		appURL             string
		now                func() time.Time
	}
)

func WithStorage(s3 storage.AwsS3) Option {
	return func(s *donationService) { s.s3 = s3 }
}

func WithMailer(mailer mailing.Mailer, appURL string) Option {
	return func(s *donationService) {
		s.mailer = mailer
		s.appURL = appURL
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *donationService) { s.metrics = m }
}

func WithClock(now func() time.Time) Option {
	return func(s *donationService) { s.now = now }
}

func NewDonationService(
	donationRepository DonationRepository,
	profileRepository profile.ProfileRepository,
	accountRepository account.AccountRepository,
	validator *validator.Validate,
	opts ...Option,
) DonationService {
	s := &donationService{
		donationRepository: donationRepository,
		profileRepository:  profileRepository,
		accountRepository:  accountRepository,
		validator:          validator,
		now:                time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *donationService) SubmitDonation(ctx context.Context, req domain.DonationRequest) (*domain.Donation, error) {
	req.DonorID = strings.TrimSpace(req.DonorID)
	req.Condition = strings.TrimSpace(req.Condition)
	req.Date = strings.TrimSpace(req.Date)
	req.ItemName = strings.TrimSpace(req.ItemName)

	if err := utils.ValidateStruct(s.validator, req, domain.ErrInvalidDonationField); err != nil {
		return nil, err
	}

	pending := &entities.PendingDonation{
		DonationFields: entities.DonationFields{
			DonorID:     req.DonorID,
			Condition:   req.Condition,
			ItemCount:   max(int(req.ItemCount), 0),
			Date:        req.Date,
			Notes:       req.Notes,
			Image:       req.Image,
			Description: req.Description,
			ItemName:    req.ItemName,
		},
	}
	pending.CreatedAt = s.now()

	objectKey, err := s.uploadImage(ctx, pending)
	if err != nil {
		return nil, err
	}

	err = s.donationRepository.Transaction(ctx, func(repo DonationRepository) error {
		donor, err := repo.GetDonorProfileForUpdate(ctx, req.DonorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrDonorNotFound
			}
			return err
		}

		donor.TotalDonations++
		donor.ItemsDonated += pending.ItemCount
		lastDonation := pending.Date
		donor.LastDonation = &lastDonation
		donor.RecentDonations = prependRecent(donor.RecentDonations, entities.RecentDonation{
			ItemName:  pending.ItemName,
			ItemCount: pending.ItemCount,
			Date:      pending.Date,
		})

		if err := repo.UpdateDonorStats(ctx, donor); err != nil {
			return err
		}
		return repo.CreatePendingDonation(ctx, pending)
	})
	if err != nil {
		if objectKey != "" {
			if delErr := s.s3.DeleteFile(ctx, objectKey); delErr != nil {
				log.Warnf("failed to remove orphaned image %s: %v", objectKey, delErr)
			}
		}
		return nil, err
	}

	s.metrics.DonationSubmitted(pending.ItemCount)
	return toDonation(pending.ID, "", domain.StatusPending, pending.CreatedAt, pending.DonationFields), nil
}

// uploadImage moves an inline payload to object storage when a bucket is
// configured and returns the stored key.
func (s *donationService) uploadImage(ctx context.Context, pending *entities.PendingDonation) (string, error) {
	if s.s3 == nil || strings.TrimSpace(pending.Image) == "" {
		return "", nil
	}

	data, _, err := storage.DecodeBase64Image(pending.Image)
	if err != nil {
		return "", domain.ErrInvalidImage
	}

	objectKey, err := s.s3.UploadBytes(ctx, uuid.NewString(), data, imageFolder, storage.AllowImage...)
	if err != nil {
		if errors.Is(err, storage.ErrFileTypeNotAllowed) {
			return "", fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		return "", fmt.Errorf("%w: upload image: %v", domain.ErrUpstream, err)
	}

	pending.Image = ""
	pending.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	return objectKey, nil
}

func prependRecent(recent []entities.RecentDonation, entry entities.RecentDonation) []entities.RecentDonation {
	result := make([]entities.RecentDonation, 0, maxRecentDonations)
	result = append(result, entry)
	for _, r := range recent {
		if len(result) == maxRecentDonations {
			break
		}
		result = append(result, r)
	}
	return result
}

func (s *donationService) AcceptRequest(ctx context.Context, req domain.TransitionRequest) (*domain.Donation, error) {
	return s.transition(ctx, req, domain.StatusAccepted)
}

func (s *donationService) DeclineRequest(ctx context.Context, req domain.TransitionRequest) (*domain.Donation, error) {
	return s.transition(ctx, req, domain.StatusDeclined)
}

// transition moves the donor's oldest pending record into the accepted or
// declined store. Losing a race for the pending row rolls back with
// ErrDonationNotFound.
func (s *donationService) transition(ctx context.Context, req domain.TransitionRequest, status string) (*domain.Donation, error) {
	req.DonorID = strings.TrimSpace(req.DonorID)
	req.OrganizationID = strings.TrimSpace(req.OrganizationID)

	if err := utils.ValidateStruct(s.validator, req, domain.ErrInvalidTransition); err != nil {
		return nil, err
	}

	var moved *domain.Donation
	err := s.donationRepository.Transaction(ctx, func(repo DonationRepository) error {
		pending, err := repo.GetOldestPendingByDonor(ctx, req.DonorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrDonationNotFound
			}
			return err
		}

		exists, err := repo.OrganizationExists(ctx, req.OrganizationID)
		if err != nil {
			return err
		}
		if !exists {
			return domain.ErrOrganizationNotFound
		}

		movedAt := s.now()
		switch status {
		case domain.StatusAccepted:
			if err := repo.IncrementOrganizationPickups(ctx, req.OrganizationID); err != nil {
				return err
			}
			record := &entities.AcceptedRequest{
				DonationID:     pending.ID,
				OrganizationID: req.OrganizationID,
				Status:         domain.StatusAccepted,
				MovedAt:        movedAt,
				DonationFields: pending.DonationFields,
				Timestamp:      entities.Timestamp{CreatedAt: pending.CreatedAt},
			}
			if err := repo.CreateAcceptedRequest(ctx, record); err != nil {
				return err
			}
		default:
			record := &entities.DeclinedRequest{
				DonationID:     pending.ID,
				OrganizationID: req.OrganizationID,
				Status:         domain.StatusDeclined,
				MovedAt:        movedAt,
				DonationFields: pending.DonationFields,
				Timestamp:      entities.Timestamp{CreatedAt: pending.CreatedAt},
			}
			if err := repo.CreateDeclinedRequest(ctx, record); err != nil {
				return err
			}
		}

		deleted, err := repo.DeletePendingDonation(ctx, pending.ID)
		if err != nil {
			return err
		}
		if deleted == 0 {
			return domain.ErrDonationNotFound
		}

		moved = toDonation(pending.ID, req.OrganizationID, status, pending.CreatedAt, pending.DonationFields)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RequestTransitioned(status)
	s.notifyDonor(ctx, moved)
	return moved, nil
}

// notifyDonor is best effort: the transition is already committed. The
// recipient and body are resolved inline, delivery runs off the request.
func (s *donationService) notifyDonor(ctx context.Context, donation *domain.Donation) {
	if s.mailer == nil {
		return
	}

	donorName := ""
	email := ""
	if p, err := s.profileRepository.GetDonorProfileByDonorID(ctx, donation.DonorID); err == nil {
		donorName = p.FullName
		email = p.Email
	}
	if email == "" {
		acc, err := s.accountRepository.GetAccountByID(ctx, donation.DonorID)
		if err != nil {
			log.Warnf("no email on record for donor %s, skipping notification", donation.DonorID)
			return
		}
		email = acc.Email
	}
	if donorName == "" {
		donorName = email
	}

	orgName := donation.OrganizationID
	if org, err := s.profileRepository.GetOrganizationProfileByOrgID(ctx, donation.OrganizationID); err == nil {
		orgName = org.Name
	}

	body, err := mailing.RenderRequestStatus(mailing.RequestStatusData{
		DonorName:        donorName,
		ItemName:         donation.ItemName,
		ItemCount:        donation.ItemCount,
		Status:           donation.Status,
		OrganizationName: orgName,
		AppURL:           s.appURL,
	})
	if err != nil {
		log.Errorf("failed to render notification: %v", err)
		return
	}

	subject := fmt.Sprintf("Your donation was %s", donation.Status)
	donorID := donation.DonorID
	go func() {
		if err := s.mailer.SendMail(email, subject, body); err != nil {
			log.Errorf("failed to notify donor %s: %v", donorID, err)
		}
	}()
}

func (s *donationService) ListPending(ctx context.Context, organizationID string) (*domain.PendingPickupsResponse, error) {
	pending, err := s.donationRepository.GetPendingDonations(ctx)
	if err != nil {
		return nil, err
	}

	// The organization's counter mirrors the global pending count, not the
	// records addressed to it.
	organizationID = strings.TrimSpace(organizationID)
	if organizationID != "" {
		if err := s.donationRepository.SetOrganizationPendingPickups(ctx, organizationID, len(pending)); err != nil {
			return nil, err
		}
	}

	donations := make([]*domain.Donation, 0, len(pending))
	for _, p := range pending {
		donations = append(donations, toDonation(p.ID, "", domain.StatusPending, p.CreatedAt, p.DonationFields))
	}

	return &domain.PendingPickupsResponse{
		Donations: donations,
		Total:     len(donations),
	}, nil
}

func (s *donationService) SchedulePickup(ctx context.Context, req domain.PickupRequest) (*domain.PickupSchedule, error) {
	req.DonorID = strings.TrimSpace(req.DonorID)
	req.OrganizationID = strings.TrimSpace(req.OrganizationID)
	req.PickupDate = strings.TrimSpace(req.PickupDate)
	req.PickupTime = strings.TrimSpace(req.PickupTime)

	if err := utils.ValidateStruct(s.validator, req, domain.ErrInvalidPickupField); err != nil {
		return nil, err
	}

	schedule := &entities.PickupSchedule{
		DonorID:        req.DonorID,
		OrganizationID: req.OrganizationID,
		PickupDate:     req.PickupDate,
		PickupTime:     req.PickupTime,
		Status:         domain.StatusAccepted,
		CreatedAt:      s.now(),
	}
	if err := s.donationRepository.CreatePickupSchedule(ctx, schedule); err != nil {
		return nil, err
	}

	s.metrics.PickupScheduled()
	return &domain.PickupSchedule{
		ID:             schedule.ID.String(),
		DonorID:        schedule.DonorID,
		OrganizationID: schedule.OrganizationID,
		PickupDate:     schedule.PickupDate,
		PickupTime:     schedule.PickupTime,
		Status:         schedule.Status,
		CreatedAt:      schedule.CreatedAt,
	}, nil
}

func (s *donationService) ListAccepted(ctx context.Context, organizationID string) ([]*domain.Donation, error) {
	requests, err := s.donationRepository.GetAcceptedRequests(ctx, strings.TrimSpace(organizationID))
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Donation, 0, len(requests))
	for _, r := range requests {
		result = append(result, toDonation(r.DonationID, r.OrganizationID, r.Status, r.CreatedAt, r.DonationFields))
	}
	return result, nil
}

func (s *donationService) ListDeclined(ctx context.Context, organizationID string) ([]*domain.Donation, error) {
	requests, err := s.donationRepository.GetDeclinedRequests(ctx, strings.TrimSpace(organizationID))
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Donation, 0, len(requests))
	for _, r := range requests {
		result = append(result, toDonation(r.DonationID, r.OrganizationID, r.Status, r.CreatedAt, r.DonationFields))
	}
	return result, nil
}

func (s *donationService) ListDonorDonations(ctx context.Context, donorID string) ([]*domain.Donation, error) {
	donorID = strings.TrimSpace(donorID)
	if donorID == "" {
		return nil, domain.ErrDonorIDRequired
	}

	history, err := s.donationRepository.GetDonorHistory(ctx, donorID)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Donation, 0, len(history))
	for _, h := range history {
		result = append(result, toDonation(h.ID, h.OrganizationID, h.Status, h.CreatedAt, h.DonationFields))
	}
	return result, nil
}

func toDonation(id uuid.UUID, organizationID, status string, createdAt time.Time, fields entities.DonationFields) *domain.Donation {
	return &domain.Donation{
		ID:             id.String(),
		DonorID:        fields.DonorID,
		OrganizationID: organizationID,
		Condition:      fields.Condition,
		ItemCount:      fields.ItemCount,
		Date:           fields.Date,
		Notes:          fields.Notes,
		Image:          fields.Image,
		ImageURL:       fields.ImageURL,
		Description:    fields.Description,
		ItemName:       fields.ItemName,
		Status:         status,
		CreatedAt:      createdAt,
	}
}
