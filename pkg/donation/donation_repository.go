package donation

import (
	"Donation-Hub/domain"
	"Donation-Hub/entities"
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	DonationRepository interface {
		// Transaction runs fn against a repository bound to one database
		// transaction. Returning an error from fn rolls everything back.
		Transaction(ctx context.Context, fn func(repo DonationRepository) error) error

		GetDonorProfileForUpdate(ctx context.Context, donorID string) (*entities.DonorProfile, error)
		UpdateDonorStats(ctx context.Context, profile *entities.DonorProfile) error

		OrganizationExists(ctx context.Context, organizationID string) (bool, error)
		IncrementOrganizationPickups(ctx context.Context, organizationID string) error
		SetOrganizationPendingPickups(ctx context.Context, organizationID string, count int) error

		CreatePendingDonation(ctx context.Context, donation *entities.PendingDonation) error
		GetOldestPendingByDonor(ctx context.Context, donorID string) (*entities.PendingDonation, error)
		DeletePendingDonation(ctx context.Context, id uuid.UUID) (int64, error)
		GetPendingDonations(ctx context.Context) ([]*entities.PendingDonation, error)

		CreateAcceptedRequest(ctx context.Context, request *entities.AcceptedRequest) error
		CreateDeclinedRequest(ctx context.Context, request *entities.DeclinedRequest) error
		GetAcceptedRequests(ctx context.Context, organizationID string) ([]*entities.AcceptedRequest, error)
		GetDeclinedRequests(ctx context.Context, organizationID string) ([]*entities.DeclinedRequest, error)

		CreatePickupSchedule(ctx context.Context, schedule *entities.PickupSchedule) error

		GetDonorHistory(ctx context.Context, donorID string) ([]*HistoryRecord, error)
	}

	// HistoryRecord is a donation as seen from whichever store it lives in.
	HistoryRecord struct {
		ID             uuid.UUID
		OrganizationID string
		Status         string
		CreatedAt      time.Time
		entities.DonationFields
	}

	donationRepository struct {
		db *gorm.DB
	}
)

func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepository{db: db}
}

func (r *donationRepository) Transaction(ctx context.Context, fn func(repo DonationRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&donationRepository{db: tx})
	})
}

func (r *donationRepository) GetDonorProfileForUpdate(ctx context.Context, donorID string) (*entities.DonorProfile, error) {
	var profile entities.DonorProfile
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("donor_id = ?", donorID).
		First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *donationRepository) UpdateDonorStats(ctx context.Context, profile *entities.DonorProfile) error {
	return r.db.WithContext(ctx).
		Model(profile).
		Select("total_donations", "items_donated", "last_donation", "recent_donations", "updated_at").
		Updates(profile).Error
}

func (r *donationRepository) OrganizationExists(ctx context.Context, organizationID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.OrganizationProfile{}).
		Where("organization_id = ?", organizationID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// IncrementOrganizationPickups touches every profile row of the
// organization.
func (r *donationRepository) IncrementOrganizationPickups(ctx context.Context, organizationID string) error {
	return r.db.WithContext(ctx).
		Model(&entities.OrganizationProfile{}).
		Where("organization_id = ?", organizationID).
		Updates(map[string]interface{}{
			"total_pickups": gorm.Expr("total_pickups + ?", 1),
		}).Error
}

func (r *donationRepository) SetOrganizationPendingPickups(ctx context.Context, organizationID string, count int) error {
	return r.db.WithContext(ctx).
		Model(&entities.OrganizationProfile{}).
		Where("organization_id = ?", organizationID).
		Update("pending_pickups", count).Error
}

func (r *donationRepository) CreatePendingDonation(ctx context.Context, donation *entities.PendingDonation) error {
	return r.db.WithContext(ctx).Create(donation).Error
}

// GetOldestPendingByDonor resolves a donor with several pending records to
// the one submitted first.
func (r *donationRepository) GetOldestPendingByDonor(ctx context.Context, donorID string) (*entities.PendingDonation, error) {
	var donation entities.PendingDonation
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("donor_id = ?", donorID).
		Order("created_at ASC").
		Order("id ASC").
		First(&donation).Error; err != nil {
		return nil, err
	}
	return &donation, nil
}

func (r *donationRepository) DeletePendingDonation(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.PendingDonation{})
	return result.RowsAffected, result.Error
}

func (r *donationRepository) GetPendingDonations(ctx context.Context) ([]*entities.PendingDonation, error) {
	var donations []*entities.PendingDonation
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

func (r *donationRepository) CreateAcceptedRequest(ctx context.Context, request *entities.AcceptedRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *donationRepository) CreateDeclinedRequest(ctx context.Context, request *entities.DeclinedRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *donationRepository) GetAcceptedRequests(ctx context.Context, organizationID string) ([]*entities.AcceptedRequest, error) {
	var requests []*entities.AcceptedRequest
	if err := r.terminalQuery(ctx, organizationID).Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *donationRepository) GetDeclinedRequests(ctx context.Context, organizationID string) ([]*entities.DeclinedRequest, error) {
	var requests []*entities.DeclinedRequest
	if err := r.terminalQuery(ctx, organizationID).Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *donationRepository) terminalQuery(ctx context.Context, organizationID string) *gorm.DB {
	query := r.db.WithContext(ctx)
	if organizationID != "" {
		query = query.Where("organization_id = ?", organizationID)
	}
	return query.Order("moved_at DESC")
}

func (r *donationRepository) CreatePickupSchedule(ctx context.Context, schedule *entities.PickupSchedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

// GetDonorHistory merges the donor's records from the pending, accepted and
// declined stores, newest submission first.
func (r *donationRepository) GetDonorHistory(ctx context.Context, donorID string) ([]*HistoryRecord, error) {
	db := r.db.WithContext(ctx)

	var pending []*entities.PendingDonation
	if err := db.Where("donor_id = ?", donorID).Find(&pending).Error; err != nil {
		return nil, err
	}
	var accepted []*entities.AcceptedRequest
	if err := db.Where("donor_id = ?", donorID).Find(&accepted).Error; err != nil {
		return nil, err
	}
	var declined []*entities.DeclinedRequest
	if err := db.Where("donor_id = ?", donorID).Find(&declined).Error; err != nil {
		return nil, err
	}

	history := make([]*HistoryRecord, 0, len(pending)+len(accepted)+len(declined))
	for _, p := range pending {
		history = append(history, &HistoryRecord{
			ID:             p.ID,
			Status:         domain.StatusPending,
			CreatedAt:      p.CreatedAt,
			DonationFields: p.DonationFields,
		})
	}
	for _, a := range accepted {
		history = append(history, &HistoryRecord{
			ID:             a.DonationID,
			OrganizationID: a.OrganizationID,
			Status:         domain.StatusAccepted,
			CreatedAt:      a.CreatedAt,
			DonationFields: a.DonationFields,
		})
	}
	for _, d := range declined {
		history = append(history, &HistoryRecord{
			ID:             d.DonationID,
			OrganizationID: d.OrganizationID,
			Status:         domain.StatusDeclined,
			CreatedAt:      d.CreatedAt,
			DonationFields: d.DonationFields,
		})
	}

	sort.SliceStable(history, func(i, j int) bool {
		return history[i].CreatedAt.After(history[j].CreatedAt)
	})
	return history, nil
}
