package report

import (
	"Donation-Hub/domain"
	"Donation-Hub/pkg/donation"
	"Donation-Hub/pkg/profile"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

type (
	ReportService interface {
		GetDonorStats(ctx context.Context, donorID string) (*domain.DonorStats, error)
		GetDonorsByIDs(ctx context.Context, donorIDs []string) ([]*domain.DonorProfile, error)
		GetOrganizationStats(ctx context.Context, organizationID string) (*domain.OrganizationStats, error)
		Leaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error)
		MonthlyChart(ctx context.Context, donorID string) ([]domain.MonthlyItems, error)
	}

	reportService struct {
		profileRepository  profile.ProfileRepository
		donationRepository donation.DonationRepository
	}
)

func NewReportService(profileRepository profile.ProfileRepository, donationRepository donation.DonationRepository) ReportService {
	return &reportService{
		profileRepository:  profileRepository,
		donationRepository: donationRepository,
	}
}

func (s *reportService) GetDonorStats(ctx context.Context, donorID string) (*domain.DonorStats, error) {
	donorID = strings.TrimSpace(donorID)
	if donorID == "" {
		return nil, domain.ErrDonorIDRequired
	}

	p, err := s.profileRepository.GetDonorProfileByDonorID(ctx, donorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDonorNotFound
		}
		return nil, err
	}

	return &domain.DonorStats{
		FullName:        p.FullName,
		TotalDonations:  p.TotalDonations,
		ItemsDonated:    p.ItemsDonated,
		LastDonation:    p.LastDonation,
		ImpactScore:     p.ImpactScore,
		RecentDonations: profile.ToRecentDonations(p.RecentDonations),
	}, nil
}

// GetDonorsByIDs returns whichever of the ids have a profile. Only an
// entirely empty result is an error.
func (s *reportService) GetDonorsByIDs(ctx context.Context, donorIDs []string) ([]*domain.DonorProfile, error) {
	ids := make([]string, 0, len(donorIDs))
	for _, id := range donorIDs {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, domain.ErrDonorIDsRequired
	}

	profiles, err := s.profileRepository.GetDonorProfilesByDonorIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, domain.ErrNoDonorsFound
	}

	result := make([]*domain.DonorProfile, 0, len(profiles))
	for _, p := range profiles {
		result = append(result, profile.ToDonorProfile(p))
	}
	return result, nil
}

func (s *reportService) GetOrganizationStats(ctx context.Context, organizationID string) (*domain.OrganizationStats, error) {
	organizationID = strings.TrimSpace(organizationID)
	if organizationID == "" {
		return nil, domain.ErrOrganizationIDRequired
	}

	p, err := s.profileRepository.GetOrganizationProfileByOrgID(ctx, organizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrganizationNotFound
		}
		return nil, err
	}

	return &domain.OrganizationStats{
		Name:           p.Name,
		TotalPickups:   p.TotalPickups,
		PendingPickups: p.PendingPickups,
		CompletedToday: p.CompletedToday,
	}, nil
}

func (s *reportService) Leaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	profiles, err := s.profileRepository.GetLeaderboard(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.LeaderboardEntry, 0, len(profiles))
	for _, p := range profiles {
		entries = append(entries, domain.LeaderboardEntry{
			DonorID:      p.DonorID,
			FullName:     p.FullName,
			ItemsDonated: p.ItemsDonated,
		})
	}
	return entries, nil
}

// MonthlyChart sums item counts per calendar month of the donation date.
// Months appear in the order they are first met while walking the history
// newest submission first, so the series is not chronological.
func (s *reportService) MonthlyChart(ctx context.Context, donorID string) ([]domain.MonthlyItems, error) {
	donorID = strings.TrimSpace(donorID)
	if donorID == "" {
		return nil, domain.ErrDonorIDRequired
	}

	history, err := s.donationRepository.GetDonorHistory(ctx, donorID)
	if err != nil {
		return nil, err
	}

	chart := make([]domain.MonthlyItems, 0)
	index := make(map[string]int)
	for _, record := range history {
		date, ok := parseDonationDate(record.Date)
		if !ok {
			log.Debugf("skipping donation %s with unparseable date %q", record.ID, record.Date)
			continue
		}

		month := date.Month().String()
		i, seen := index[month]
		if !seen {
			i = len(chart)
			index[month] = i
			chart = append(chart, domain.MonthlyItems{Month: month})
		}
		chart[i].Items += record.ItemCount
	}
	return chart, nil
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseDonationDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
