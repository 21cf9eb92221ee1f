package report

import (
	"Donation-Hub/domain"
	"Donation-Hub/internal/testutil"
	"Donation-Hub/internal/utils"
	"Donation-Hub/pkg/account"
	"Donation-Hub/pkg/donation"
	"Donation-Hub/pkg/profile"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	report    ReportService
	donations donation.DonationService
	profiles  profile.ProfileService
	db        *gorm.DB
}

func setup(t *testing.T) *fixture {
	db := testutil.SetupSQLiteTestDB(t)
	v := utils.NewValidator()

	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		now = now.Add(time.Minute)
		return now
	}

	profileRepo := profile.NewProfileRepository(db)
	donationRepo := donation.NewDonationRepository(db)
	return &fixture{
		report:    NewReportService(profileRepo, donationRepo),
		donations: donation.NewDonationService(donationRepo, profileRepo, account.NewAccountRepository(db), v, donation.WithClock(clock)),
		profiles:  profile.NewProfileService(profileRepo, v),
		db:        db,
	}
}

func (f *fixture) donor(t *testing.T, donorID, name string) {
	_, err := f.profiles.CreateDonorProfile(context.Background(), domain.DonorProfileRequest{
		DonorID:             donorID,
		FullName:            name,
		PhoneNumber:         "555-0100",
		Address:             "1 Main St",
		DonationPreferences: "books",
	})
	require.NoError(t, err)
}

func (f *fixture) submit(t *testing.T, donorID string, count int, date string) {
	_, err := f.donations.SubmitDonation(context.Background(), domain.DonationRequest{
		DonorID:   donorID,
		Condition: "good",
		ItemCount: domain.ItemCount(count),
		Date:      date,
		ItemName:  "box",
	})
	require.NoError(t, err)
}

func TestGetDonorStats(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults for a fresh profile", func(t *testing.T) {
		f := setup(t)
		f.donor(t, "d1", "Ada")

		stats, err := f.report.GetDonorStats(ctx, "d1")
		require.NoError(t, err)
		assert.Equal(t, "Ada", stats.FullName)
		assert.Zero(t, stats.TotalDonations)
		assert.Zero(t, stats.ItemsDonated)
		assert.Nil(t, stats.LastDonation)
		assert.Zero(t, stats.ImpactScore)
		assert.NotNil(t, stats.RecentDonations)
		assert.Empty(t, stats.RecentDonations)
	})

	t.Run("reflects a submission", func(t *testing.T) {
		f := setup(t)
		f.donor(t, "d1", "Ada")

		before, err := f.report.GetDonorStats(ctx, "d1")
		require.NoError(t, err)

		f.submit(t, "d1", 4, "2024-02-02")

		after, err := f.report.GetDonorStats(ctx, "d1")
		require.NoError(t, err)
		assert.Equal(t, before.TotalDonations+1, after.TotalDonations)
		assert.Equal(t, before.ItemsDonated+4, after.ItemsDonated)
		require.NotNil(t, after.LastDonation)
		assert.Equal(t, "2024-02-02", *after.LastDonation)
		require.Len(t, after.RecentDonations, 1)
	})

	t.Run("unknown donor", func(t *testing.T) {
		f := setup(t)
		_, err := f.report.GetDonorStats(ctx, "ghost")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestGetDonorsByIDs(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	f.donor(t, "d1", "Ada")
	f.donor(t, "d2", "Grace")

	donors, err := f.report.GetDonorsByIDs(ctx, []string{"d1", "missing", "d2"})
	require.NoError(t, err)
	require.Len(t, donors, 2)
	ids := []string{donors[0].DonorID, donors[1].DonorID}
	assert.ElementsMatch(t, []string{"d1", "d2"}, ids)

	_, err = f.report.GetDonorsByIDs(ctx, []string{"missing"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.report.GetDonorsByIDs(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.report.GetDonorsByIDs(ctx, []string{" "})
	assert.ErrorIs(t, err, domain.ErrDonorIDsRequired)
}

func TestGetOrganizationStats(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	_, err := f.report.GetOrganizationStats(ctx, "o1")
	assert.ErrorIs(t, err, domain.ErrOrganizationNotFound)

	_, err = f.profiles.CreateOrganizationProfile(ctx, domain.OrganizationProfileRequest{
		OrganizationID:     "o1",
		Name:               "Helping Hands",
		RegistrationNumber: "R-1",
		Address:            "2 Side St",
		HeadName:           "Grace",
	})
	require.NoError(t, err)

	stats, err := f.report.GetOrganizationStats(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, &domain.OrganizationStats{Name: "Helping Hands"}, stats)
}

func TestLeaderboard(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	f.donor(t, "d1", "Charlie")
	f.donor(t, "d2", "Alice")
	f.donor(t, "d3", "Bob")
	f.submit(t, "d1", 5, "2024-01-01")
	f.submit(t, "d2", 2, "2024-01-01")
	f.submit(t, "d3", 5, "2024-01-01")

	board, err := f.report.Leaderboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.LeaderboardEntry{
		{DonorID: "d3", FullName: "Bob", ItemsDonated: 5},
		{DonorID: "d1", FullName: "Charlie", ItemsDonated: 5},
		{DonorID: "d2", FullName: "Alice", ItemsDonated: 2},
	}, board)
}

func TestMonthlyChart(t *testing.T) {
	ctx := context.Background()

	t.Run("groups by month in first-seen order", func(t *testing.T) {
		f := setup(t)
		f.donor(t, "d1", "Ada")
		f.submit(t, "d1", 2, "2024-01-05T09:00:00Z")
		f.submit(t, "d1", 3, "2024-03-10T09:00:00Z")
		f.submit(t, "d1", 5, "2024-01-20T09:00:00Z")

		chart, err := f.report.MonthlyChart(ctx, "d1")
		require.NoError(t, err)
		assert.Equal(t, []domain.MonthlyItems{
			{Month: "January", Items: 7},
			{Month: "March", Items: 3},
		}, chart)
	})

	t.Run("includes moved records and skips bad dates", func(t *testing.T) {
		f := setup(t)
		f.donor(t, "d1", "Ada")
		_, err := f.profiles.CreateOrganizationProfile(ctx, domain.OrganizationProfileRequest{
			OrganizationID: "o1", Name: "Org", RegistrationNumber: "R", Address: "A", HeadName: "H",
		})
		require.NoError(t, err)

		f.submit(t, "d1", 4, "2024-02-01")
		f.submit(t, "d1", 9, "someday")
		f.submit(t, "d1", 1, "2024-02-15")

		_, err = f.donations.AcceptRequest(ctx, domain.TransitionRequest{DonorID: "d1", OrganizationID: "o1"})
		require.NoError(t, err)

		chart, err := f.report.MonthlyChart(ctx, "d1")
		require.NoError(t, err)
		assert.Equal(t, []domain.MonthlyItems{{Month: "February", Items: 5}}, chart)
	})

	t.Run("no history", func(t *testing.T) {
		f := setup(t)
		chart, err := f.report.MonthlyChart(ctx, "d1")
		require.NoError(t, err)
		assert.Empty(t, chart)
		assert.NotNil(t, chart)
	})

	t.Run("missing donor id", func(t *testing.T) {
		f := setup(t)
		_, err := f.report.MonthlyChart(ctx, "")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
