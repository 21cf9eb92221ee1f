package profile

import (
	"Donation-Hub/domain"
	"Donation-Hub/entities"
	"Donation-Hub/internal/testutil"
	"Donation-Hub/internal/utils"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) (ProfileService, *gorm.DB) {
	db := testutil.SetupSQLiteTestDB(t)
	return NewProfileService(NewProfileRepository(db), utils.NewValidator()), db
}

func createAccount(t *testing.T, db *gorm.DB, kind string) *entities.Account {
	account := &entities.Account{Email: kind + "@example.com", Password: "x", Kind: kind}
	require.NoError(t, db.Create(account).Error)
	return account
}

func reloadAccount(t *testing.T, db *gorm.DB, id string) *entities.Account {
	var account entities.Account
	require.NoError(t, db.Where("id = ?", id).First(&account).Error)
	return &account
}

func donorRequest(donorID string) domain.DonorProfileRequest {
	return domain.DonorProfileRequest{
		DonorID:             donorID,
		FullName:            "Ada Donor",
		PhoneNumber:         "555-0100",
		Address:             "1 Main St",
		DonationPreferences: "clothes",
	}
}

func TestCreateDonorProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("flags the account", func(t *testing.T) {
		svc, db := setup(t)
		account := createAccount(t, db, domain.RoleDonor)

		res, err := svc.CreateDonorProfile(ctx, donorRequest(account.ID.String()))
		require.NoError(t, err)
		assert.NotEmpty(t, res.ProfileID)
		assert.Equal(t, account.ID.String(), res.OwnerID)

		assert.True(t, reloadAccount(t, db, account.ID.String()).DetailsComplete)

		profile, err := svc.GetDonorProfile(ctx, account.ID.String())
		require.NoError(t, err)
		assert.Equal(t, "Ada Donor", profile.FullName)
		assert.Equal(t, 0, profile.TotalDonations)
		assert.NotNil(t, profile.RecentDonations)
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		svc, db := setup(t)
		account := createAccount(t, db, domain.RoleDonor)

		_, err := svc.CreateDonorProfile(ctx, donorRequest(account.ID.String()))
		require.NoError(t, err)

		_, err = svc.CreateDonorProfile(ctx, donorRequest(account.ID.String()))
		assert.ErrorIs(t, err, domain.ErrDonorProfileExists)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("missing fields", func(t *testing.T) {
		svc, _ := setup(t)

		for _, mutate := range []func(*domain.DonorProfileRequest){
			func(r *domain.DonorProfileRequest) { r.DonorID = "" },
			func(r *domain.DonorProfileRequest) { r.FullName = "  " },
			func(r *domain.DonorProfileRequest) { r.PhoneNumber = "" },
			func(r *domain.DonorProfileRequest) { r.Address = "" },
			func(r *domain.DonorProfileRequest) { r.DonationPreferences = "" },
		} {
			req := donorRequest("donor-1")
			mutate(&req)
			_, err := svc.CreateDonorProfile(ctx, req)
			assert.ErrorIs(t, err, domain.ErrValidation)
		}
	})

	t.Run("unknown donor profile", func(t *testing.T) {
		svc, _ := setup(t)
		_, err := svc.GetDonorProfile(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrDonorNotFound)
	})
}

func TestCreateOrganizationProfile(t *testing.T) {
	ctx := context.Background()
	svc, db := setup(t)
	account := createAccount(t, db, domain.RoleOrganization)

	req := domain.OrganizationProfileRequest{
		OrganizationID:     account.ID.String(),
		Name:               "Helping Hands",
		RegistrationNumber: "REG-1",
		Address:            "2 Side St",
		HeadName:           "Grace",
	}

	first, err := svc.CreateOrganizationProfile(ctx, req)
	require.NoError(t, err)
	assert.True(t, reloadAccount(t, db, account.ID.String()).DetailsComplete)

	// a second profile is accepted and the first one keeps answering reads
	time.Sleep(2 * time.Millisecond)
	req.Name = "Renamed"
	second, err := svc.CreateOrganizationProfile(ctx, req)
	require.NoError(t, err)
	assert.NotEqual(t, first.ProfileID, second.ProfileID)

	profile, err := svc.GetOrganizationProfile(ctx, account.ID.String())
	require.NoError(t, err)
	assert.Equal(t, first.ProfileID, profile.ID)

	req.HeadName = ""
	_, err = svc.CreateOrganizationProfile(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidProfileField)

	_, err = svc.GetOrganizationProfile(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrOrganizationNotFound)
}
