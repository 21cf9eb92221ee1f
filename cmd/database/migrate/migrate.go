package migration

import (
	"Donation-Hub/entities"
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

// Models lists every table, leaf first.
var Models = []any{
	&entities.Account{},
	&entities.DonorProfile{},
	&entities.OrganizationProfile{},
	&entities.PendingDonation{},
	&entities.AcceptedRequest{},
	&entities.DeclinedRequest{},
	&entities.PickupSchedule{},
}

func Migrate(db *gorm.DB) error {
	for _, model := range Models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("error migrating %T: %w", model, err)
		}
	}

	log.Info("Database migration complete")
	return nil
}
