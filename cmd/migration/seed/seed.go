package seed

import (
	"civic/config"
	"civic/internal/logger"
	. "civic/internal/models"

	"gorm.io/gorm"
)

func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	lookups := []Lookup{
		{
			Query:       "47401",
			Kind:        "zip",
			Status:      string(StatusFresh),
			ResultCount: 12,
		}, {
			Query:            "123 Main St, Orem, UT 84057",
			Kind:             "address",
			Status:           string(StatusNoGeofence),
			ResultCount:      4,
			FormattedAddress: "123 Main St, Orem, UT 84057, USA",
		}, {
			Query:       "84601",
			Kind:        "zip",
			Status:      string(StatusWarmed),
			ResultCount: 9,
		},
	}

	for _, lookup := range lookups {
		var existing Lookup
		if err := db.First(&existing, "query = ?", lookup.Query).Error; err == nil {
			log.Info("Lookup already seeded", "query", lookup.Query)
			continue
		}
		log.Info("Seeding lookup", "query", lookup.Query)
		if err := db.Create(&lookup).Error; err != nil {
			log.Er("failed to create lookup", err, "query", lookup.Query)
		}
	}

	return nil
}
