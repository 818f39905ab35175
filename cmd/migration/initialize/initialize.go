package initialize

import (
	"civic/config"
	"civic/internal/logger"
	. "civic/internal/models"

	"gorm.io/gorm"
)

func InitializeTables(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("InitializeTables")
	log.Info("Initializing tables")

	if err := db.AutoMigrate(&Lookup{}); err != nil {
		return log.Err("failed to migrate lookup table", err)
	}

	log.Info("Table initialization complete")
	return nil
}
