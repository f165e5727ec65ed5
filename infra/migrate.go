package infra

import (
	"fmt"

	"store-rating/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Store{}, &models.Rating{}); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}

func MigrateTokenDB(tokenDB *gorm.DB) error {
	if err := tokenDB.AutoMigrate(&models.RevokedToken{}); err != nil {
		return fmt.Errorf("migrate token blacklist database: %w", err)
	}
	return nil
}
