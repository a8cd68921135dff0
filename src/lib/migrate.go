package lib

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/theleywin/Backend-Pulse-Feed/src/models"
)

// AutoMigrate runs all database migrations
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Notification{},
	)

	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	return nil
}
