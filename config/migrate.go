package config

import (
	"bidmarket/models"
	"bidmarket/utils"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	// Migrate the schema
	err := db.AutoMigrate(
		&models.User{},
		&models.Collection{},
		&models.Bid{},
	)

	if err != nil {
		utils.Error("Failed to migrate database schema", map[string]any{"error": err.Error()})
		return err
	}

	utils.Info("Database migrations completed successfully", nil)
	return nil
}

func ResetAndMigrate(db *gorm.DB) error {
	// Drop all tables. Bids go first to satisfy the foreign keys.
	tables := []interface{}{
		&models.Bid{},
		&models.Collection{},
		&models.User{},
	}

	if err := db.Migrator().DropTable(tables...); err != nil {
		utils.Error("Failed to drop tables", map[string]any{"error": err.Error()})
		return err
	}

	utils.Info("All tables dropped successfully", nil)

	if err := Migrate(db); err != nil {
		return err
	}

	if err := Seed(db); err != nil {
		return err
	}

	utils.Info("Database reset and migration completed successfully", nil)
	return nil
}
