package database

import (
	"clinrec/internal/config"
	"clinrec/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DB holds the database connection.
var DB *gorm.DB

// InitDB initializes the database connection and runs schema migrations.
func InitDB(cfg *config.Config) error {
	var err error
	DB, err = gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
	if err != nil {
		return err
	}
	return Migrate(DB)
}

// Migrate creates or updates the schema for all entities. It is also used by
// tests to prepare an in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Clinician{}, &models.Patient{}, &models.RecordEntry{})
}
