package main

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"finanalyst/models"
)

// openDB connects to Postgres and, unless disabled, runs the schema
// migrations and seeds the bootstrap administrator.
func openDB(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if cfg.AutoMigrate {
		// Migrate models individually so a failure on one doesn't block others
		if err := db.AutoMigrate(&models.User{}); err != nil {
			log.Printf("migration warning (users): %v", err)
		}
		if err := db.AutoMigrate(&models.Transaction{}); err != nil {
			log.Printf("migration warning (transactions): %v", err)
		}
	}
	if cfg.SeedAdmin {
		seedAdmin(db)
	}
	return db, nil
}

// seedAdmin creates the administrator account if it is missing.
func seedAdmin(db *gorm.DB) {
	var count int64
	db.Model(&models.User{}).Where("email = ?", "admin@example.com").Count(&count)
	if count > 0 {
		return
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("failed to hash admin password: %v", err)
		return
	}
	admin := models.User{
		Name:           "Administrator",
		Email:          "admin@example.com",
		HashedPassword: hashed,
		Role:           models.RoleAdministrator,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("failed to seed admin user: %v", err)
		return
	}
	log.Println("Seeded admin user: email=admin@example.com, password=admin123")
}
