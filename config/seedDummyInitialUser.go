package config

import (
	"errors"
	"fmt"
	"log"

	"steg-backend/db/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedDummyInitialUser creates a single admin account for initial system access
func SeedDummyInitialUser(db *gorm.DB) error {
	dummyEmail := "admin@steg.tn"

	// First check if user already exists
	var existingUser models.User
	err := db.Where("email = ?", dummyEmail).First(&existingUser).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Hash the password properly
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Failed to hash password: %v", err)
				return fmt.Errorf("failed to hash password: %w", err)
			}

			dummyUser := models.User{
				ID:        uuid.New(),
				FirstName: "Admin",
				LastName:  "STEG",
				Email:     dummyEmail,
				Password:  string(hashedPassword),
				Phone:     "71234567",
				Role:      models.AdminRole,
				Active:    true,
				CreatedBy: "system",
			}

			if err := db.Create(&dummyUser).Error; err != nil {
				return fmt.Errorf("failed to seed initial user: %w", err)
			}
			log.Printf("Seeded initial admin user: %s", dummyEmail)
			return nil
		}
		return fmt.Errorf("failed to check for existing user: %w", err)
	}

	// User already present, nothing to do
	return nil
}
