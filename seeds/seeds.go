package seeds

import (
	"errors"
	"fmt"
	"strings"

	citoyen_services "steg-backend/citoyens/services"
	"steg-backend/config"
	"steg-backend/db/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedZoneEquipes creates one default intervention team per zone so a fresh
// deployment can assign réclamations immediately. Idempotent on team name.
func SeedZoneEquipes(db *gorm.DB) error {
	config.Logger.Info("Starting zone equipe seeding...")

	createdCount := 0

	for _, zone := range citoyen_services.ZoneNames() {
		nom := "Equipe " + strings.ReplaceAll(zone, "_", " ")

		var existing models.Equipe
		result := db.Where("nom = ?", nom).First(&existing)

		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				equipe := models.Equipe{
					ID:     uuid.New(),
					Nom:    nom,
					Zone:   zone,
					Active: true,
				}
				if err := db.Create(&equipe).Error; err != nil {
					config.Logger.Error("Failed to create zone equipe",
						zap.String("nom", nom),
						zap.Error(err))
					return fmt.Errorf("failed to create equipe %s: %w", nom, err)
				}
				createdCount++
				config.Logger.Info("Created zone equipe", zap.String("nom", nom))
			} else {
				return fmt.Errorf("error checking for equipe %s: %w", nom, result.Error)
			}
		}
	}

	config.Logger.Info("Zone equipe seeding completed", zap.Int("created", createdCount))
	return nil
}

// SeedAll runs every seeder in dependency order.
func SeedAll(db *gorm.DB) error {
	if err := SeedZoneEquipes(db); err != nil {
		return err
	}
	return nil
}
