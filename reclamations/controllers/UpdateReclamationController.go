package controllers

import (
	"errors"

	"steg-backend/config"
	"steg-backend/db/models"
	"steg-backend/reclamations/services"
	"steg-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UpdateEtatRequest struct {
	Etat             string  `json:"etat"`
	CoutIntervention *string `json:"cout_intervention"`
	UpdatedBy        string  `json:"updated_by"`
}

// UpdateReclamationEtatController moves a réclamation through its workflow
// states, appending each transition to the historique.
func (rc *ReclamationController) UpdateReclamationEtatController(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid réclamation ID",
		})
	}

	var request UpdateEtatRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request payload",
			"error":   err.Error(),
		})
	}

	if !services.IsValidEtat(request.Etat) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Etat invalide: valeurs acceptées PAS_ENCOURS, ENCOURS, TERMINER, ANNULEE",
		})
	}

	var cout *decimal.Decimal
	if request.CoutIntervention != nil {
		parsed, err := decimal.NewFromString(*request.CoutIntervention)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Coût d'intervention invalide",
			})
		}
		cout = &parsed
	}

	updated, err := rc.ReclamationRepo.UpdateReclamationEtat(id, models.ReclamationEtat(request.Etat), request.UpdatedBy, cout)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Réclamation not found",
			})
		}
		config.Logger.Error("Failed to update réclamation etat",
			zap.Error(err),
			zap.String("reclamationID", id.String()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update réclamation",
		})
	}

	if rc.BleveRepo != nil {
		if idxErr := rc.BleveRepo.UpdateReclamation(*updated); idxErr != nil {
			config.Logger.Warn("Failed to refresh réclamation index after etat change",
				zap.Error(idxErr),
				zap.String("reclamationID", id.String()))
		}
	}
	utils.InvalidateCacheAsync("reclamation_exports")

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Réclamation updated",
		"data":    updated,
	})
}

type AssignEquipeRequest struct {
	EquipeID  string `json:"equipe_id"`
	UpdatedBy string `json:"updated_by"`
}

// AssignEquipeController assigns a technician team to a réclamation.
func (rc *ReclamationController) AssignEquipeController(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid réclamation ID",
		})
	}

	var request AssignEquipeRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request payload",
			"error":   err.Error(),
		})
	}

	equipeID, err := uuid.Parse(request.EquipeID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid equipe ID",
		})
	}

	var equipe models.Equipe
	if err := rc.DB.First(&equipe, "id = ?", equipeID).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Equipe introuvable",
		})
	}
	if !equipe.Active {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cette équipe n'est plus active",
		})
	}

	updated, err := rc.ReclamationRepo.AssignEquipe(id, equipeID, request.UpdatedBy)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Réclamation not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to assign equipe",
		})
	}

	if rc.BleveRepo != nil {
		if idxErr := rc.BleveRepo.UpdateReclamation(*updated); idxErr != nil {
			config.Logger.Warn("Failed to refresh réclamation index after assignment",
				zap.Error(idxErr),
				zap.String("reclamationID", id.String()))
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Equipe assigned",
		"data":    updated,
	})
}

type ArchiveRequest struct {
	Archived  bool   `json:"archived"`
	UpdatedBy string `json:"updated_by"`
}

// ArchiveReclamationController hides a réclamation from the default lists
// without deleting its record.
func (rc *ReclamationController) ArchiveReclamationController(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid réclamation ID",
		})
	}

	var request ArchiveRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request payload",
			"error":   err.Error(),
		})
	}

	updated, err := rc.ReclamationRepo.SetArchived(id, request.Archived, request.UpdatedBy)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Réclamation not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to archive réclamation",
		})
	}

	utils.InvalidateCacheAsync("reclamation_exports")

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Réclamation archive state updated",
		"data":    updated,
	})
}
