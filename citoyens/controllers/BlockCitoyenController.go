package controllers

import (
	"errors"

	"steg-backend/config"
	"steg-backend/db/models"
	"steg-backend/internal/tasks"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type etatChangeRequest struct {
	UpdatedBy string `json:"updated_by"`
}

// BlockCitoyenController flips the account to INACTIF. A blocked citizen
// can no longer submit réclamations.
func (cc *CitoyenController) BlockCitoyenController(c *fiber.Ctx) error {
	return cc.setEtat(c, models.CompteInactif)
}

// UnblockCitoyenController re-activates the account.
func (cc *CitoyenController) UnblockCitoyenController(c *fiber.Ctx) error {
	return cc.setEtat(c, models.CompteActif)
}

func (cc *CitoyenController) setEtat(c *fiber.Ctx, etat models.CompteEtat) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid citoyen ID",
		})
	}

	var request etatChangeRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request payload",
			"error":   err.Error(),
		})
	}

	if err := cc.CitoyenRepo.SetCitoyenEtat(nil, id, etat, request.UpdatedBy); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Citoyen not found",
			})
		}
		config.Logger.Error("Failed to update citoyen etat",
			zap.Error(err),
			zap.String("citoyenID", id.String()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update citoyen state",
		})
	}

	citoyen, err := cc.CitoyenRepo.GetCitoyenByID(id)
	if err == nil {
		if cc.BleveRepo != nil {
			if idxErr := cc.BleveRepo.UpdateCitoyen(*citoyen); idxErr != nil {
				config.Logger.Warn("Failed to refresh citoyen index after etat change",
					zap.Error(idxErr),
					zap.String("citoyenID", id.String()))
			}
		}

		if etat == models.CompteInactif {
			tasks.EnqueueEmail(
				citoyen.Email,
				"Votre compte STEG a été suspendu suite à un signalement vérifié. Contactez votre agence pour plus d'informations.",
				"Compte suspendu",
				"",
			)
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Citoyen state updated",
		"data":    citoyen,
	})
}
