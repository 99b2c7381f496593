package controllers

import (
	"errors"

	"steg-backend/citoyens/services"
	"steg-backend/config"
	"steg-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UpdateCitoyenRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	Address   *string `json:"address"`
	UpdatedBy string  `json:"updated_by"`
}

// UpdateCitoyenController applies a partial update. The CIN is immutable.
func (cc *CitoyenController) UpdateCitoyenController(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid citoyen ID",
		})
	}

	var request UpdateCitoyenRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request payload",
			"error":   err.Error(),
		})
	}

	citoyen, err := cc.CitoyenRepo.GetCitoyenByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Citoyen not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load citoyen",
		})
	}

	if request.FirstName != nil {
		citoyen.FirstName = *request.FirstName
	}
	if request.LastName != nil {
		citoyen.LastName = *request.LastName
	}
	if request.Phone != nil {
		switch services.ValidatePhone(*request.Phone) {
		case services.WrongLength:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Le numéro de téléphone doit contenir exactement 8 chiffres",
			})
		case services.WrongPrefix:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Le numéro de téléphone doit commencer par 2, 3, 5, 7 ou 9",
			})
		}
		citoyen.Phone = *request.Phone
	}
	if request.Email != nil {
		if !services.ValidateEmailFormat(*request.Email) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Le format de l'adresse e-mail est invalide",
			})
		}
		citoyen.Email = *request.Email
	}
	if request.Address != nil {
		citoyen.Address = *request.Address
	}
	citoyen.UpdatedBy = utils.StringPtr(request.UpdatedBy)

	updated, err := cc.CitoyenRepo.UpdateCitoyen(citoyen)
	if err != nil {
		config.Logger.Error("Failed to update citoyen",
			zap.Error(err),
			zap.String("citoyenID", id.String()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update citoyen",
		})
	}

	if cc.BleveRepo != nil {
		if idxErr := cc.BleveRepo.UpdateCitoyen(*updated); idxErr != nil {
			config.Logger.Warn("Failed to refresh citoyen index after update",
				zap.Error(idxErr),
				zap.String("citoyenID", id.String()))
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Citoyen updated",
		"data":    updated,
	})
}
