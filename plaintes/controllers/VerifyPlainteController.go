package controllers

import (
	"errors"

	"steg-backend/config"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// VerifyPlainteController moves a plainte from NON_VERIFIE to VERIFIE.
func (pc *PlainteController) VerifyPlainteController(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid plainte ID",
		})
	}

	plainte, err := pc.PlainteRepo.VerifyPlainte(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Plainte not found",
			})
		}
		config.Logger.Error("Failed to verify plainte",
			zap.Error(err),
			zap.String("plainteID", id.String()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to verify plainte",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Plainte verified",
		"data":    plainte,
	})
}

type archivePlainteRequest struct {
	Archived bool `json:"archived"`
}

// ArchivePlainteController hides a plainte from the default lists.
func (pc *PlainteController) ArchivePlainteController(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid plainte ID",
		})
	}

	request := archivePlainteRequest{Archived: true}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&request); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid request payload",
				"error":   err.Error(),
			})
		}
	}

	plainte, err := pc.PlainteRepo.SetArchived(id, request.Archived)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Plainte not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to archive plainte",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Plainte archive state updated",
		"data":    plainte,
	})
}
