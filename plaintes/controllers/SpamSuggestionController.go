package controllers

import (
	"errors"

	"steg-backend/config"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SuggestSpamController asks the model for an advisory spam verdict on the
// plainte description, feeding the reportage decision. Purely advisory; the
// dispatcher decides.
func (pc *PlainteController) SuggestSpamController(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid plainte ID",
		})
	}

	if pc.GeminiSvc == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Spam suggestion is not configured",
		})
	}

	plainte, err := pc.PlainteRepo.GetPlainteByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Plainte not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load plainte",
		})
	}

	suggestion, err := pc.GeminiSvc.SuggestSpamVerdict(c.Context(), plainte.Description)
	if err != nil {
		config.Logger.Error("Spam suggestion failed",
			zap.Error(err),
			zap.String("plainteID", id.String()))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Spam suggestion unavailable",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": suggestion,
	})
}
