package controllers

import (
	"steg-backend/config"
	"steg-backend/utils/pagination"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GetFilteredReclamationsController serves the paginated dashboard list.
func (rc *ReclamationController) GetFilteredReclamationsController(c *fiber.Ctx) error {
	params := pagination.ParsePaginationParams(c)
	if err := pagination.ValidatePaginationParams(params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	offset := (params.Page - 1) * params.PageSize

	reclamations, total, err := rc.ReclamationRepo.GetFilteredReclamations(params.PageSize, offset, params.Filters)
	if err != nil {
		config.Logger.Error("Failed to fetch filtered réclamations", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch réclamations",
		})
	}

	return c.Status(fiber.StatusOK).JSON(pagination.NewPaginatedResponse(c, reclamations, total, params))
}

// GetRecentReclamationsController feeds the dashboard's recent-activity
// panel.
func (rc *ReclamationController) GetRecentReclamationsController(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 5)
	if limit <= 0 || limit > 50 {
		limit = 5
	}

	reclamations, err := rc.ReclamationRepo.GetRecentReclamations(limit)
	if err != nil {
		config.Logger.Error("Failed to fetch recent réclamations", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch recent réclamations",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": reclamations,
	})
}
