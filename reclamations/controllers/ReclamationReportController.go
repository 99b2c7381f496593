package controllers

import (
	"fmt"

	"steg-backend/config"
	"steg-backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GenerateReclamationReportController renders the filtered réclamation list
// as a PDF snapshot and returns its download URL.
func (rc *ReclamationController) GenerateReclamationReportController(c *fiber.Ctx) error {
	filters := rc.exportFilters(c)

	reclamations, err := rc.ReclamationRepo.GetReclamationsForExport(filters)
	if err != nil {
		config.Logger.Error("Failed to fetch réclamations for report", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch réclamations",
		})
	}

	period := "toutes périodes"
	if filters["date_from"] != "" || filters["date_to"] != "" {
		period = fmt.Sprintf("%s - %s", filters["date_from"], filters["date_to"])
	}

	generatedBy := c.Query("generated_by", "dispatching")
	fileName := fmt.Sprintf("rapport_reclamations_%s.pdf", utils.Today().Format("2006-01-02_15-04-05"))

	filePath, err := utils.GenerateReclamationReport(reclamations, generatedBy, period, fileName)
	if err != nil {
		config.Logger.Error("Failed to generate réclamation report", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate report",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Report generated",
		"data":    fiber.Map{"download_url": utils.GetDownloadURL(c, filePath)},
	})
}
