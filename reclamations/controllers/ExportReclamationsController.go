package controllers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"steg-backend/config"
	"steg-backend/reclamations/services"
	"steg-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const exportCacheResource = "reclamation_exports"
const exportCacheTTL = 24 * time.Hour

func (rc *ReclamationController) exportFilters(c *fiber.Ctx) map[string]string {
	return map[string]string{
		"query":      c.Query("query"),
		"etat":       c.Query("etat"),
		"importance": c.Query("importance"),
		"equipe_id":  c.Query("equipe_id"),
		"archived":   c.Query("archived"),
		"date_from":  c.Query("date_from"),
		"date_to":    c.Query("date_to"),
	}
}

// ExportReclamationsCSVController streams the filtered réclamation set as a
// CSV attachment with the fixed dashboard header.
func (rc *ReclamationController) ExportReclamationsCSVController(c *fiber.Ctx) error {
	filters := rc.exportFilters(c)

	reclamations, err := rc.ReclamationRepo.GetReclamationsForExport(filters)
	if err != nil {
		config.Logger.Error("Failed to fetch réclamations for CSV export", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch réclamations",
		})
	}

	csv := utils.GenerateCSV(services.ToExportRows(reclamations), utils.ReclamationCSVHeader)

	fileName := fmt.Sprintf("reclamations_%s.csv", utils.Today().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, fileName))
	return c.SendString(csv)
}

// ExportReclamationsExcelController generates (or reuses) an Excel export
// for the current filter set. Identical queries within the cache TTL get the
// previously generated file.
func (rc *ReclamationController) ExportReclamationsExcelController(c *fiber.Ctx) error {
	filters := rc.exportFilters(c)

	redisClient, _ := c.Locals("redis").(*redis.Client)

	// The search key is stable for a filter shape; lookups scan for it.
	searchKey, _ := utils.GenerateHash(exportCacheResource, filters, 0, 0)

	if redisClient != nil {
		if cachedPath, err := utils.FindMatchingFile(redisClient, searchKey); err == nil {
			config.Logger.Info("Excel export served from cache", zap.String("file", cachedPath))
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"message": "Export ready",
				"data":    fiber.Map{"download_url": utils.GetDownloadURL(c, cachedPath)},
			})
		} else if !errors.Is(err, redis.Nil) {
			config.Logger.Warn("Export cache lookup failed", zap.Error(err))
		}
	}

	reclamations, err := rc.ReclamationRepo.GetReclamationsForExport(filters)
	if err != nil {
		config.Logger.Error("Failed to fetch réclamations for Excel export", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch réclamations",
		})
	}

	filePath, err := utils.GenerateExcel(
		services.ToExportRows(reclamations),
		"reclamations",
		utils.ReclamationCSVHeader,
	)
	if err != nil {
		config.Logger.Error("Failed to generate Excel export", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate export",
		})
	}

	if redisClient != nil {
		if err := redisClient.Set(context.Background(), searchKey, filePath, exportCacheTTL).Err(); err != nil {
			config.Logger.Warn("Failed to cache export path", zap.Error(err))
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Export ready",
		"data":    fiber.Map{"download_url": utils.GetDownloadURL(c, filePath)},
	})
}
