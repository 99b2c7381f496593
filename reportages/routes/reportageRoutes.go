package routes

import (
	indexing_repository "steg-backend/bleve/repositories"
	controllers "steg-backend/reportages/controllers"
	"steg-backend/reportages/repositories"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ReportageInitRoutes(
	app *fiber.App,
	reportageRepo repositories.ReportageRepository,
	bleveInterfaceRepo indexing_repository.BleveRepositoryInterface,
	db *gorm.DB,
) {
	reportageController := &controllers.ReportageController{
		ReportageRepo: reportageRepo,
		DB:            db,
		BleveRepo:     bleveInterfaceRepo,
	}

	api := app.Group("/api/v1")

	api.Post("/reportages", reportageController.CreateReportageController)
	api.Get("/reportages/filtered", reportageController.GetFilteredReportagesController)
	api.Patch("/reportages/:id/decision", reportageController.DecideReportageController)
}
