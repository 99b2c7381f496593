package routes

import (
	indexing_repository "steg-backend/bleve/repositories"
	controllers "steg-backend/reclamations/controllers"
	"steg-backend/reclamations/repositories"
	"steg-backend/websocket"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ReclamationInitRoutes(
	app *fiber.App,
	reclamationRepo repositories.ReclamationRepository,
	bleveInterfaceRepo indexing_repository.BleveRepositoryInterface,
	hub *websocket.Hub,
	db *gorm.DB,
) {
	reclamationController := &controllers.ReclamationController{
		ReclamationRepo: reclamationRepo,
		DB:              db,
		BleveRepo:       bleveInterfaceRepo,
		Hub:             hub,
	}

	api := app.Group("/api/v1")

	api.Post("/reclamations", reclamationController.CreateReclamationController)
	api.Get("/reclamations/filtered", reclamationController.GetFilteredReclamationsController)
	api.Get("/reclamations/recent", reclamationController.GetRecentReclamationsController)
	api.Patch("/reclamations/:id/etat", reclamationController.UpdateReclamationEtatController)
	api.Patch("/reclamations/:id/equipe", reclamationController.AssignEquipeController)
	api.Patch("/reclamations/:id/archive", reclamationController.ArchiveReclamationController)
	api.Get("/reclamations/export/csv", reclamationController.ExportReclamationsCSVController)
	api.Get("/reclamations/export/excel", reclamationController.ExportReclamationsExcelController)
	api.Get("/reclamations/export/report", reclamationController.GenerateReclamationReportController)
}
