package routes

import (
	indexing_repository "steg-backend/bleve/repositories"
	controllers "steg-backend/citoyens/controllers"
	"steg-backend/citoyens/repositories"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func CitoyenInitRoutes(
	app *fiber.App,
	citoyenRepo repositories.CitoyenRepository,
	bleveInterfaceRepo indexing_repository.BleveRepositoryInterface,
	db *gorm.DB,
) {
	citoyenController := &controllers.CitoyenController{
		CitoyenRepo: citoyenRepo,
		DB:          db,
		BleveRepo:   bleveInterfaceRepo,
	}

	api := app.Group("/api/v1")

	api.Post("/citoyens", citoyenController.RegisterCitoyenController)
	api.Get("/citoyens/filtered", citoyenController.GetFilteredCitoyensController)
	api.Put("/citoyens/:id", citoyenController.UpdateCitoyenController)
	api.Patch("/citoyens/:id/block", citoyenController.BlockCitoyenController)
	api.Patch("/citoyens/:id/unblock", citoyenController.UnblockCitoyenController)
	api.Post("/citoyens/:id/references", citoyenController.AddReferenceController)
	api.Get("/citoyens/:id/references", citoyenController.GetReferencesController)
	api.Delete("/citoyens/:id/references/:referenceId", citoyenController.DeleteReferenceController)
}
