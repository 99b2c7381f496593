package routes

import (
	controllers "steg-backend/equipes/controllers"
	"steg-backend/equipes/repositories"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func EquipeInitRoutes(
	app *fiber.App,
	equipeRepo repositories.EquipeRepository,
	db *gorm.DB,
) {
	equipeController := &controllers.EquipeController{
		EquipeRepo: equipeRepo,
		DB:         db,
	}

	api := app.Group("/api/v1")

	api.Post("/equipes", equipeController.CreateEquipeController)
	api.Get("/equipes/filtered", equipeController.GetFilteredEquipesController)
	api.Post("/technicien/save", equipeController.SaveTechnicienController)
	api.Get("/techniciens/filtered", equipeController.GetFilteredTechniciensController)
	api.Post("/service-intervention/save", equipeController.SaveServiceInterventionController)
}
