package routes

import (
	"steg-backend/internal/services"
	controllers "steg-backend/plaintes/controllers"
	"steg-backend/plaintes/repositories"
	"steg-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func PlainteInitRoutes(
	app *fiber.App,
	plainteRepo repositories.PlainteRepository,
	geminiSvc *services.GeminiService,
	fileStorage utils.FileStorage,
	db *gorm.DB,
) {
	plainteController := &controllers.PlainteController{
		PlainteRepo: plainteRepo,
		DB:          db,
		GeminiSvc:   geminiSvc,
		Files:       fileStorage,
	}

	api := app.Group("/api/v1")

	api.Post("/plaintes", plainteController.CreatePlainteController)
	api.Get("/plaintes/filtered", plainteController.GetFilteredPlaintesController)
	api.Patch("/plaintes/:id/verify", plainteController.VerifyPlainteController)
	api.Patch("/plaintes/:id/archive", plainteController.ArchivePlainteController)
	api.Get("/plaintes/:id/spam-suggestion", plainteController.SuggestSpamController)
}
