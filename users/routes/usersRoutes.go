package routes

import (
	"steg-backend/middleware"
	controllers "steg-backend/users/controllers"
	"steg-backend/users/repositories"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func UsersInitRoutes(
	app *fiber.App,
	userRepo repositories.UserRepository,
	appCtx *middleware.AppContext,
	db *gorm.DB,
) {
	userController := &controllers.UserController{
		UserRepo:    userRepo,
		TokenMaker:  appCtx.TokenMaker,
		RedisClient: appCtx.RedisClient,
		Ctx:         appCtx.Ctx,
		DB:          db,
	}

	api := app.Group("/api/v1")

	// Login gets its own rate limit since it is the only credential
	// guessing surface.
	api.Post("/users/login", middleware.RateLimit(1, 5), userController.LoginUserController)
	api.Post("/users/logout", userController.LogoutUserController)

	protected := api.Group("/users", middleware.ProtectedRoute(appCtx))
	protected.Post("/", userController.CreateUserController)
	protected.Get("/filtered", userController.GetFilteredUsersController)
	protected.Put("/:id", userController.UpdateUserController)
	protected.Delete("/:id", userController.DeleteUserController)
}
