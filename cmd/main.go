package main

import (
	"context"

	"steg-backend/config"
	"steg-backend/middleware"
	"steg-backend/token"
	"steg-backend/utils"

	// Repositories
	citoyens_repositories "steg-backend/citoyens/repositories"
	equipes_repositories "steg-backend/equipes/repositories"
	plaintes_repositories "steg-backend/plaintes/repositories"
	reclamations_repositories "steg-backend/reclamations/repositories"
	reportages_repositories "steg-backend/reportages/repositories"
	users_repositories "steg-backend/users/repositories"

	// Routes
	citoyen_routes "steg-backend/citoyens/routes"
	equipe_routes "steg-backend/equipes/routes"
	plainte_routes "steg-backend/plaintes/routes"
	reclamation_routes "steg-backend/reclamations/routes"
	reportage_routes "steg-backend/reportages/routes"
	user_routes "steg-backend/users/routes"

	// Bleve
	bleveControllers "steg-backend/bleve/controllers"
	bleveRepositories "steg-backend/bleve/repositories"
	bleveRoutes "steg-backend/bleve/routes"
	bleveServices "steg-backend/bleve/services"

	"steg-backend/internal/bootstrap"
	internal_services "steg-backend/internal/services"
	"steg-backend/internal/tasks"
	plainte_services "steg-backend/plaintes/services"
	"steg-backend/seeds"
	"steg-backend/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	config.InitLogger()

	if err := godotenv.Load(".env"); err != nil {
		config.Logger.Warn("No .env file loaded, relying on environment", zap.Error(err))
	}

	app := fiber.New()
	middleware.InitCors(app)

	db := config.ConfigureDatabase()
	port := config.GetEnvOr("PORT", "8080")
	ctx := context.Background()

	redisClient := config.InitRedisServer(ctx)
	utils.InitCache(redisClient)

	redisAddr := config.GetEnvOr("REDIS_ADDRESS", "localhost:6379")
	redisPassword := config.GetEnv("REDIS_PASSWORD")

	// Email delivery runs through the task queue, in-process worker.
	tasks.InitClient(redisAddr, redisPassword)
	defer tasks.CloseClient()
	go tasks.RunWorker(redisAddr, redisPassword, db)

	tokenKey := config.GetEnv("TOKEN_SYMMETRIC_KEY")
	tokenMaker, err := token.NewJWTMaker(tokenKey)
	if err != nil {
		config.Logger.Fatal("Cannot create token maker", zap.Error(err))
	}

	appCtx := &middleware.AppContext{
		TokenMaker:  tokenMaker,
		Ctx:         ctx,
		RedisClient: redisClient,
	}

	indexPath := config.GetEnvOr("BLEVE_INDEX_PATH", "./bleve_data")

	utils.InitializeMailer()
	if utils.GetMailer() == nil {
		config.Logger.Fatal("Mailer not initialized")
	}

	if err := utils.InitializeDateLocation(); err != nil {
		config.Logger.Fatal("Failed to initialize date location", zap.Error(err))
	}

	// Spam suggestions degrade gracefully when the key is absent.
	var geminiSvc *internal_services.GeminiService
	if apiKey := config.GetGeminiAPIKey(); apiKey != "" {
		geminiSvc, err = internal_services.NewGeminiService(apiKey)
		if err != nil {
			config.Logger.Error("Failed to create Gemini service, spam suggestions disabled", zap.Error(err))
			geminiSvc = nil
		} else {
			geminiSvc.StartCacheCleanup()
		}
	} else {
		config.Logger.Warn("GEMINI_API_KEY not set, spam suggestions disabled")
	}

	wsHub := websocket.NewHub()
	go wsHub.Run()

	app.Static("/public", "./public")

	// Export controllers cache generated files through the request-scoped
	// Redis client.
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("redis", redisClient)
		return c.Next()
	})

	// Repositories
	fileStorage := utils.NewLocalFileStorage("./public/attachments")

	bleveIndexingService := bleveServices.NewIndexingService(config.Logger, indexPath)
	_, bleveInterfaceRepo := bleveRepositories.NewBleveRepository(bleveIndexingService)
	userRepo := users_repositories.NewUserRepository(db)
	citoyenRepo := citoyens_repositories.NewCitoyenRepository(db)
	reclamationRepo := reclamations_repositories.NewReclamationRepository(db)
	plainteRepo := plaintes_repositories.NewPlainteRepository(db)
	reportageRepo := reportages_repositories.NewReportageRepository(db)
	equipeRepo := equipes_repositories.NewEquipeRepository(db)

	// Routes
	user_routes.UsersInitRoutes(app, userRepo, appCtx, db)
	citoyen_routes.CitoyenInitRoutes(app, citoyenRepo, bleveInterfaceRepo, db)
	reclamation_routes.ReclamationInitRoutes(app, reclamationRepo, bleveInterfaceRepo, wsHub, db)
	plainte_routes.PlainteInitRoutes(app, plainteRepo, geminiSvc, fileStorage, db)
	reportage_routes.ReportageInitRoutes(app, reportageRepo, bleveInterfaceRepo, db)
	equipe_routes.EquipeInitRoutes(app, equipeRepo, db)

	bleveController := bleveControllers.NewSearchController(bleveInterfaceRepo)
	bleveRoutes.InitBleveRoutes(app, bleveController)

	// WebSocket endpoint: réclamation live feed, calendar and chat threads.
	chatService := plainte_services.NewChatService(plainteRepo)
	wsHandler := websocket.NewWsHandler(wsHub, tokenMaker, chatService)
	app.Get("/ws", wsHandler.HandleWebSocket)

	go utils.RunScheduledCleanup(redisClient)

	// Rebuild search indices from Postgres so they never drift.
	bootstrap.IndexBleveData(ctx, citoyenRepo, reclamationRepo, bleveInterfaceRepo)

	if err := config.SeedDummyInitialUser(db); err != nil {
		config.Logger.Error("Initial user seeding failed", zap.Error(err))
	}
	if err := seeds.SeedAll(db); err != nil {
		config.Logger.Error("Database seeding failed", zap.Error(err))
	}

	if config.GetEnv("BACKUP_ON_BOOT") == "true" {
		if err := config.BackupDatabase(); err != nil {
			config.Logger.Error("Database backup failed", zap.Error(err))
		}
	}

	config.Logger.Info("Server starting", zap.String("port", port))
	config.Logger.Fatal("Server failed", zap.Error(app.Listen(":"+port)))
}
