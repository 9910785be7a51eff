package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/eth-jashan/ai-restaurant-pos/docs"
	"github.com/eth-jashan/ai-restaurant-pos/internal/adapter/api/controller"
	"github.com/eth-jashan/ai-restaurant-pos/internal/adapter/repository"
	"github.com/eth-jashan/ai-restaurant-pos/internal/infrastructure/database"
	"github.com/eth-jashan/ai-restaurant-pos/pkg/assistant"
	"github.com/eth-jashan/ai-restaurant-pos/pkg/auth"
	"github.com/eth-jashan/ai-restaurant-pos/pkg/logger"
)

// App holds the application and its dependencies
type App struct {
	router      *gin.Engine
	db          *pgxpool.Pool
	logger      logger.Logger
	jwtService  *auth.JWTService
	stopSweeper context.CancelFunc

	assistantController *controller.AssistantController
	authController      *controller.AuthController
	menuController      *controller.MenuController
	tableController     *controller.TableController
}

// NewApp wires the application together
func NewApp(ctx context.Context) (*App, error) {
	log := logger.NewLogger()

	db, err := database.NewPostgresPool(ctx)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	jwtService, err := auth.NewJWTService()
	if err != nil {
		db.Close()
		return nil, err
	}

	menuRepo := repository.NewMenuRepository(db)
	tableRepo := repository.NewTableRepository(db)
	salesRepo := repository.NewSalesRepository(db)
	convRepo := repository.NewConversationRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	userRepo := repository.NewUserRepository(db)
	restaurantRepo := repository.NewRestaurantRepository(db)

	// a nil *GeminiClient must stay out of the interface so the classifier
	// can detect the disabled state
	var completion assistant.CompletionClient
	if gc := assistant.NewGeminiClientFromEnv(log); gc != nil {
		completion = gc
	}

	classifier := assistant.NewClassifier(completion, log)
	applier := assistant.NewActionApplier(menuRepo, auditRepo, log)
	registry := assistant.NewRegistry(applier, assistant.DefaultActionTTL, log)

	sweeperCtx, stopSweeper := context.WithCancel(ctx)
	registry.StartSweeper(sweeperCtx, time.Minute)

	service := assistant.NewService(
		classifier,
		registry,
		applier,
		nil,
		menuRepo,
		tableRepo,
		salesRepo,
		convRepo,
		restaurantRepo,
		log,
	)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	return &App{
		router:      router,
		db:          db,
		logger:      log,
		jwtService:  jwtService,
		stopSweeper: stopSweeper,

		assistantController: controller.NewAssistantController(service, log),
		authController:      controller.NewAuthController(userRepo, jwtService, log),
		menuController:      controller.NewMenuController(menuRepo, log),
		tableController:     controller.NewTableController(tableRepo, log),
	}, nil
}

// SetupRoutes registers the application routes
func (a *App) SetupRoutes(basePath string) {
	api := a.router.Group(basePath)

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	api.POST("/auth/login", a.authController.Login)

	protected := api.Group("")
	protected.Use(auth.JWTAuthMiddleware(a.jwtService))

	aiRoutes := protected.Group("/ai")
	{
		aiRoutes.POST("/message", a.assistantController.ProcessMessage)
		aiRoutes.POST("/confirm", a.assistantController.ConfirmAction)
		aiRoutes.POST("/cancel", a.assistantController.CancelAction)
		aiRoutes.GET("/conversations/:id/messages", a.assistantController.GetHistory)
	}

	menuRoutes := protected.Group("/menu")
	{
		menuRoutes.GET("/categories", a.menuController.ListCategories)
		menuRoutes.GET("/items", a.menuController.ListItems)
		menuRoutes.PUT("/items/:id/price", a.menuController.UpdatePrice)
		menuRoutes.PUT("/items/:id/availability", a.menuController.SetAvailability)
	}

	protected.GET("/tables", a.tableController.ListTables)

	a.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// Start runs the HTTP server
func (a *App) Start() error {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	a.logger.Info("starting server", "port", port)
	return a.router.Run(":" + port)
}

// Close releases the application resources
func (a *App) Close() {
	if a.stopSweeper != nil {
		a.stopSweeper()
	}
	if a.db != nil {
		a.db.Close()
	}
}

func corsOrigins() []string {
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		return []string{origins}
	}
	return []string{"http://localhost:3000"}
}
