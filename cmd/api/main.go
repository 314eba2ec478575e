package main

import (
	"context"
	"log"
	"os"

	_ "fiscaltrack/api/swagger" // swagger docs
	"fiscaltrack/internal/database"
	"fiscaltrack/internal/handler"
	"fiscaltrack/internal/middleware"
	"fiscaltrack/internal/repository"
	"fiscaltrack/internal/service"
	"fiscaltrack/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           FiscalTrack API
// @version         1.0
// @description     Fiscal obligation tracking: clients, obligations, payments, and due-date alerts.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbSslMode := os.Getenv("DB_SSLMODE")

	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == "" {
		dbPort = "5432"
	}
	if dbUser == "" {
		dbUser = "postgres"
	}
	if dbPassword == "" {
		dbPassword = "postgres"
	}
	if dbName == "" {
		dbName = "fiscaltrack"
	}
	if dbSslMode == "" {
		dbSslMode = "disable"
	}

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	clientRepo := repository.NewClientRepository(db)
	typeRepo := repository.NewObligationTypeRepository(db)
	obligationRepo := repository.NewObligationRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	alertRepo := repository.NewAlertRepository(db)
	userRepo := repository.NewUserRepository(db)

	if err := database.SeedObligationTypes(context.Background(), typeRepo); err != nil {
		log.Fatalf("Seeding obligation types failed: %v", err)
	}

	clientService := service.NewClientService(clientRepo)
	typeService := service.NewObligationTypeService(typeRepo)
	obligationService := service.NewObligationService(obligationRepo, clientRepo, typeRepo)
	paymentService := service.NewPaymentService(paymentRepo, obligationRepo, txManager)
	alertService := service.NewAlertService(alertRepo, obligationRepo, wsHub)
	statisticsService := service.NewStatisticsService(db)
	userService := service.NewUserService(userRepo, middleware.GetJWTSecret())

	// Initialize Handlers
	clientHandler := handler.NewClientHandler(clientService)
	obligationHandler := handler.NewObligationHandler(obligationService, typeService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	alertHandler := handler.NewAlertHandler(alertService)
	statisticsHandler := handler.NewStatisticsHandler(statisticsService)
	userHandler := handler.NewUserHandler(userService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"} // Frontend URL
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint for live alert notifications
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	userHandler.RegisterRoutes(router.Group(""))
	clientHandler.RegisterRoutes(router.Group(""))
	obligationHandler.RegisterRoutes(router.Group(""))
	paymentHandler.RegisterRoutes(router.Group(""))
	alertHandler.RegisterRoutes(router.Group(""))
	statisticsHandler.RegisterRoutes(router.Group(""))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
