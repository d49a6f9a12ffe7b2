package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"classroom-env-monitoring/internal/config"
	"classroom-env-monitoring/internal/database"
	"classroom-env-monitoring/internal/handler"
	"classroom-env-monitoring/internal/middleware"
	"classroom-env-monitoring/internal/repository"
	"classroom-env-monitoring/internal/service"
	"classroom-env-monitoring/pkg/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. Load configuration
	cfg := config.LoadConfig()
	log.Println("Configuration loaded successfully")

	// 2. Initialize JWT utilities with config
	utils.InitJWT(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	// 3. Initialize database connection (once; shared by all repositories)
	db := database.Connect(cfg)
	defer database.Close(db)

	// 4. Initialize repositories
	roomRepo := repository.NewRoomRepo(db)
	sensorRepo := repository.NewSensorRepo(db)
	metricRepo := repository.NewMetricRepo(db)
	accountRepo := repository.NewAccountRepo(db)
	messageRepo := repository.NewMessageRepo(db)
	auditRepo := repository.NewAuditRepo(db)

	// 5. Initialize services
	authService := service.NewAuthService(accountRepo, auditRepo)
	roomService := service.NewRoomService(roomRepo, sensorRepo, auditRepo)
	sensorService := service.NewSensorService(sensorRepo)
	ingestService := service.NewIngestService(metricRepo, sensorRepo, roomRepo, cfg.Ingestion)
	metricService := service.NewMetricService(metricRepo, sensorRepo, cfg.Ingestion.DefaultMetricsLimit)
	analyticsService := service.NewAnalyticsService(roomRepo, sensorRepo)
	messageService := service.NewMessageService(messageRepo, roomRepo)

	// 6. Setup Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// 7. Setup Gin router
	r := gin.Default()

	// Apply CORS middleware
	r.Use(middleware.CORS(cfg))

	// 8. Register handlers
	authHandler := handler.NewAuthHandler(authService)
	roomHandler := handler.NewRoomHandler(roomService)
	sensorHandler := handler.NewSensorHandler(sensorService)
	gatewayHandler := handler.NewGatewayHandler(sensorService, ingestService, metricService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	messageHandler := handler.NewMessageHandler(messageService)

	// 9. Define routes
	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, gin.H{
			"status":  "healthy",
			"service": "classroom-env-monitoring",
		})
	})

	// Auth routes (public)
	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", authHandler.Logout)
	}

	// Sensor gateway routes (public, polled by physical devices)
	api := r.Group("/api")
	{
		api.POST("/add-sensor", gatewayHandler.RegisterSensor)
		api.POST("/add-metrics", gatewayHandler.AddMetrics)
		api.GET("/metrics", gatewayHandler.GetMetrics)
		api.PATCH("/sensors", gatewayHandler.RebindSensor)
	}

	// Dashboard routes (authenticated)
	dashboard := r.Group("/api")
	dashboard.Use(middleware.AuthMiddleware())
	{
		dashboard.GET("/rooms", roomHandler.GetAllRooms)
		dashboard.GET("/rooms/:id", roomHandler.GetRoom)
		dashboard.GET("/sensors", sensorHandler.GetAllSensors)
		dashboard.GET("/analytics", analyticsHandler.GetAnalytics)
		dashboard.GET("/analytics/occupancy", analyticsHandler.GetOccupancyStats)
		dashboard.POST("/messages", messageHandler.CreateMessage)

		// Admin-only routes
		dashboard.POST("/rooms", middleware.RequireAdmin(), roomHandler.CreateRoom)
		dashboard.PATCH("/rooms/:id", middleware.RequireAdmin(), roomHandler.UpdateRoom)
		dashboard.PATCH("/rooms/:id/acceptable", middleware.RequireAdmin(), roomHandler.UpdateAcceptable)
		dashboard.DELETE("/rooms/:id", middleware.RequireAdmin(), roomHandler.DeleteRoom)
		dashboard.PATCH("/sensors/:id", middleware.RequireAdmin(), sensorHandler.BindSensor)
		dashboard.GET("/messages", middleware.RequireAdmin(), messageHandler.GetMessages)
		dashboard.GET("/students", middleware.RequireAdmin(), authHandler.GetStudents)
		dashboard.DELETE("/students/:id", middleware.RequireAdmin(), authHandler.DeleteStudent)
	}

	// 10. Setup graceful shutdown
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		if err := r.Run(":" + cfg.Server.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")
	log.Println("Server exited")
}
