package main

import (
	_ "taxengine/api/swagger" // swagger docs
	"taxengine/internal/clock"
	"taxengine/internal/config"
	"taxengine/internal/database"
	"taxengine/internal/handler"
	"taxengine/internal/integrations/companydir"
	"taxengine/internal/integrations/journal"
	"taxengine/internal/jobs"
	"taxengine/internal/middleware"
	"taxengine/internal/repository"
	"taxengine/internal/service"
	"taxengine/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Advance Tax Assessment API
// @version         1.0
// @description     Computes corporate advance-tax liability, quarterly installment schedules, and Section 234B/234C interest.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	if err := godotenv.Load("configs/.env"); err != nil {
		log.Info("No configs/.env file found or error loading it")
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("configuration invalid")
	}
	if level, parseErr := logrus.ParseLevel(cfg.LogLevel); parseErr == nil {
		log.SetLevel(level)
	}

	rules, err := config.LoadRules(cfg.RegimeRulesPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load regime rules")
	}

	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	log.Info("connected to PostgreSQL")

	// Set up WebSocket Hub
	wsHub := websocket.NewHub(log)
	go wsHub.Run()

	clk := clock.System()

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	assessmentRepo := repository.NewAssessmentRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	scenarioRepo := repository.NewScenarioRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	statsRepo := repository.NewStatisticsRepository(db)

	journalClient := journal.NewClient(cfg, log)
	companyDir := companydir.NewClient(cfg, log)

	assessmentService := service.NewAssessmentService(assessmentRepo, scheduleRepo, paymentRepo, auditRepo, txManager, rules, clk, companyDir, wsHub, log)
	paymentService := service.NewPaymentService(paymentRepo, assessmentRepo, scheduleRepo, auditRepo, txManager, rules, clk, journalClient, wsHub, log)
	scenarioService := service.NewScenarioService(scenarioRepo, assessmentRepo, auditRepo, txManager, rules, clk, wsHub, log)
	regimeService := service.NewRegimeService(rules)
	statisticsService := service.NewStatisticsService(statsRepo, companyDir, clk)
	auditService := service.NewAuditService(auditRepo)

	// Initialize Handlers
	assessmentHandler := handler.NewAssessmentHandler(assessmentService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	scenarioHandler := handler.NewScenarioHandler(scenarioService)
	regimeHandler := handler.NewRegimeHandler(regimeService)
	statisticsHandler := handler.NewStatisticsHandler(statisticsService)
	auditHandler := handler.NewAuditHandler(auditService)

	// Nightly sweep keeping overdue flags and interest aligned with the calendar
	refresher := jobs.NewScheduleRefresher(assessmentService, cfg.OverdueRefreshCron, log)
	if err := refresher.Start(); err != nil {
		log.WithError(err).Fatal("failed to start schedule refresh job")
	}
	defer refresher.Stop()

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
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

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	assessmentHandler.RegisterRoutes(router.Group(""))
	paymentHandler.RegisterRoutes(router.Group(""))
	scenarioHandler.RegisterRoutes(router.Group(""))
	regimeHandler.RegisterRoutes(router.Group(""))
	statisticsHandler.RegisterRoutes(router.Group(""))
	auditHandler.RegisterRoutes(router.Group(""))

	log.WithField("port", cfg.Port).Info("server listening")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server failed")
	}
}
