package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"

	"github.com/codebusters-club/recruitment-api/internal/config"
	"github.com/codebusters-club/recruitment-api/internal/constants"
	"github.com/codebusters-club/recruitment-api/internal/database"
	"github.com/codebusters-club/recruitment-api/internal/handlers"
	"github.com/codebusters-club/recruitment-api/internal/middleware"
	"github.com/codebusters-club/recruitment-api/internal/repository"
	"github.com/codebusters-club/recruitment-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if cfg.DBDriver == "postgres" {
		if err := database.AddIndexes(database.GetDB()); err != nil {
			log.Fatalf("Failed to add indexes: %v", err)
		}
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction, // true in production (HTTPS), false in development
		SameSite: 2,            // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Repositories
	db := database.GetDB()
	appRepo := repository.NewApplicationRepository(db)
	slotRepo := repository.NewSlotRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)

	// Outbound collaborators. All optional: missing config degrades to
	// logging instead of sending.
	var notifier services.Notifier
	if cfg.SMTPHost != "" {
		notifier = services.NewSMTPMailer(cfg)
	} else {
		log.Println("SMTP not configured, emails will be logged only")
		notifier = services.LogNotifier{}
	}

	var calendar services.Calendar
	if cfg.CalendarAPIURL != "" {
		calendar = services.NewHTTPCalendar(cfg.CalendarAPIURL)
	}

	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	}

	// Services
	authService := services.NewAuthService(cfg)
	interviewService := services.NewInterviewService(appRepo, slotRepo, notifier, calendar)
	appService := services.NewApplicationService(appRepo, interviewService)
	taskService := services.NewTaskService(taskRepo, assignmentRepo, appRepo, notifier, services.SimulatedRunner{}, aiService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	appHandler := handlers.NewApplicationHandler(appService)
	interviewHandler := handlers.NewInterviewHandler(interviewService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Recruitment API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Public application form
		api.POST("/apply", appHandler.Create)

		// Candidate-facing assignment endpoints (opened via mailed link)
		api.GET("/assignments/:id", taskHandler.GetAssignment)
		api.POST("/assignments/:id/submit", taskHandler.Submit)

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetProfile)
		}

		// Application routes (protected)
		apps := api.Group("/applications")
		apps.Use(middleware.RequireAuth())
		{
			apps.GET("", appHandler.List)
			apps.GET("/stats", appHandler.Stats)
			apps.GET("/export", appHandler.Export)
			apps.GET("/:id", appHandler.Get)
			apps.PATCH("/:id", appHandler.Update)
			apps.PATCH("/:id/status", appHandler.UpdateStatus)
			apps.PATCH("/bulk-status", appHandler.BulkUpdateStatus)
			apps.DELETE("/:id", appHandler.Delete)
			apps.GET("/:id/assignments", taskHandler.ListApplicationAssignments)
			apps.POST("/:id/reschedule", interviewHandler.Reschedule)
		}

		// Interview routes (protected)
		interviews := api.Group("/interviews")
		interviews.Use(middleware.RequireAuth())
		{
			interviews.GET("/slots", interviewHandler.ListSlots)
			interviews.POST("/slots", interviewHandler.CreateSlots)
			interviews.POST("/provision", interviewHandler.AutoProvision)
			interviews.POST("/auto-assign", interviewHandler.AutoAssign)
			interviews.GET("/export", interviewHandler.Export)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.POST("/generate", taskHandler.Generate)
			tasks.GET("/stats", taskHandler.Stats)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
			tasks.POST("/:id/assign", taskHandler.Assign)
			tasks.GET("/:id/assignments", taskHandler.ListAssignments)
		}

		// Evaluation is admin-only
		api.POST("/assignments/:id/evaluate", middleware.RequireAuth(), taskHandler.Evaluate)
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
