package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/career-compass/internal/config"
	"alfredoptarigan/career-compass/internal/handlers"
	"alfredoptarigan/career-compass/internal/repositories"
	"alfredoptarigan/career-compass/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	profileRepo := repositories.NewSkillProfileRepository(db)
	recommendationRepo := repositories.NewRecommendationRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// The deterministic hashing embedder keeps retrieval reproducible and
	// cache friendly; swap in services.NewGeminiEmbedder(geminiService) for
	// semantic similarity (requires a 768-dim collection).
	embedder := services.NewHashingEmbedder()

	// Initialize Qdrant
	qdrantService, err := services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
		embedder.Dimension(),
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := qdrantService.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
	}
	log.Println("✅ Qdrant initialized successfully")

	// Initialize pipeline services
	interviewService := services.NewInterviewService(
		geminiService,
		cfg.Interview.MaxTurns,
		cfg.Gemini.RetryMaxAttempts,
	)
	skillService := services.NewSkillInferenceService(
		geminiService,
		profileRepo,
		cfg.Gemini.RetryMaxAttempts,
	)
	recommendationService := services.NewRecommendationService(
		geminiService,
		embedder,
		qdrantService,
		recommendationRepo,
		cfg.Retrieval.TopK,
		cfg.Gemini.RetryMaxAttempts,
		cfg.Retrieval.Timeout,
	)
	log.Println("✅ Services initialized successfully")

	// Initialize handlers
	interviewHandler := handlers.NewInterviewHandler(interviewService, skillService, profileRepo)
	recommendationHandler := handlers.NewRecommendationHandler(recommendationService, profileRepo, recommendationRepo)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Career Compass API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/interview/questions", interviewHandler.HandleQuestions)
	api.Post("/interview/dynamic/start", interviewHandler.HandleStart)
	api.Post("/interview/dynamic/next", interviewHandler.HandleNext)
	api.Post("/interview/analyze", interviewHandler.HandleAnalyze)
	api.Get("/interview/result/:student_id", interviewHandler.HandleGetResult)
	api.Post("/career/recommendations", recommendationHandler.HandleRecommend)
	api.Get("/career/recommendations/:student_id", recommendationHandler.HandleGetStored)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Career Compass API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/interview/questions",
				"POST /api/v1/interview/dynamic/start",
				"POST /api/v1/interview/dynamic/next",
				"POST /api/v1/interview/analyze",
				"GET /api/v1/interview/result/:student_id",
				"POST /api/v1/career/recommendations",
				"GET /api/v1/career/recommendations/:student_id",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
