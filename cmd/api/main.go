package main

import (
	"context"
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

	"github.com/Vishal-jain-01/kuvakaBackendAssignment/internal/config"
	"github.com/Vishal-jain-01/kuvakaBackendAssignment/internal/handlers"
	"github.com/Vishal-jain-01/kuvakaBackendAssignment/internal/repositories"
	"github.com/Vishal-jain-01/kuvakaBackendAssignment/internal/services"
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
	offerRepo := repositories.NewOfferRepository(db)
	leadRepo := repositories.NewLeadRepository(db)
	resultRepo := repositories.NewResultRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	pdfParser := services.NewPDFParserService()
	csvService := services.NewCSVService()
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI. Without a key the classifier runs heuristic-only.
	var geminiService services.GeminiService
	if cfg.Gemini.APIKey != "" {
		geminiService, err = services.NewGeminiService(cfg.Gemini.APIKey)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
		}
		log.Println("✅ Gemini AI initialized successfully")
	} else {
		log.Println("⚠️  GEMINI_API_KEY not set, intent classification uses the fallback heuristic")
	}

	// Initialize the playbook retriever when both Gemini and Qdrant are
	// configured. Scoring works without it; retrieval only enriches the
	// classification prompt.
	var retriever services.ContextRetriever
	if geminiService != nil && cfg.Qdrant.URL != "" {
		qdrantService, err := services.NewQdrantService(
			cfg.Qdrant.URL,
			cfg.Qdrant.APIKey,
			cfg.Qdrant.Collection,
		)
		if err != nil {
			log.Printf("⚠️  Failed to initialize Qdrant, continuing without playbook context: %v\n", err)
		} else if err := qdrantService.InitCollection(); err != nil {
			log.Printf("⚠️  Failed to initialize Qdrant collection, continuing without playbook context: %v\n", err)
		} else {
			retriever = services.NewPlaybookRetriever(geminiService, qdrantService)
			log.Println("✅ Qdrant playbook retriever initialized")
		}
	}

	// Initialize the scoring pipeline
	ruleEngine := services.NewRuleEngine(services.DefaultKeywords())
	classifier := services.NewIntentClassifier(
		geminiService,
		retriever,
		cfg.Gemini.Timeout,
		cfg.Gemini.MaxRetries,
	)
	scoringService := services.NewScoringService(ruleEngine, classifier)
	runService := services.NewRunService(offerRepo, leadRepo, resultRepo, scoringService)
	log.Println("✅ Scoring services initialized")

	// Initialize worker
	worker := services.NewWorker(resultRepo, runService, cfg.Worker.Concurrency)

	ctx := context.Background()
	worker.Start(ctx)
	log.Println("✅ Worker started successfully")

	// Initialize handlers
	offerHandler := handlers.NewOfferHandler(offerRepo, storageService, pdfParser, cfg.Storage.MaxFileSize)
	leadsHandler := handlers.NewLeadsHandler(leadRepo, storageService, csvService, cfg.Storage.MaxFileSize)
	scoreHandler := handlers.NewScoreHandler(offerRepo, leadRepo, resultRepo, worker)
	resultHandler := handlers.NewResultHandler(resultRepo)
	exportHandler := handlers.NewExportHandler(resultRepo, csvService)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Lead Qualification API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
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
	api.Post("/offer", offerHandler.HandleCreateOffer)
	api.Post("/offer/brochure", offerHandler.HandleUploadBrochure)
	api.Post("/leads/upload", leadsHandler.HandleUploadLeads)
	api.Post("/score", scoreHandler.HandleScore)
	api.Get("/result/:id", resultHandler.HandleGetResult)
	api.Get("/results/latest", resultHandler.HandleLatestResult)
	api.Get("/results/latest/export", exportHandler.HandleExport)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Lead Qualification API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/offer",
				"POST /api/v1/offer/brochure",
				"POST /api/v1/leads/upload",
				"POST /api/v1/score",
				"GET /api/v1/result/:id",
				"GET /api/v1/results/latest",
				"GET /api/v1/results/latest/export",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
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
