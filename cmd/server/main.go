package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"fitmanager/internal/config"
	"fitmanager/internal/database"
	"fitmanager/internal/handlers"
	"fitmanager/internal/logging"
	"fitmanager/internal/services"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Initialize structured logging (JSON in production, text in dev)
	logging.Init()

	log.Println("🚀 Starting FitManager Server...")

	// Load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  No .env file found or error loading it: %v", err)
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	// Load configuration
	cfg := config.Load()
	log.Printf("📋 Configuration loaded (Port: %s, Model: %s)", cfg.Port, cfg.AnthropicModel)

	// Initialize database
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Initialize(); err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize model client
	claude, err := services.NewClaudeClient(services.ClaudeConfig{
		BaseURL:   cfg.AnthropicBaseURL,
		APIKey:    cfg.AnthropicAPIKey,
		Model:     cfg.AnthropicModel,
		MaxTokens: cfg.MaxTokens,
		Timeout:   cfg.RequestTimeout,
	})
	if err != nil {
		log.Fatalf("❌ Failed to initialize model client: %v", err)
	}

	// Initialize services
	services.InitMetrics()
	templateService, err := services.NewTemplateService()
	if err != nil {
		log.Fatalf("❌ Failed to load template library: %v", err)
	}
	recordService := services.NewRecordService(db)
	programService := services.NewProgramService(db)
	profileService := services.NewProfileService()
	promptService := services.NewPromptService(templateService)
	generationService := services.NewGenerationService(claude)
	extractionService := services.NewExtractionService()

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	generateHandler := handlers.NewGenerateHandler(recordService, profileService, promptService, generationService, extractionService)
	programHandler := handlers.NewProgramHandler(programService)
	recordHandler := handlers.NewRecordHandler(recordService)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:   "FitManager Server",
		BodyLimit: 10 * 1024 * 1024,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))

	// Prometheus metrics
	prometheus := fiberprometheus.New("fitmanager")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Routes
	app.Get("/health", healthHandler.Handle)

	api := app.Group("/api")
	api.Post("/generate", generateHandler.Start)
	api.Put("/generate", generateHandler.Continue)

	api.Post("/clienti", recordHandler.CreateClient)
	api.Get("/clienti/:id", recordHandler.GetClient)
	api.Get("/clienti/:id/anamnesi/latest", recordHandler.GetLatestIntake)
	api.Get("/clienti/:id/programmi", programHandler.ListByClient)
	api.Post("/anamnesi", recordHandler.CreateIntake)
	api.Post("/misurazioni", recordHandler.CreateMeasurement)

	api.Post("/programmi", programHandler.Create)
	api.Get("/programmi/:id", programHandler.Get)
	api.Patch("/programmi/:id/stato", programHandler.UpdateStatus)
	api.Get("/programmi/:id/export", programHandler.Export)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Error during shutdown: %v", err)
		}
	}()

	log.Printf("🌐 Server listening on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Server error: %v", err)
	}

	log.Println("👋 Server stopped")
}
