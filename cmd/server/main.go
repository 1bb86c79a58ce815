package main

import (
	"context"
	"log"
	"time"

	"content-tracker-report/internal/api"
	"content-tracker-report/internal/config"
	"content-tracker-report/internal/database"
	"content-tracker-report/internal/services"
	"content-tracker-report/internal/validation"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Load the task schema used to validate feed documents
	validator, err := validation.NewTaskValidator("schemas/task_schema.json")
	if err != nil {
		log.Fatalf("Failed to load task schema: %v", err)
	}

	// Initialize MongoDB client
	mongoClient, err := database.NewMongoDBClient(cfg.MongoDB, validator)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoClient.Close()

	// Initialize the snapshot mirror and load the initial snapshot
	snapshotService := services.NewSnapshotService(mongoClient)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := snapshotService.Refresh(ctx); err != nil {
		log.Printf("WARNING: Initial snapshot load failed, starting empty: %v", err)
	}
	cancel()

	// Optional AI summaries for report headers
	var insightsService *services.InsightsService
	if cfg.OpenAI.APIKey != "" {
		insightsService = services.NewInsightsService(cfg.OpenAI)
	} else {
		log.Printf("OpenAI API key not configured, report summaries disabled")
	}

	reportService := services.NewReportService(snapshotService, insightsService)
	workflowService := services.NewWorkflowService(mongoClient, snapshotService)
	pdfService := services.NewPDFService()
	excelService := services.NewExcelService()

	// Optional scheduled email reports
	var schedulerService *services.SchedulerService
	if cfg.Email.APIKey != "" && cfg.Email.ReportRecipient != "" {
		emailService := services.NewEmailService(cfg.Email)
		schedulerService = services.NewSchedulerService(
			reportService,
			emailService,
			pdfService,
			cfg.Email.ReportRecipient,
		)
		if err := schedulerService.Start(cfg.Report.Schedule); err != nil {
			log.Fatalf("Failed to start report scheduler: %v", err)
		}
		defer schedulerService.Stop()
	} else {
		log.Printf("SendGrid not fully configured, scheduled email reports disabled")
	}

	// Websocket hub pushes snapshot-change events to connected clients
	hub := api.NewHub()
	hub.Attach(snapshotService)

	// Start the background refresh loop
	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	go snapshotService.Watch(watchCtx, cfg.Feed.RefreshInterval)

	// Initialize handlers
	handlers := api.NewHandlers(
		snapshotService,
		workflowService,
		reportService,
		schedulerService,
		pdfService,
		excelService,
		hub,
	)

	// Setup routes
	router := api.SetupRoutes(handlers)

	// Start server
	addr := cfg.Server.Host + ":" + cfg.Server.Port
	log.Printf("Server starting on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
