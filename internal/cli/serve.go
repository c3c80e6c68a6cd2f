package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/atelierware/folio/internal/api/handlers"
	"github.com/atelierware/folio/internal/config"
	"github.com/atelierware/folio/internal/database"
	"github.com/atelierware/folio/internal/openai"
	"github.com/atelierware/folio/internal/repository"
	"github.com/atelierware/folio/internal/server"
	"github.com/atelierware/folio/internal/service"
	"github.com/atelierware/folio/internal/storage"
	"github.com/atelierware/folio/internal/telemetry"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the folio API server on the specified port",
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	cmd.Flags().Bool("no-migrate", false, "Skip automatic database migrations on startup")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.SentryDSN != "" {
		environment := os.Getenv("ENVIRONMENT")
		if environment == "" {
			environment = "development"
		}

		// Default to 10% sampling in production, 100% in development
		sampleRate := 0.1
		if environment == "development" {
			sampleRate = 1.0
		}

		shutdownTelemetry, err := telemetry.Init(telemetry.Config{
			DSN:              cfg.SentryDSN,
			Environment:      environment,
			TracesSampleRate: sampleRate,
			Debug:            cfg.Debug,
		})
		if err != nil {
			log.Printf("telemetry init failed (continuing without tracing): %v", err)
		} else {
			defer shutdownTelemetry()
		}
	}

	portFlag, _ := cmd.Flags().GetString("port")
	if portFlag != "" && portFlag != "8080" {
		cfg.Port = portFlag
	}

	pool, err := database.NewPool(ctx, database.Config{URL: cfg.DatabaseURL})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()
	log.Println("connected to database")

	noMigrate, _ := cmd.Flags().GetBool("no-migrate")
	if !noMigrate {
		if err := runMigrations(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	chunkRepo := repository.NewChunkRepository(pool)
	projectRepo := repository.NewProjectRepository(pool)
	skillRepo := repository.NewSkillRepository(pool)
	contactRepo := repository.NewContactRepository(pool)
	settingsRepo := repository.NewSettingsRepository(pool)
	conversationRepo := repository.NewConversationRepository(pool)
	txRunner := repository.NewTxRunner(pool)

	var embeddingClient service.EmbeddingClient
	if cfg.HasOpenAI() {
		embeddingClient = openai.NewClient(cfg.OpenAIAPIKey)
		log.Println("embedding client enabled")
	} else {
		log.Println("no OpenAI key configured, retrieval falls back to keyword search")
	}

	settingsSvc := service.NewSettingsService(settingsRepo)
	knowledgeSvc := service.NewKnowledgeService(chunkRepo, embeddingClient)
	ingestSvc := service.NewIngestService(txRunner, embeddingClient, settingsSvc)
	retrievalSvc := service.NewRetrievalService(chunkRepo, embeddingClient)
	projectSvc := service.NewProjectService(projectRepo)
	skillSvc := service.NewSkillService(skillRepo)
	contactSvc := service.NewContactService(contactRepo)

	var assistantSvc handlers.AssistantService
	if cfg.HasOpenAI() {
		chatClient := openai.NewChatClientWithConfig(openai.ChatConfig{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.ChatModel,
		})
		prompt, err := promptFromSettings(ctx, settingsSvc)
		if err != nil {
			return fmt.Errorf("failed to load site settings: %w", err)
		}
		assistantSvc = service.NewAssistantService(retrievalSvc, chatClient, conversationRepo, prompt)
	} else {
		assistantSvc = &noOpAssistantService{}
	}

	var uploadHandler *handlers.UploadHandler
	if cfg.HasS3() {
		imageStore, err := storage.NewImageStore(ctx, storage.ImageStoreConfig{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
			Bucket:          cfg.S3Bucket,
			UsePathStyle:    true,
		})
		if err != nil {
			return fmt.Errorf("failed to create image store: %w", err)
		}
		if err := imageStore.EnsureBucket(ctx); err != nil {
			return fmt.Errorf("failed to ensure image bucket: %w", err)
		}
		log.Printf("image bucket '%s' ready", cfg.S3Bucket)
		uploadHandler = handlers.NewUploadHandler(imageStore)
	}

	routerCfg := server.RouterConfig{
		AdminToken:          cfg.AdminToken,
		ChunkHandler:        handlers.NewChunkHandler(knowledgeSvc, ingestSvc),
		AssistantHandler:    handlers.NewAssistantHandler(assistantSvc, retrievalSvc),
		ProjectHandler:      handlers.NewProjectHandler(projectSvc),
		SkillHandler:        handlers.NewSkillHandler(skillSvc),
		ContactHandler:      handlers.NewContactHandler(contactSvc),
		SettingsHandler:     handlers.NewSettingsHandler(settingsSvc),
		ConversationHandler: handlers.NewConversationHandler(conversationRepo),
		UploadHandler:       uploadHandler,
	}

	if !cfg.HasAdmin() {
		log.Println("no admin token configured, admin routes disabled")
	}

	router := server.NewRouter(routerCfg)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("server exited")
	return nil
}

// promptFromSettings snapshots the assistant persona at startup. Edits
// to the persona take effect on the next restart.
func promptFromSettings(ctx context.Context, settings *service.SettingsService) (*service.PromptBuilder, error) {
	current, err := settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	return service.NewPromptBuilder(current.AssistantPersona), nil
}

type noOpAssistantService struct{}

func (s *noOpAssistantService) Ask(ctx context.Context, query string) (*service.AskResult, error) {
	return nil, fmt.Errorf("assistant not configured: OPENAI_API_KEY required")
}

func runMigrations(databaseURL string) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database for migrations: %w", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	if err == migrate.ErrNilVersion {
		log.Println("migrations: database is up to date (no migrations applied)")
	} else if dirty {
		return fmt.Errorf("migration version %d is dirty - manual intervention required", version)
	} else if err == migrate.ErrNoChange {
		log.Printf("migrations: database is up to date (version %d)", version)
	} else {
		log.Printf("migrations: applied successfully (version %d)", version)
	}

	return nil
}
