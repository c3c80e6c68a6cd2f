package cli

import (
	"fmt"
	"os"

	"github.com/atelierware/folio/internal/config"
	"github.com/atelierware/folio/internal/database"
	"github.com/atelierware/folio/internal/openai"
	"github.com/atelierware/folio/internal/repository"
	"github.com/atelierware/folio/internal/service"
	"github.com/spf13/cobra"
)

// IngestCmd returns the ingest command, which rebuilds the knowledge
// base outside of the HTTP API. Useful after editing the profile
// document directly in the database, or for seeding from a file.
func IngestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest [file]",
		Short: "Rebuild the assistant knowledge base",
		Long:  "Re-chunk and re-embed the profile document, replacing all existing knowledge chunks. With a file argument, ingests that markdown file instead of the stored profile document",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runIngest,
	}
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	pool, err := database.NewPool(ctx, database.Config{URL: cfg.DatabaseURL})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	var embeddingClient service.EmbeddingClient
	if cfg.HasOpenAI() {
		embeddingClient = openai.NewClient(cfg.OpenAIAPIKey)
	} else {
		fmt.Fprintln(os.Stderr, "warning: no OpenAI key configured, chunks will be stored without embeddings")
	}

	settingsSvc := service.NewSettingsService(repository.NewSettingsRepository(pool))
	ingestSvc := service.NewIngestService(repository.NewTxRunner(pool), embeddingClient, settingsSvc)

	var result *service.IngestResult
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		result, err = ingestSvc.IngestDocument(ctx, string(data))
		if err != nil {
			return fmt.Errorf("ingestion failed: %w", err)
		}
	} else {
		result, err = ingestSvc.IngestFromProfile(ctx)
		if err != nil {
			return fmt.Errorf("ingestion failed: %w", err)
		}
	}

	fmt.Printf("ingested %d chunks\n", result.Count)
	return nil
}
