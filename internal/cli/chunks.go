package cli

import (
	"context"
	"fmt"

	"github.com/atelierware/folio/internal/config"
	"github.com/atelierware/folio/internal/database"
	"github.com/atelierware/folio/internal/repository"
	"github.com/atelierware/folio/internal/service"
	"github.com/spf13/cobra"
)

// ChunksCmd returns the chunks command group for inspecting the
// knowledge base from the CLI. List and delete never touch the
// embedder, so no OpenAI key is required.
func ChunksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chunks",
		Short: "Inspect and manage knowledge chunks",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all knowledge chunks",
		RunE:  runChunksList,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a knowledge chunk by id",
		Args:  cobra.ExactArgs(1),
		RunE:  runChunksDelete,
	})

	return cmd
}

func runChunksList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	svc, cleanup, err := newKnowledgeService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	chunks, err := svc.ListChunks(ctx)
	if err != nil {
		return fmt.Errorf("failed to list chunks: %w", err)
	}

	for _, chunk := range chunks {
		embedded := "no"
		if chunk.Embedding.Present() {
			embedded = "yes"
		}
		fmt.Printf("%s\t%-10s\tembedded=%s\t%s\n", chunk.ID, chunk.Category, embedded, chunk.Title)
	}
	fmt.Printf("%d chunks\n", len(chunks))
	return nil
}

func runChunksDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	svc, cleanup, err := newKnowledgeService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	deleted, err := svc.RemoveChunk(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to delete chunk: %w", err)
	}
	if !deleted {
		return fmt.Errorf("chunk %s not found", args[0])
	}

	fmt.Printf("deleted chunk %s\n", args[0])
	return nil
}

func newKnowledgeService(ctx context.Context) (*service.KnowledgeService, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	pool, err := database.NewPool(ctx, database.Config{URL: cfg.DatabaseURL})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	svc := service.NewKnowledgeService(repository.NewChunkRepository(pool), nil)
	return svc, pool.Close, nil
}
