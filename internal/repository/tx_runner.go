package repository

import (
	"context"

	"github.com/atelierware/folio/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TxRunner runs chunk repository work inside a single transaction,
// backing the atomic clear-then-insert swap of bulk ingestion.
type TxRunner struct {
	pool *pgxpool.Pool
}

func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) WithChunkTx(ctx context.Context, fn func(repo service.ChunkRepositoryInterface) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}

	if err := fn(NewChunkRepositoryWithTx(tx)); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	return tx.Commit(ctx)
}
