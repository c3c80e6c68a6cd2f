//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/atelierware/folio/internal/domain"
	"github.com/atelierware/folio/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsRepository_GetOrCreate(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewSettingsRepository(pool)

	settings, err := repo.GetOrCreate(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Portfolio", settings.SiteTitle)

	// A second call returns the same row instead of re-seeding.
	again, err := repo.GetOrCreate(ctx)
	require.NoError(t, err)
	assert.Equal(t, settings.SiteTitle, again.SiteTitle)
	assert.Equal(t, settings.UpdatedAt, again.UpdatedAt)
}

func TestSettingsRepository_Update(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewSettingsRepository(pool)

	updated := &domain.SiteSettings{
		SiteTitle:        "Ada's Workshop",
		Tagline:          "Systems, soldering, and song",
		OwnerName:        "Ada",
		AssistantPersona: "Ada's studio assistant",
		ProfileDocument:  "# About Me\nI build things.",
		UpdatedAt:        time.Now().UTC().Truncate(time.Microsecond),
	}
	require.NoError(t, repo.Update(ctx, updated))

	settings, err := repo.GetOrCreate(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ada's Workshop", settings.SiteTitle)
	assert.Equal(t, "# About Me\nI build things.", settings.ProfileDocument)
}

func TestSettingsRepository_Update_BeforeFirstGet(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewSettingsRepository(pool)

	// Update against an empty table inserts rather than failing.
	updated := &domain.SiteSettings{
		SiteTitle: "Fresh Install",
		UpdatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	require.NoError(t, repo.Update(ctx, updated))

	settings, err := repo.GetOrCreate(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Fresh Install", settings.SiteTitle)
}
