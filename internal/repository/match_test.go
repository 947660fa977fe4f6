package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/laprace-backend/internal/entity"
	"github.com/rocketscienceinc/laprace-backend/internal/repository/storage"
)

func newMatchRepo(t *testing.T) (context.Context, MatchRepository) {
	t.Helper()

	ctx := context.Background()

	sqliteStorage, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "laprace.db"))
	require.NoError(t, err)
	require.NoError(t, sqliteStorage.Init(ctx))

	t.Cleanup(func() {
		if err = sqliteStorage.Close(); err != nil {
			t.Fatalf("could not close sqlite storage: %v", err)
		}
	})

	return ctx, NewMatchRepository(sqliteStorage.Connection)
}

func TestMatchRepository_Save(t *testing.T) {
	ctx, matchRepo := newMatchRepo(t)

	// Given: a finished match
	match := &entity.Match{
		GameID:     "123",
		Winner:     "Red",
		Rolls:      42,
		FinishedAt: time.Now().UTC(),
	}

	// When: Save is called
	err := matchRepo.Save(ctx, match)

	// Then: no error should be returned
	require.NoError(t, err)
}

func TestMatchRepository_ListRecent(t *testing.T) {
	ctx, matchRepo := newMatchRepo(t)

	// Given: two finished matches, the second more recent
	older := &entity.Match{
		GameID:     "111",
		Winner:     "Red",
		Rolls:      30,
		FinishedAt: time.Now().UTC().Add(-time.Hour),
	}
	newer := &entity.Match{
		GameID:     "222",
		Winner:     "Blue",
		Rolls:      25,
		FinishedAt: time.Now().UTC(),
	}

	require.NoError(t, matchRepo.Save(ctx, older))
	require.NoError(t, matchRepo.Save(ctx, newer))

	// When: ListRecent is called
	matches, err := matchRepo.ListRecent(ctx, 10)

	// Then: matches come back newest first
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "222", matches[0].GameID)
	assert.Equal(t, "111", matches[1].GameID)

	// When: the limit is smaller than the history
	matches, err = matchRepo.ListRecent(ctx, 1)

	// Then: only the most recent match is returned
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Blue", matches[0].Winner)
}
