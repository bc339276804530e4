package repositories

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"intellidoc/internal/database"
	"intellidoc/internal/models"
)

func newTestRepository(t *testing.T) RunRepository {
	t.Helper()
	db, err := database.Init(database.Config{
		Path: filepath.Join(t.TempDir(), "runs.db"),
	})
	require.NoError(t, err)
	return NewRunRepository(db)
}

func TestLatestEmptyHistory(t *testing.T) {
	repo := newTestRepository(t)

	run, err := repo.Latest()
	require.NoError(t, err)
	require.Nil(t, run)
}

func TestCreateAndLatest(t *testing.T) {
	repo := newTestRepository(t)
	base := time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC)

	older := &models.Run{RunID: "run-1", Target: "/work/a", Timestamp: "20260115_093000", CreatedAt: base}
	newer := &models.Run{RunID: "run-2", Target: "/work/b", Timestamp: "20260115_094500", CreatedAt: base.Add(time.Minute)}
	require.NoError(t, repo.Create(older))
	require.NoError(t, repo.Create(newer))

	latest, err := repo.Latest()
	require.NoError(t, err)
	require.NotNil(t, latest)
	require.Equal(t, "run-2", latest.RunID)
}

func TestListRecentOrdersAndLimits(t *testing.T) {
	repo := newTestRepository(t)
	base := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(&models.Run{
			RunID:     string(rune('a' + i)),
			Target:    "/work/project",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	runs, err := repo.ListRecent(3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	require.Equal(t, "e", runs[0].RunID)
	require.Equal(t, "d", runs[1].RunID)
	require.Equal(t, "c", runs[2].RunID)
}
