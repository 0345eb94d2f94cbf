package database

import (
	"path/filepath"
	"testing"
	"time"

	"ordersync/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := New("sqlite://" + filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSyncRunRoundTrip(t *testing.T) {
	db := newTestDatabase(t)

	run := &models.SyncRun{
		Mode:      models.SyncModeHistorical,
		Status:    models.SyncRunStatusRunning,
		StartedAt: time.Now(),
	}
	require.NoError(t, db.CreateSyncRun(run))
	assert.NotEmpty(t, run.ID)

	now := time.Now()
	run.Status = models.SyncRunStatusCompleted
	run.OrdersSynced = 3
	run.EventsEmitted = 7
	run.CompletedAt = &now
	require.NoError(t, db.SaveSyncRun(run))

	runs, err := db.RecentSyncRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, models.SyncRunStatusCompleted, runs[0].Status)
	assert.Equal(t, 3, runs[0].OrdersSynced)
	assert.Equal(t, 7, runs[0].EventsEmitted)
}

func TestRecentSyncRunsNewestFirst(t *testing.T) {
	db := newTestDatabase(t)

	older := &models.SyncRun{Mode: models.SyncModePeriodic, StartedAt: time.Now().Add(-time.Hour)}
	newer := &models.SyncRun{Mode: models.SyncModePeriodic, StartedAt: time.Now()}
	require.NoError(t, db.CreateSyncRun(older))
	require.NoError(t, db.CreateSyncRun(newer))

	runs, err := db.RecentSyncRuns(1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, newer.ID, runs[0].ID)
}
