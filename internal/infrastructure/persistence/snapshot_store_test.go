package persistence_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vaultrisk/calibration/internal/domain/models"
	"github.com/vaultrisk/calibration/internal/infrastructure/persistence"
	"github.com/vaultrisk/calibration/pkg/errors"
	"github.com/vaultrisk/calibration/pkg/logger"
)

func testTable() *models.BaseRateTable {
	return &models.BaseRateTable{
		PopulationSize:   500,
		ObservationYears: 9.56,
		TotalExploits:    391,
		Rates: map[models.Category]models.RateEstimate{
			models.CategoryContract:    models.NewRateEstimate(239, 500, 9.56),
			models.CategoryOperational: models.NewRateEstimate(98, 500, 9.56),
			models.CategoryOracle:      models.NewRateEstimate(33, 500, 9.56),
			models.CategoryGovernance:  models.NewRateEstimate(21, 500, 9.56),
		},
	}
}

func newStore(t *testing.T) *persistence.SnapshotStore {
	t.Helper()
	store, err := persistence.NewSnapshotStore(filepath.Join(t.TempDir(), "snapshots.db"), logger.NewNoopLogger())
	require.NoError(t, err)
	return store
}

func TestSnapshotStore_SaveAndFind(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	snapshot := models.NewCalibrationSnapshot(testTable(), "test dataset")
	require.NoError(t, store.Save(ctx, snapshot))

	loaded, err := store.Find(ctx, snapshot.ID)
	require.NoError(t, err)

	assert.Equal(t, snapshot.PopulationSize, loaded.PopulationSize)
	assert.Equal(t, snapshot.TotalExploits, loaded.TotalExploits)
	require.Len(t, loaded.Rates, 4)

	table := loaded.Table()
	assert.Equal(t, 239, table.Rate(models.CategoryContract).Count)
	assert.InDelta(t, 239.0/(500*9.56), table.Rate(models.CategoryContract).Rate, 1e-12)
	assert.Equal(t, "5.00%", table.Rate(models.CategoryContract).RatePercent)
}

func TestSnapshotStore_Latest(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	older := models.NewCalibrationSnapshot(testTable(), "first")
	require.NoError(t, store.Save(ctx, older))

	newerTable := testTable()
	newerTable.PopulationSize = 800
	newer := models.NewCalibrationSnapshot(newerTable, "second")
	newer.CreatedAt = older.CreatedAt.Add(time.Second)
	require.NoError(t, store.Save(ctx, newer))

	latest, err := store.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, 800, latest.PopulationSize)
}

func TestSnapshotStore_NotFound(t *testing.T) {
	store := newStore(t)

	_, err := store.Find(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeNotFound, errors.CodeOf(err))
}
