package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/vaultrisk/calibration/internal/domain/models"
	"github.com/vaultrisk/calibration/pkg/constants"
	"github.com/vaultrisk/calibration/pkg/errors"
	"github.com/vaultrisk/calibration/pkg/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SnapshotStore provides a GORM/SQLite-backed store of calibration snapshots
// so a computed BaseRateTable can be reused across runs without
// recomputation.
type SnapshotStore struct {
	db  *gorm.DB
	log logger.Logger
}

// NewSnapshotStore opens (or creates) the SQLite database at dsn and migrates
// the snapshot schema.
func NewSnapshotStore(dsn string, log logger.Logger) (*SnapshotStore, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, errors.ErrStorage("failed to open snapshot database", err).
			WithMetadata("dsn", dsn)
	}

	if err := db.AutoMigrate(&models.CalibrationSnapshot{}, &models.SnapshotRate{}); err != nil {
		return nil, errors.ErrStorage("failed to migrate snapshot schema", err)
	}

	return &SnapshotStore{
		db:  db,
		log: log.WithComponent(constants.ComponentStore),
	}, nil
}

// Save persists a snapshot together with its per-category rates.
func (s *SnapshotStore) Save(ctx context.Context, snapshot *models.CalibrationSnapshot) error {
	if err := s.db.WithContext(ctx).Create(snapshot).Error; err != nil {
		return errors.ErrStorage("failed to save calibration snapshot", err).
			WithMetadata("snapshot_id", snapshot.ID.String())
	}
	s.log.Info(ctx, "calibration snapshot saved", logger.Fields{
		"snapshot_id":     snapshot.ID.String(),
		"population_size": snapshot.PopulationSize,
	})
	return nil
}

// Find loads one snapshot by ID.
func (s *SnapshotStore) Find(ctx context.Context, id uuid.UUID) (*models.CalibrationSnapshot, error) {
	var snapshot models.CalibrationSnapshot
	err := s.db.WithContext(ctx).Preload("Rates").First(&snapshot, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, errors.ErrSnapshotNotFound(id.String())
	}
	if err != nil {
		return nil, errors.ErrStorage("failed to load calibration snapshot", err)
	}
	return &snapshot, nil
}

// Latest loads the most recently created snapshot.
func (s *SnapshotStore) Latest(ctx context.Context) (*models.CalibrationSnapshot, error) {
	var snapshot models.CalibrationSnapshot
	err := s.db.WithContext(ctx).Preload("Rates").Order("created_at DESC").First(&snapshot).Error
	if err == gorm.ErrRecordNotFound {
		return nil, errors.ErrSnapshotNotFound("latest")
	}
	if err != nil {
		return nil, errors.ErrStorage("failed to load latest calibration snapshot", err)
	}
	return &snapshot, nil
}
