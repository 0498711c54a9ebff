package config

import (
	"github.com/vaultrisk/calibration/pkg/errors"
)

// Config holds the application's configuration.
type Config struct {
	Dataset     DatasetConfig     `mapstructure:"dataset"`
	Calibration CalibrationConfig `mapstructure:"calibration"`
	Output      OutputConfig      `mapstructure:"output"`
	Log         LogConfig         `mapstructure:"log"`
}

// DatasetConfig describes the input exploit dataset.
type DatasetConfig struct {
	CSVPath string `mapstructure:"csv_path"`
	// RawMode enables the de-minimis, CeFi-exclusion and dedup filters for
	// unfiltered source data. Pre-cleaned input leaves it false.
	RawMode bool `mapstructure:"raw_mode"`
}

// CalibrationConfig holds the base-rate estimation parameters.
type CalibrationConfig struct {
	// PopulationSize is the estimated protocol universe size (N).
	PopulationSize int `mapstructure:"population_size"`
	// ObservationYears is the observation period in years (T).
	ObservationYears float64 `mapstructure:"observation_years"`
	// SensitivitySizes is the population-size sweep for the sensitivity report.
	SensitivitySizes []int `mapstructure:"sensitivity_sizes"`
}

// OutputConfig describes where derived artifacts are written.
type OutputConfig struct {
	// SummaryPath is the JSON summary artifact destination. Empty disables it.
	SummaryPath string `mapstructure:"summary_path"`
	// SnapshotDB is the SQLite database holding calibration snapshots.
	// Empty disables snapshot persistence.
	SnapshotDB string `mapstructure:"snapshot_db"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Validate checks for essential configuration values.
func (c *Config) Validate() error {
	if c.Calibration.PopulationSize <= 0 {
		return errors.ErrInvalidArgument("calibration.population_size must be positive")
	}
	if c.Calibration.ObservationYears <= 0 {
		return errors.ErrInvalidArgument("calibration.observation_years must be positive")
	}
	for _, n := range c.Calibration.SensitivitySizes {
		if n <= 0 {
			return errors.ErrInvalidArgument("calibration.sensitivity_sizes must all be positive")
		}
	}
	return nil
}
