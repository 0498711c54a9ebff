// Package constants defines system-wide constants for the calibration pipeline.
// This package provides type-safe constant definitions used across all modules.
package constants

// ================================================================================
// Logging Constants
// ================================================================================

// LogLevel represents the severity of a log entry.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelFatal
)

// ContextKey is a dedicated type for context values to avoid collisions.
type ContextKey string

const (
	// ContextKeyRunID carries the identifier of the current calibration run.
	ContextKeyRunID ContextKey = "run_id"
)

// Component names used for child loggers.
const (
	ComponentClassifier = "classifier"
	ComponentDataset    = "dataset"
	ComponentRates      = "rates"
	ComponentRisk       = "risk"
	ComponentStore      = "store"
	ComponentCLI        = "cli"
)

// ================================================================================
// Calibration Defaults
// ================================================================================

const (
	// DefaultPopulationSize is the estimated protocol universe size (N).
	DefaultPopulationSize = 500

	// DefaultObservationYears is the observation period in years (T).
	DefaultObservationYears = 9.56

	// DeMinimisUSD is the materiality threshold for raw-mode ingestion.
	// Incidents strictly below this resolved loss are excluded.
	DeMinimisUSD = 100_000.0

	// MillionsToUSD converts amounts reported in millions to absolute dollars.
	MillionsToUSD = 1_000_000.0

	// RatioTolerance is the floating-point tolerance used when checking that
	// category rate ratios are invariant to the population size.
	RatioTolerance = 1e-9
)

// DefaultSensitivitySizes is the population-size sweep used when no explicit
// sweep is configured.
var DefaultSensitivitySizes = []int{300, 500, 800, 1000}
