package persistence_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vaultrisk/calibration/internal/infrastructure/persistence"
	"github.com/vaultrisk/calibration/pkg/errors"
)

func TestSummaryArtifact_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "base_rates.json")

	artifact := persistence.NewSummaryArtifact(testTable(), "DeFiLlama Hacks API")
	require.NoError(t, persistence.WriteSummary(path, artifact))

	loaded, err := persistence.ReadSummary(path)
	require.NoError(t, err)

	assert.Equal(t, 500, loaded.Metadata.PopulationSize)
	assert.InDelta(t, 9.56, loaded.Metadata.ObservationYears, 1e-12)
	assert.Equal(t, 391, loaded.Metadata.TotalExploits)
	assert.Equal(t, "DeFiLlama Hacks API", loaded.Metadata.Source)
	require.Len(t, loaded.BaseRates, 4)
	assert.InDelta(t, 239.0/(500*9.56), loaded.BaseRates["CONTRACT"], 1e-12)
}

func TestReadSummary_MissingFile(t *testing.T) {
	_, err := persistence.ReadSummary(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeMissingFile, errors.CodeOf(err))
}
