package persistence

import (
	"encoding/json"
	"os"

	"github.com/vaultrisk/calibration/internal/domain/models"
	"github.com/vaultrisk/calibration/pkg/errors"
)

// SummaryMetadata describes the estimation a summary artifact came from.
type SummaryMetadata struct {
	PopulationSize   int     `json:"N"`
	ObservationYears float64 `json:"T"`
	TotalExploits    int     `json:"n_exploits"`
	Source           string  `json:"source"`
}

// SummaryArtifact is the persisted key-value summary of a BaseRateTable,
// reusable later without recomputation.
type SummaryArtifact struct {
	Metadata  SummaryMetadata    `json:"metadata"`
	BaseRates map[string]float64 `json:"base_rates"`
}

// NewSummaryArtifact builds the artifact for a computed table.
func NewSummaryArtifact(table *models.BaseRateTable, source string) SummaryArtifact {
	rates := make(map[string]float64, len(models.ReportOrder))
	for _, c := range models.ReportOrder {
		rates[c.String()] = table.Rate(c).Rate
	}
	return SummaryArtifact{
		Metadata: SummaryMetadata{
			PopulationSize:   table.PopulationSize,
			ObservationYears: table.ObservationYears,
			TotalExploits:    table.TotalExploits,
			Source:           source,
		},
		BaseRates: rates,
	}
}

// WriteSummary persists the artifact as indented JSON at path.
func WriteSummary(path string, artifact SummaryArtifact) error {
	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return errors.ErrStorage("failed to encode summary artifact", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.ErrStorage("failed to write summary artifact", err).
			WithMetadata("path", path)
	}
	return nil
}

// ReadSummary loads a previously written artifact.
func ReadSummary(path string) (SummaryArtifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SummaryArtifact{}, errors.ErrMissingFile(path, err)
	}
	var artifact SummaryArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return SummaryArtifact{}, errors.ErrStorage("failed to decode summary artifact", err).
			WithMetadata("path", path)
	}
	return artifact, nil
}
