package console_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vaultrisk/calibration/internal/domain/models"
	"github.com/vaultrisk/calibration/internal/interfaces/console"
)

func TestBaseRates_RendersAllCategories(t *testing.T) {
	var buf bytes.Buffer
	reporter := console.NewReporter(&buf)

	table := &models.BaseRateTable{
		PopulationSize:   500,
		ObservationYears: 9.56,
		TotalExploits:    260,
		Rates: map[models.Category]models.RateEstimate{
			models.CategoryContract:    models.NewRateEstimate(239, 500, 9.56),
			models.CategoryOperational: models.NewRateEstimate(21, 500, 9.56),
			models.CategoryOracle:      models.NewRateEstimate(0, 500, 9.56),
			models.CategoryGovernance:  models.NewRateEstimate(0, 500, 9.56),
		},
	}

	reporter.BaseRates(table)

	out := buf.String()
	assert.Contains(t, out, "N=500")
	assert.Contains(t, out, "T=9.56")
	for _, c := range models.ReportOrder {
		assert.Contains(t, out, c.String())
	}
	assert.Contains(t, out, "5.00%")
}

func TestSensitivity_ReportsInvariance(t *testing.T) {
	var buf bytes.Buffer
	reporter := console.NewReporter(&buf)

	report := &models.SensitivityReport{
		ObservationYears: 9.56,
		Rows: []models.SensitivityRow{
			{PopulationSize: 300, Table: zeroTable(300)},
			{PopulationSize: 1000, Table: zeroTable(1000)},
		},
		RatiosInvariant: true,
	}

	reporter.Sensitivity(report)
	assert.Contains(t, buf.String(), "Ratios are invariant to N.")
}

func TestCombinedRisk_ShowsOddsAndContributions(t *testing.T) {
	var buf bytes.Buffer
	reporter := console.NewReporter(&buf)

	reporter.CombinedRisk("Aave USDC Lending", models.CombinedRiskResult{
		Combined:        0.145,
		CombinedPercent: "14.50%",
		Odds:            "1 in 6",
		Contributions: map[models.Category]float64{
			models.CategoryContract: 0.6552,
			models.CategoryOracle:   0.3103,
		},
	})

	out := buf.String()
	assert.Contains(t, out, "Aave USDC Lending")
	assert.Contains(t, out, "14.50%")
	assert.Contains(t, out, "1 in 6")
	assert.Contains(t, out, "CONTRACT")
}

func zeroTable(n int) *models.BaseRateTable {
	rates := make(map[models.Category]models.RateEstimate, len(models.ReportOrder))
	for _, c := range models.ReportOrder {
		rates[c] = models.NewRateEstimate(0, n, 9.56)
	}
	return &models.BaseRateTable{PopulationSize: n, ObservationYears: 9.56, Rates: rates}
}
