package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appservice "github.com/vaultrisk/calibration/internal/application/service"
	"github.com/vaultrisk/calibration/internal/domain/models"
	"github.com/vaultrisk/calibration/pkg/errors"
	"github.com/vaultrisk/calibration/pkg/logger"
)

func labeledRecords(counts map[models.Category]int) []models.ExploitRecord {
	var records []models.ExploitRecord
	for c, n := range counts {
		for i := 0; i < n; i++ {
			r := models.ExploitRecord{Name: "x", Date: "d"}
			r.SetPrimitive(c)
			records = append(records, r)
		}
	}
	return records
}

func TestComputeBaseRates(t *testing.T) {
	svc := appservice.NewRateService(logger.NewNoopLogger())

	records := labeledRecords(map[models.Category]int{
		models.CategoryContract:    239,
		models.CategoryOperational: 98,
		models.CategoryOracle:      33,
		models.CategoryGovernance:  21,
	})

	table, err := svc.ComputeBaseRates(context.Background(), records, 500, 9.56)
	require.NoError(t, err)

	assert.Equal(t, 391, table.TotalExploits)
	contract := table.Rate(models.CategoryContract)
	assert.Equal(t, 239, contract.Count)
	assert.InDelta(t, 239.0/(500*9.56), contract.Rate, 1e-12)
	assert.Equal(t, "5.00%", contract.RatePercent)
	assert.InDelta(t, 500.0, contract.RateBps, 0.051)
}

func TestComputeBaseRates_LinearInInversePopulation(t *testing.T) {
	svc := appservice.NewRateService(logger.NewNoopLogger())
	records := labeledRecords(map[models.Category]int{
		models.CategoryContract: 40,
		models.CategoryOracle:   10,
	})

	base, err := svc.ComputeBaseRates(context.Background(), records, 500, 9.56)
	require.NoError(t, err)
	doubled, err := svc.ComputeBaseRates(context.Background(), records, 1000, 9.56)
	require.NoError(t, err)

	for _, c := range models.ReportOrder {
		assert.InDelta(t, base.Rate(c).Rate/2, doubled.Rate(c).Rate, 1e-15, "category %s", c)
	}
}

func TestComputeBaseRates_EmptyRecords(t *testing.T) {
	svc := appservice.NewRateService(logger.NewNoopLogger())

	table, err := svc.ComputeBaseRates(context.Background(), nil, 500, 9.56)
	require.NoError(t, err)

	assert.Zero(t, table.TotalExploits)
	for _, c := range models.ReportOrder {
		assert.Zero(t, table.Rate(c).Count)
		assert.Zero(t, table.Rate(c).Rate)
		assert.Equal(t, "0.00%", table.Rate(c).RatePercent)
	}
}

func TestComputeBaseRates_InvalidArguments(t *testing.T) {
	svc := appservice.NewRateService(logger.NewNoopLogger())

	_, err := svc.ComputeBaseRates(context.Background(), nil, 0, 9.56)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidArgument, errors.CodeOf(err))

	_, err = svc.ComputeBaseRates(context.Background(), nil, 500, 0)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidArgument, errors.CodeOf(err))
}

func TestSensitivity_RatioInvariance(t *testing.T) {
	svc := appservice.NewRateService(logger.NewNoopLogger())
	records := labeledRecords(map[models.Category]int{
		models.CategoryContract:    239,
		models.CategoryOperational: 98,
		models.CategoryOracle:      33,
		models.CategoryGovernance:  21,
	})

	report, err := svc.Sensitivity(context.Background(), records, 9.56, []int{300, 500, 800, 1000})
	require.NoError(t, err)

	require.Len(t, report.Rows, 4)
	assert.True(t, report.RatiosInvariant)
	require.NotEmpty(t, report.RatioChecks)
	for _, check := range report.RatioChecks {
		assert.InDelta(t, check.RatioLow, check.RatioHigh, 1e-9,
			"%s/%s ratio must not depend on population size", check.Numerator, check.Denominator)
	}
}

func TestSensitivity_SkipsZeroCountPairs(t *testing.T) {
	svc := appservice.NewRateService(logger.NewNoopLogger())
	records := labeledRecords(map[models.Category]int{
		models.CategoryContract: 10,
	})

	report, err := svc.Sensitivity(context.Background(), records, 9.56, []int{300, 1000})
	require.NoError(t, err)

	// Only CONTRACT has events; no pair has two nonzero counts.
	assert.Empty(t, report.RatioChecks)
	assert.True(t, report.RatiosInvariant)
}

func TestSensitivity_RequiresSizes(t *testing.T) {
	svc := appservice.NewRateService(logger.NewNoopLogger())

	_, err := svc.Sensitivity(context.Background(), nil, 9.56, nil)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidArgument, errors.CodeOf(err))
}
