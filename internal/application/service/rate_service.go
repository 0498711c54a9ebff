package service

import (
	"context"
	"fmt"
	"math"

	gocache "github.com/patrickmn/go-cache"
	"github.com/vaultrisk/calibration/internal/domain/models"
	"github.com/vaultrisk/calibration/pkg/constants"
	"github.com/vaultrisk/calibration/pkg/errors"
	"github.com/vaultrisk/calibration/pkg/logger"
)

// RateService estimates annualized per-category base rates from a labeled
// dataset. Tables are memoized per (population size, observation years)
// within a service instance, so the sensitivity sweep and snapshot export
// reuse already-computed tables. The cache is keyed on the estimation
// parameters only; one service instance is bound to one dataset.
type RateService struct {
	tables *gocache.Cache
	log    logger.Logger
}

// NewRateService creates a RateService.
func NewRateService(log logger.Logger) *RateService {
	return &RateService{
		tables: gocache.New(gocache.NoExpiration, 0),
		log:    log.WithComponent(constants.ComponentRates),
	}
}

// ComputeBaseRates derives the per-category rate table for the given
// population size N and observation period T in years. For each category,
// rate = count / (N * T): the maximum-likelihood per-entity-per-year event
// probability under a homogeneous-population Poisson-incidence assumption.
// Empty records yield an all-zero table; N and T must be positive.
func (s *RateService) ComputeBaseRates(ctx context.Context, records []models.ExploitRecord, populationSize int, observationYears float64) (*models.BaseRateTable, error) {
	if populationSize <= 0 {
		return nil, errors.ErrInvalidArgument("population size must be positive").
			WithMetadata("population_size", populationSize)
	}
	if observationYears <= 0 {
		return nil, errors.ErrInvalidArgument("observation years must be positive").
			WithMetadata("observation_years", observationYears)
	}

	key := fmt.Sprintf("%d|%g", populationSize, observationYears)
	if cached, ok := s.tables.Get(key); ok {
		return cached.(*models.BaseRateTable), nil
	}

	counts := make(map[models.Category]int)
	for _, r := range records {
		counts[r.Primitive]++
	}

	table := &models.BaseRateTable{
		PopulationSize:   populationSize,
		ObservationYears: observationYears,
		TotalExploits:    len(records),
		Rates:            make(map[models.Category]models.RateEstimate, len(models.ReportOrder)),
	}
	for _, c := range models.ReportOrder {
		table.Rates[c] = models.NewRateEstimate(counts[c], populationSize, observationYears)
	}

	s.tables.Set(key, table, gocache.NoExpiration)
	s.log.Debug(ctx, "base rates computed", logger.Fields{
		"population_size":   populationSize,
		"observation_years": observationYears,
		"n_exploits":        len(records),
	})

	return table, nil
}

// Sensitivity recomputes the full rate table at each population size and
// verifies that the rate ratio of any two categories with nonzero counts is
// invariant to the population size. The invariance is structural (the N*T
// denominators cancel), so any deviation beyond floating-point tolerance
// indicates a defect, not data noise.
func (s *RateService) Sensitivity(ctx context.Context, records []models.ExploitRecord, observationYears float64, populationSizes []int) (*models.SensitivityReport, error) {
	if len(populationSizes) == 0 {
		return nil, errors.ErrInvalidArgument("at least one population size is required")
	}

	report := &models.SensitivityReport{
		ObservationYears: observationYears,
		RatiosInvariant:  true,
	}

	for _, n := range populationSizes {
		table, err := s.ComputeBaseRates(ctx, records, n, observationYears)
		if err != nil {
			return nil, err
		}
		report.Rows = append(report.Rows, models.SensitivityRow{
			PopulationSize: n,
			Table:          table,
		})
	}

	low := report.Rows[0].Table
	high := report.Rows[len(report.Rows)-1].Table
	for i, p := range models.ReportOrder {
		for _, q := range models.ReportOrder[i+1:] {
			if low.Rate(q).Count == 0 || low.Rate(p).Count == 0 {
				continue
			}
			check := models.RatioCheck{
				Numerator:   p,
				Denominator: q,
				RatioLow:    low.Rate(p).Rate / low.Rate(q).Rate,
				RatioHigh:   high.Rate(p).Rate / high.Rate(q).Rate,
			}
			check.Deviation = math.Abs(check.RatioLow - check.RatioHigh)
			if check.Deviation > constants.RatioTolerance {
				report.RatiosInvariant = false
			}
			report.RatioChecks = append(report.RatioChecks, check)
		}
	}

	if !report.RatiosInvariant {
		s.log.Warn(ctx, "rate ratios deviated across population sizes", logger.Fields{
			"tolerance": constants.RatioTolerance,
		})
	}

	return report, nil
}
