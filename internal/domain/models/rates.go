package models

import "fmt"

// RateEstimate is the annualized base failure rate of one category under the
// homogeneous-population Poisson-incidence assumption: Count events observed
// over PopulationSize entities for ObservationYears years.
type RateEstimate struct {
	Count int `json:"n_exploits"`
	// Rate is the maximum-likelihood per-entity-per-year event probability,
	// Count / (N * T).
	Rate float64 `json:"base_rate"`
	// RatePercent is Rate as a percentage to two decimal places.
	RatePercent string `json:"base_rate_pct"`
	// RateBps is Rate in basis points, rounded to one decimal place.
	RateBps float64 `json:"base_rate_bps"`
}

// BaseRateTable maps each category to its rate estimate together with the
// (dataset, population-size, observation-period) triple it was derived from.
// It is never mutated after computation.
type BaseRateTable struct {
	PopulationSize   int
	ObservationYears float64
	TotalExploits    int
	Rates            map[Category]RateEstimate
}

// NewRateEstimate derives the full rate tuple for count events.
// The denominator is validated by the rate service; both factors are positive
// here by construction.
func NewRateEstimate(count, populationSize int, observationYears float64) RateEstimate {
	rate := float64(count) / (float64(populationSize) * observationYears)
	return RateEstimate{
		Count:       count,
		Rate:        rate,
		RatePercent: fmt.Sprintf("%.2f%%", rate*100),
		RateBps:     roundToOneDecimal(rate * 10000),
	}
}

// Rate returns the estimate for c, or a zero estimate if c is absent.
func (t *BaseRateTable) Rate(c Category) RateEstimate {
	return t.Rates[c]
}

// Scenario builds a RiskScenario by scaling each category's base rate with a
// per-category multiplier. Categories missing from multipliers keep a factor
// of 1; an explicit 0 removes the category's risk from the scenario.
func (t *BaseRateTable) Scenario(multipliers map[Category]float64) RiskScenario {
	scenario := make(RiskScenario, len(t.Rates))
	for c, est := range t.Rates {
		factor := 1.0
		if m, ok := multipliers[c]; ok {
			factor = m
		}
		scenario[c] = est.Rate * factor
	}
	return scenario
}

func roundToOneDecimal(v float64) float64 {
	if v >= 0 {
		return float64(int64(v*10+0.5)) / 10
	}
	return float64(int64(v*10-0.5)) / 10
}

// SensitivityRow is one sweep entry: the full table recomputed at one
// population size.
type SensitivityRow struct {
	PopulationSize int
	Table          *BaseRateTable
}

// RatioCheck records the rate ratio of one category pair at the two extreme
// population sizes of a sweep. The ratio is structurally invariant to the
// population size; Deviation is the observed absolute difference.
type RatioCheck struct {
	Numerator   Category
	Denominator Category
	RatioLow    float64 // at the smallest population size
	RatioHigh   float64 // at the largest population size
	Deviation   float64
}

// SensitivityReport is the full population-size sweep plus the ratio
// invariance evidence.
type SensitivityReport struct {
	ObservationYears float64
	Rows             []SensitivityRow
	RatioChecks      []RatioCheck
	// RatiosInvariant is true when every pairwise ratio deviation is within
	// floating-point tolerance.
	RatiosInvariant bool
}
