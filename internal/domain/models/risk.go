package models

// RiskScenario maps each category to the annual probability of an independent
// adverse event within the scenario's horizon. Values live in [0,1).
// Scenarios are consumed once by the risk combiner.
type RiskScenario map[Category]float64

// CombinedRiskResult is the output of combining one scenario's independent
// per-category probabilities.
type CombinedRiskResult struct {
	// Combined is the probability of at least one adverse event,
	// 1 - prod(1 - p_i).
	Combined        float64 `json:"combined_risk"`
	CombinedPercent string  `json:"combined_risk_pct"`
	// Odds is the "1 in N" presentation of Combined, or "negligible" for a
	// zero combined probability. Report-only; not part of the invariant set.
	Odds string `json:"odds"`
	// Contributions attributes the combined probability across categories:
	// the probability that a given category is the single cause, conditioned
	// on at least one event occurring. Sums to 1 unless Combined is 0, in
	// which case all contributions are 0.
	Contributions map[Category]float64 `json:"contributions"`
}

// NamedScenario pairs a scenario with its display name for ranking reports.
type NamedScenario struct {
	Name     string
	Scenario RiskScenario
}

// RankedScenario is one entry of a risk ranking, ordered by combined
// probability.
type RankedScenario struct {
	Name   string
	Result CombinedRiskResult
}
