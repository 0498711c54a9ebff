package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/vaultrisk/calibration/internal/domain/models"
	"github.com/vaultrisk/calibration/pkg/constants"
	"github.com/vaultrisk/calibration/pkg/errors"
	"github.com/vaultrisk/calibration/pkg/logger"
)

// RiskService combines independent per-category probabilities into a single
// annual failure estimate with per-category attribution.
//
// Category probabilities are treated as mutually independent. The service
// does not validate that assumption; correlated inputs produce an over- or
// under-estimate, which is an accepted modeling limitation rather than an
// error condition.
type RiskService struct {
	log logger.Logger
}

// NewRiskService creates a RiskService.
func NewRiskService(log logger.Logger) *RiskService {
	return &RiskService{log: log.WithComponent(constants.ComponentRisk)}
}

// Combine computes the probability of at least one adverse event,
// 1 - prod(1 - p_i), and attributes it across categories: contribution(i) =
// p_i * prod_{j != i}(1 - p_j) / combined, normalized to sum to 1.
//
// An empty scenario, or one where every probability is zero, yields a defined
// zero result with "negligible" odds and all-zero contributions. Each input
// probability must lie in [0,1).
func (s *RiskService) Combine(ctx context.Context, scenario models.RiskScenario) (models.CombinedRiskResult, error) {
	result := models.CombinedRiskResult{
		Contributions: make(map[models.Category]float64, len(scenario)),
	}

	survival := 1.0
	for c, p := range scenario {
		if p < 0 || p >= 1 {
			return models.CombinedRiskResult{}, errors.ErrInvalidArgument(
				fmt.Sprintf("probability for %s must be in [0,1): got %g", c, p))
		}
		survival *= 1 - p
	}
	result.Combined = 1 - survival
	result.CombinedPercent = fmt.Sprintf("%.2f%%", result.Combined*100)

	if result.Combined > 0 {
		result.Odds = fmt.Sprintf("1 in %d", int(1/result.Combined))
		for c, p := range scenario {
			marginal := p
			for other, q := range scenario {
				if other != c {
					marginal *= 1 - q
				}
			}
			result.Contributions[c] = marginal / result.Combined
		}
	} else {
		// Degenerate scenario: report negligible rather than an odds ratio.
		result.Odds = "negligible"
		for c := range scenario {
			result.Contributions[c] = 0
		}
	}

	s.log.Debug(ctx, "scenario combined", logger.Fields{
		"categories":    len(scenario),
		"combined_risk": result.Combined,
	})

	return result, nil
}

// RankScenarios combines each named scenario and returns the results ordered
// by ascending combined probability.
func (s *RiskService) RankScenarios(ctx context.Context, scenarios []models.NamedScenario) ([]models.RankedScenario, error) {
	ranked := make([]models.RankedScenario, 0, len(scenarios))
	for _, ns := range scenarios {
		result, err := s.Combine(ctx, ns.Scenario)
		if err != nil {
			return nil, err
		}
		ranked = append(ranked, models.RankedScenario{Name: ns.Name, Result: result})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Result.Combined < ranked[j].Result.Combined
	})

	return ranked, nil
}
