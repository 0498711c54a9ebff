// Package console renders calibration results for the command line. It is the
// reporting layer on top of the batch core; everything here is presentation
// only and derives from the core's result types.
package console

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/vaultrisk/calibration/internal/domain/models"
)

// Reporter writes human-readable report tables to an output stream.
type Reporter struct {
	out io.Writer
}

// NewReporter creates a Reporter writing to out.
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// CategorySummary prints the per-category count/share/loss table.
func (r *Reporter) CategorySummary(summary models.CategorySummary) {
	fmt.Fprintf(r.out, "\n%-15s %6s %7s %12s %7s\n", "Primitive", "Count", "Share", "Loss ($M)", "Loss %")
	fmt.Fprintln(r.out, strings.Repeat("-", 50))
	for _, c := range models.ReportOrder {
		stat := summary.Stats[c]
		fmt.Fprintf(r.out, "%-15s %6d %6.1f%% %11.1f %6.1f%%\n",
			c, stat.Count, stat.CountShare*100, stat.LossUSD/1e6, stat.LossShare*100)
	}
	fmt.Fprintln(r.out, strings.Repeat("-", 50))
	fmt.Fprintf(r.out, "%-15s %6d %7s %11.1f\n", "TOTAL", summary.TotalCount, "", summary.TotalLossUSD/1e6)
}

// BaseRates prints the per-category rate table for one estimation.
func (r *Reporter) BaseRates(table *models.BaseRateTable) {
	fmt.Fprintf(r.out, "\nBase rates (N=%d, T=%.2f years):\n", table.PopulationSize, table.ObservationYears)
	fmt.Fprintf(r.out, "\n%-15s %5s %8s %6s\n", "Primitive", "n", "Rate", "bps")
	fmt.Fprintln(r.out, strings.Repeat("-", 38))
	for _, c := range models.ReportOrder {
		est := table.Rate(c)
		fmt.Fprintf(r.out, "%-15s %5d %8s %5.1f\n", c, est.Count, est.RatePercent, est.RateBps)
	}
}

// Sensitivity prints the population-size sweep and the ratio invariance
// evidence.
func (r *Reporter) Sensitivity(report *models.SensitivityReport) {
	fmt.Fprintf(r.out, "\n%6s  %10s  %10s  %10s  %10s\n", "N", "CONTRACT", "OPER.", "ORACLE", "GOV.")
	fmt.Fprintln(r.out, strings.Repeat("-", 52))
	for _, row := range report.Rows {
		fmt.Fprintf(r.out, "%6d  %9.2f%%  %9.2f%%  %9.2f%%  %9.2f%%\n",
			row.PopulationSize,
			row.Table.Rate(models.CategoryContract).Rate*100,
			row.Table.Rate(models.CategoryOperational).Rate*100,
			row.Table.Rate(models.CategoryOracle).Rate*100,
			row.Table.Rate(models.CategoryGovernance).Rate*100)
	}

	for _, check := range report.RatioChecks {
		fmt.Fprintf(r.out, "\n%s/%s ratio: %.2fx (N=%d) = %.2fx (N=%d)\n",
			check.Numerator, check.Denominator,
			check.RatioLow, report.Rows[0].PopulationSize,
			check.RatioHigh, report.Rows[len(report.Rows)-1].PopulationSize)
	}
	if report.RatiosInvariant {
		fmt.Fprintln(r.out, "Ratios are invariant to N.")
	} else {
		fmt.Fprintln(r.out, "WARNING: ratio deviation exceeds tolerance.")
	}
}

// CombinedRisk prints one scenario's combined-risk report.
func (r *Reporter) CombinedRisk(name string, result models.CombinedRiskResult) {
	fmt.Fprintf(r.out, "\n%s\n", name)
	fmt.Fprintf(r.out, "Annual Failure Probability: %s\n", result.CombinedPercent)
	fmt.Fprintf(r.out, "Odds: %s\n", result.Odds)

	categories := make([]models.Category, 0, len(result.Contributions))
	for c := range result.Contributions {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool {
		return result.Contributions[categories[i]] > result.Contributions[categories[j]]
	})
	for _, c := range categories {
		fmt.Fprintf(r.out, "  %-15s %6.1f%%\n", c, result.Contributions[c]*100)
	}
}

// Ranking prints scenarios ordered by combined probability.
func (r *Reporter) Ranking(ranked []models.RankedScenario) {
	fmt.Fprintf(r.out, "\n%-20s %-15s %-20s\n", "Strategy", "Annual Failure", "Odds")
	fmt.Fprintln(r.out, strings.Repeat("-", 55))
	for _, entry := range ranked {
		fmt.Fprintf(r.out, "%-20s %-15s %-20s\n", entry.Name, entry.Result.CombinedPercent, entry.Result.Odds)
	}
}
