package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vaultrisk/calibration/internal/domain/models"
)

var (
	profileCSV   string
	profileN     int
	profileYears float64
)

// profileCmd estimates annual failure probabilities for three example vault
// strategies by scaling the calibrated base rates, then ranks them.
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Estimate risk profiles for example vault strategies",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		csvPath := a.cfg.Dataset.CSVPath
		if profileCSV != "" {
			csvPath = profileCSV
		}
		populationSize := a.cfg.Calibration.PopulationSize
		if profileN > 0 {
			populationSize = profileN
		}
		years := a.cfg.Calibration.ObservationYears
		if profileYears > 0 {
			years = profileYears
		}

		records, err := a.loadRecords(ctx, csvPath, a.cfg.Dataset.RawMode)
		if err != nil {
			return err
		}

		table, err := a.rates.ComputeBaseRates(ctx, records, populationSize, years)
		if err != nil {
			return err
		}

		fmt.Printf("Base rates from %d documented exploits:\n", table.TotalExploits)
		a.reporter.BaseRates(table)

		// Stablecoin LP: no oracle dependency, halved governance exposure.
		// Lending: slightly elevated contract surface, hardened operations.
		// New farm: everything elevated, governance most of all.
		scenarios := []models.NamedScenario{
			{
				Name: "Curve 3-Pool LP",
				Scenario: table.Scenario(map[models.Category]float64{
					models.CategoryOracle:     0,
					models.CategoryGovernance: 0.5,
				}),
			},
			{
				Name: "Aave USDC Lending",
				Scenario: table.Scenario(map[models.Category]float64{
					models.CategoryContract:    1.1,
					models.CategoryOperational: 0.7,
				}),
			},
			{
				Name: "New Protocol Yield Farm",
				Scenario: table.Scenario(map[models.Category]float64{
					models.CategoryContract:    2.0,
					models.CategoryOperational: 1.5,
					models.CategoryOracle:      2.0,
					models.CategoryGovernance:  3.0,
				}),
			},
		}

		for _, ns := range scenarios {
			result, err := a.risk.Combine(ctx, ns.Scenario)
			if err != nil {
				return err
			}
			a.reporter.CombinedRisk(ns.Name, result)
		}

		ranked, err := a.risk.RankScenarios(ctx, scenarios)
		if err != nil {
			return err
		}
		a.reporter.Ranking(ranked)
		return nil
	},
}

func init() {
	profileCmd.Flags().StringVar(&profileCSV, "csv", "", "path to exploit CSV (overrides config)")
	profileCmd.Flags().IntVarP(&profileN, "population", "N", 0, "protocol universe size (overrides config)")
	profileCmd.Flags().Float64Var(&profileYears, "years", 0, "observation period in years (overrides config)")
	rootCmd.AddCommand(profileCmd)
}
