package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vaultrisk/calibration/internal/domain/models"
	"github.com/vaultrisk/calibration/internal/infrastructure/persistence"
)

var (
	ratesCSV         string
	ratesRaw         bool
	ratesN           int
	ratesYears       float64
	ratesSensitivity bool
	ratesOut         string
	ratesDB          string
)

// ratesCmd computes the annualized per-category base rates and optionally the
// population-size sensitivity sweep, the JSON summary artifact and a SQLite
// snapshot.
var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Compute annualized base rates per category",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		csvPath := a.cfg.Dataset.CSVPath
		if ratesCSV != "" {
			csvPath = ratesCSV
		}
		populationSize := a.cfg.Calibration.PopulationSize
		if ratesN > 0 {
			populationSize = ratesN
		}
		years := a.cfg.Calibration.ObservationYears
		if ratesYears > 0 {
			years = ratesYears
		}

		records, err := a.loadRecords(ctx, csvPath, a.cfg.Dataset.RawMode || ratesRaw)
		if err != nil {
			return err
		}
		fmt.Printf("Loaded %d exploits\n", len(records))

		table, err := a.rates.ComputeBaseRates(ctx, records, populationSize, years)
		if err != nil {
			return err
		}
		a.reporter.BaseRates(table)

		if ratesSensitivity {
			report, err := a.rates.Sensitivity(ctx, records, years, a.cfg.Calibration.SensitivitySizes)
			if err != nil {
				return err
			}
			a.reporter.Sensitivity(report)
		}

		summaryPath := a.cfg.Output.SummaryPath
		if ratesOut != "" {
			summaryPath = ratesOut
		}
		if summaryPath != "" {
			artifact := persistence.NewSummaryArtifact(table, csvPath)
			if err := persistence.WriteSummary(summaryPath, artifact); err != nil {
				return err
			}
			fmt.Printf("\nSaved to %s\n", summaryPath)
		}

		snapshotDB := a.cfg.Output.SnapshotDB
		if ratesDB != "" {
			snapshotDB = ratesDB
		}
		if snapshotDB != "" {
			store, err := persistence.NewSnapshotStore(snapshotDB, a.log)
			if err != nil {
				return err
			}
			snapshot := models.NewCalibrationSnapshot(table, csvPath)
			if err := store.Save(ctx, snapshot); err != nil {
				return err
			}
			fmt.Printf("Snapshot %s saved to %s\n", snapshot.ID, snapshotDB)
		}

		return nil
	},
}

func init() {
	ratesCmd.Flags().StringVar(&ratesCSV, "csv", "", "path to exploit CSV (overrides config)")
	ratesCmd.Flags().BoolVar(&ratesRaw, "raw", false, "ingest unfiltered source data")
	ratesCmd.Flags().IntVarP(&ratesN, "population", "N", 0, "protocol universe size (overrides config)")
	ratesCmd.Flags().Float64Var(&ratesYears, "years", 0, "observation period in years (overrides config)")
	ratesCmd.Flags().BoolVar(&ratesSensitivity, "sensitivity", false, "run the population-size sensitivity sweep")
	ratesCmd.Flags().StringVar(&ratesOut, "out", "", "JSON summary artifact path (overrides config)")
	ratesCmd.Flags().StringVar(&ratesDB, "db", "", "SQLite snapshot database path (overrides config)")
	rootCmd.AddCommand(ratesCmd)
}
