package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	categorizeCSV     string
	categorizeRaw     bool
	categorizeSummary bool
)

// categorizeCmd labels each exploit in the dataset with its root-cause
// category and prints the per-category summary.
var categorizeCmd = &cobra.Command{
	Use:   "categorize",
	Short: "Classify exploits into root-cause categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		csvPath := a.cfg.Dataset.CSVPath
		if categorizeCSV != "" {
			csvPath = categorizeCSV
		}
		rawMode := a.cfg.Dataset.RawMode || categorizeRaw

		records, err := a.loadRecords(ctx, csvPath, rawMode)
		if err != nil {
			return err
		}

		if !categorizeSummary {
			fmt.Printf("Categorized %d exploits\n", len(records))
		}
		a.reporter.CategorySummary(a.dataset.Summarize(records))
		return nil
	},
}

func init() {
	categorizeCmd.Flags().StringVar(&categorizeCSV, "csv", "", "path to exploit CSV (overrides config)")
	categorizeCmd.Flags().BoolVar(&categorizeRaw, "raw", false, "ingest unfiltered source data (de-minimis, CeFi exclusion, dedup)")
	categorizeCmd.Flags().BoolVar(&categorizeSummary, "summary", false, "print the summary table only")
	rootCmd.AddCommand(categorizeCmd)
}
