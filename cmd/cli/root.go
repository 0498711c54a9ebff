// Package cli implements the calibrate command-line interface.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vaultrisk/calibration/internal/application/service"
	"github.com/vaultrisk/calibration/internal/config"
	"github.com/vaultrisk/calibration/internal/domain/models"
	domainservice "github.com/vaultrisk/calibration/internal/domain/service"
	"github.com/vaultrisk/calibration/internal/infrastructure/persistence"
	"github.com/vaultrisk/calibration/internal/interfaces/console"
	"github.com/vaultrisk/calibration/pkg/logger"
)

var (
	cfgFile  string
	logLevel string
)

// rootCmd is the base command when the calibrate binary is called without any
// subcommands.
var rootCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Calibrate DeFi exploit base rates and combine scenario risks.",
	Long: `calibrate is a batch tool that classifies historical DeFi exploits into
root-cause categories, estimates annualized base failure rates per category,
and combines scaled per-category probabilities into scenario risk estimates.`,
}

// Execute is the main entry point for the CLI application.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug|info|warn|error)")
}

// app bundles the wired pipeline for one CLI invocation.
type app struct {
	cfg      *config.Config
	log      logger.Logger
	reader   *persistence.CSVReader
	dataset  *service.DatasetService
	rates    *service.RateService
	risk     *service.RiskService
	reporter *console.Reporter
}

// newApp loads configuration and wires the pipeline the same way for every
// subcommand.
func newApp() (*app, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	log, err := logger.NewZapLogger(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	classifier := domainservice.NewDefaultClassifier()
	return &app{
		cfg:      cfg,
		log:      log,
		reader:   persistence.NewCSVReader(log),
		dataset:  service.NewDatasetService(classifier, log),
		rates:    service.NewRateService(log),
		risk:     service.NewRiskService(log),
		reporter: console.NewReporter(os.Stdout),
	}, nil
}

// loadRecords reads and processes the dataset in one shot.
func (a *app) loadRecords(ctx context.Context, csvPath string, rawMode bool) ([]models.ExploitRecord, error) {
	rows, err := a.reader.Read(ctx, csvPath)
	if err != nil {
		return nil, err
	}
	return a.dataset.Process(ctx, rows, rawMode), nil
}
