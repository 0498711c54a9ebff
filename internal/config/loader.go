package config

import (
	"strings"

	"github.com/spf13/viper"
	"github.com/vaultrisk/calibration/pkg/constants"
	"github.com/vaultrisk/calibration/pkg/errors"
)

// LoadConfig loads the configuration from file and environment variables.
// Lookup order: explicit path (when non-empty), ./config.yaml, then
// CALIBRATE_-prefixed environment variables over defaults.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("dataset.csv_path", "data/defi_exploits.csv")
	v.SetDefault("dataset.raw_mode", false)
	v.SetDefault("calibration.population_size", constants.DefaultPopulationSize)
	v.SetDefault("calibration.observation_years", constants.DefaultObservationYears)
	v.SetDefault("calibration.sensitivity_sizes", constants.DefaultSensitivitySizes)
	v.SetDefault("output.summary_path", "base_rates.json")
	v.SetDefault("output.snapshot_db", "")
	v.SetDefault("log.level", "info")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// An explicitly requested file must exist; the implicit lookup may not.
			if path != "" {
				return nil, errors.ErrMissingFile(path, err)
			}
			return nil, err
		}
	}

	v.SetEnvPrefix("CALIBRATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.NewError(errors.ErrCodeInternal, "failed to unmarshal config").WithCause(err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
