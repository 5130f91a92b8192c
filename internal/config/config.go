// Package config loads the planner's configuration surface from a
// config file, FIBERPLAN_* environment variables, and CLI flags,
// layered by Viper in that order of increasing precedence.
package config

import "github.com/spf13/viper"

// Config holds every option in the planner's configuration table.
type Config struct {
	Assigner string `mapstructure:"assigner"`
	Input    string `mapstructure:"input"`
	Output   string `mapstructure:"output"`
	Fract    float64 `mapstructure:"fract"`

	RA  float64 `mapstructure:"ra"`
	Dec float64 `mapstructure:"dec"`
	// HasCenter is true when ra/dec were explicitly set; when false the
	// planner derives a default center from the catalog.
	HasCenter bool `mapstructure:"-"`

	PosAng   float64 `mapstructure:"posang"`
	DPosAng  float64 `mapstructure:"dposang"`
	NPosAng  int     `mapstructure:"nposang"`
	DPtg     float64 `mapstructure:"dptg"`
	NPtg     int     `mapstructure:"nptg"`

	OpsAddr    string `mapstructure:"ops_addr"`
	AuthToken  string `mapstructure:"auth_token"`
	Workers    int    `mapstructure:"workers"`
}

// Load reads configuration from viper, applying the documented
// defaults for every option not set by config file, environment, or
// flags.
func Load() (Config, error) {
	viper.SetDefault("posang", 0.0)
	viper.SetDefault("dposang", 4.0)
	viper.SetDefault("nposang", 5)
	viper.SetDefault("dptg", 4.0/320.0)
	viper.SetDefault("nptg", 5)
	viper.SetDefault("output", "")
	viper.SetDefault("ops_addr", "")
	viper.SetDefault("auth_token", "")
	viper.SetDefault("workers", 0)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	cfg.HasCenter = viper.IsSet("ra") && viper.IsSet("dec")
	return cfg, nil
}
