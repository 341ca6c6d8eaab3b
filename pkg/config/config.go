// Package config assembles the runtime configuration from environment
// variables with sane defaults.
package config

import (
	"fmt"

	"github.com/gookit/validate"
	"github.com/spf13/viper"

	"github.com/mshibata/gh-activity/internal/domain"
)

// Config holds everything a report run needs beyond its command flags.
type Config struct {
	// Token authenticates against the GitHub API.
	Token string `mapstructure:"token" validate:"required" message:"required:GITHUB_TOKEN environment variable is not set"`
	// LifespanWeeks is the activity window applied when no --lifespan
	// flag is given.
	LifespanWeeks int `mapstructure:"lifespan" validate:"min:1" message:"min:lifespan must be a positive number of weeks"`
	// HistoryFile is where the traffic report persists its samples.
	HistoryFile string `mapstructure:"historyFile" validate:"required"`
	LogLevel    string `mapstructure:"logLevel"`
}

// Load reads the configuration from the environment and validates it.
// Validation failures are invalid-input errors and happen before any
// network call.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("lifespan", domain.DefaultLifespanWeeks)
	v.SetDefault("historyFile", "gh-activity-traffic.json")
	v.SetDefault("logLevel", "info")

	v.BindEnv("token", "GITHUB_TOKEN")
	v.BindEnv("lifespan", "GH_ACTIVITY_LIFESPAN")
	v.BindEnv("historyFile", "GH_ACTIVITY_HISTORY_FILE")
	v.BindEnv("logLevel", "GH_ACTIVITY_LOG_LEVEL")

	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return &conf, nil
}

// Validate checks the struct rules and maps failures onto the invalid-input
// error kind.
func (c *Config) Validate() error {
	vd := validate.Struct(c)
	if !vd.Validate() {
		return fmt.Errorf("%s: %w", vd.Errors.One(), domain.ErrInvalidInput)
	}
	return nil
}
