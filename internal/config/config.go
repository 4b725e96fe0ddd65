// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or must be
// provided via flags or environment.
type Config struct {
	// Server
	Port        int    `json:"port,omitempty"`         // HTTP listen port
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Trial gating
	RedisAddr        string `json:"redis_addr,omitempty"`         // Redis address for trial sessions
	RedisPassword    string `json:"redis_password,omitempty"`     // Redis password
	TrialAttempts    int    `json:"trial_attempts,omitempty"`     // Free optimization runs per session
	TrialExpiryHours int    `json:"trial_expiry_hours,omitempty"` // Session lifetime in hours

	// Scoring bonus overrides. Zero means use the built-in default.
	DensityBonus    float64 `json:"density_bonus,omitempty"`
	SkillsBonus     float64 `json:"skills_bonus,omitempty"`
	ExperienceBonus float64 `json:"experience_bonus,omitempty"`

	// Behavior
	APIKey  string `json:"api_key,omitempty"` // Gemini API key
	Verbose bool   `json:"verbose,omitempty"` // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file. Returns an error if the
// file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.TrialAttempts < 0 {
		return fmt.Errorf("config error: 'trial_attempts' must be non-negative")
	}
	if c.TrialExpiryHours < 0 {
		return fmt.Errorf("config error: 'trial_expiry_hours' must be non-negative")
	}
	if c.RedisPassword != "" && c.RedisAddr == "" {
		return fmt.Errorf("config error: 'redis_password' requires 'redis_addr'")
	}
	if c.DensityBonus < 0 || c.SkillsBonus < 0 || c.ExperienceBonus < 0 {
		return fmt.Errorf("config error: scoring bonuses must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags and environment variables.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.RedisAddr == "" {
		result.RedisAddr = defaults.RedisAddr
	}
	if result.RedisPassword == "" {
		result.RedisPassword = defaults.RedisPassword
	}
	if result.TrialAttempts == 0 {
		result.TrialAttempts = defaults.TrialAttempts
	}
	if result.TrialExpiryHours == 0 {
		result.TrialExpiryHours = defaults.TrialExpiryHours
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DensityBonus == 0 {
		result.DensityBonus = defaults.DensityBonus
	}
	if result.SkillsBonus == 0 {
		result.SkillsBonus = defaults.SkillsBonus
	}
	if result.ExperienceBonus == 0 {
		result.ExperienceBonus = defaults.ExperienceBonus
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// FromEnv fills unset fields from environment variables.
func (c *Config) FromEnv() {
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if c.RedisAddr == "" {
		c.RedisAddr = os.Getenv("REDIS_ADDR")
	}
	if c.RedisPassword == "" {
		c.RedisPassword = os.Getenv("REDIS_PASSWORD")
	}
	if c.APIKey == "" {
		c.APIKey = os.Getenv("GEMINI_API_KEY")
	}
}
