package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/atsfit/internal/config"
	"github.com/jonathan/atsfit/internal/scoring"
	"github.com/jonathan/atsfit/internal/server"
)

var (
	servePort       int
	serveConfigPath string
	serveVerbose    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes scoring, keyword extraction, resume upload, and the streamed optimization pipeline.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to JSON config file")
	serveCmd.Flags().BoolVar(&serveVerbose, "verbose", false, "Print detailed debug information")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveServeConfig(cmd.Flags().Changed("port"))
	if err != nil {
		return err
	}

	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	srv, err := server.New(server.Config{
		Port:          cfg.Port,
		DatabaseURL:   cfg.DatabaseURL,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		APIKey:        cfg.APIKey,
		TrialAttempts: cfg.TrialAttempts,
		TrialExpiry:   time.Duration(cfg.TrialExpiryHours) * time.Hour,
		ScoreWeights:  scoreWeights(cfg),
		Verbose:       cfg.Verbose,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

// resolveServeConfig merges flags, config file, and environment. Precedence:
// an explicitly set --port beats the config file, which beats the flag
// default; environment variables fill remaining blanks.
func resolveServeConfig(portFlagSet bool) (config.Config, error) {
	cfg := config.Config{Verbose: serveVerbose}
	if portFlagSet {
		cfg.Port = servePort
	}

	if serveConfigPath != "" {
		fileCfg, err := config.LoadConfig(serveConfigPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}
	cfg.FromEnv()

	if cfg.Port == 0 {
		cfg.Port = servePort
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// scoreWeights overlays any configured bonus coefficients on the defaults.
func scoreWeights(cfg config.Config) scoring.Weights {
	w := scoring.DefaultWeights()
	if cfg.DensityBonus > 0 {
		w.DensityBonus = cfg.DensityBonus
	}
	if cfg.SkillsBonus > 0 {
		w.SkillsBonus = cfg.SkillsBonus
	}
	if cfg.ExperienceBonus > 0 {
		w.ExperienceBonus = cfg.ExperienceBonus
	}
	return w
}
