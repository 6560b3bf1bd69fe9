package commands

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/leapstack-labs/sqltree/internal/cli/config"
	"github.com/leapstack-labs/sqltree/internal/cli/output"
	intconfig "github.com/leapstack-labs/sqltree/internal/config"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with the loaded config, the
// logger from the command context and a renderer for the configured mode.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode, err := output.ParseMode(cfg.Output)
	if err != nil {
		mode = output.ModeAuto
	}
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// Helper functions shared across commands

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	// Fallback: read from environment with defaults
	cfg := &config.Config{
		ProjectConfig: config.ProjectConfig{
			Output:        getEnvOrDefault("SQLTREE_OUTPUT", intconfig.DefaultOutput),
			Strict:        os.Getenv("SQLTREE_STRICT") == "true",
			WarnDataLoss:  os.Getenv("SQLTREE_WARN_DATA_LOSS") != "false",
			WatchDebounce: intconfig.DefaultWatchDebounce,
			Parallelism:   intconfig.DefaultParallelism,
		},
		Verbose: os.Getenv("SQLTREE_VERBOSE") == "true",
	}
	if d, err := time.ParseDuration(os.Getenv("SQLTREE_WATCH_DEBOUNCE")); err == nil && d > 0 {
		cfg.WatchDebounce = d
	}
	if n, err := strconv.Atoi(os.Getenv("SQLTREE_PARALLELISM")); err == nil && n > 0 {
		cfg.Parallelism = n
	}
	if wd, err := os.Getwd(); err == nil {
		cfg.ProjectRoot = wd
	}
	return cfg
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// boolFlagOr returns the flag's value when it was set on the command line,
// otherwise fallback.
func boolFlagOr(cmd *cobra.Command, name string, fallback bool) bool {
	if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
		v, err := cmd.Flags().GetBool(name)
		if err == nil {
			return v
		}
	}
	return fallback
}

// intFlagOr is boolFlagOr for int flags.
func intFlagOr(cmd *cobra.Command, name string, fallback int) int {
	if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
		v, err := cmd.Flags().GetInt(name)
		if err == nil {
			return v
		}
	}
	return fallback
}
