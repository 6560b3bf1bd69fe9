package config

import "time"

// Default configuration values.
const (
	DefaultOutput        = OutputAuto // TTY=text, non-TTY=markdown
	DefaultWatchDebounce = 200 * time.Millisecond
	DefaultParallelism   = 4
)

// ApplyDefaults applies default values to a ProjectConfig.
func ApplyDefaults(c *ProjectConfig) {
	if c == nil {
		return
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.WatchDebounce == 0 {
		c.WatchDebounce = DefaultWatchDebounce
	}
	if c.Parallelism == 0 {
		c.Parallelism = DefaultParallelism
	}
}

// Defaults returns the default values keyed the way config files key them.
func Defaults() map[string]any {
	return map[string]any{
		"output":         DefaultOutput,
		"verbose":        false,
		"strict":         false,
		"warn_data_loss": true,
		"watch_debounce": DefaultWatchDebounce.String(),
		"parallelism":    DefaultParallelism,
	}
}
