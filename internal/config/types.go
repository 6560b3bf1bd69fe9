// Package config provides the shared project configuration for sqltree:
// the settings a sqltree.yaml file may carry, their defaults and validation.
// It is decoupled from CLI concerns so that library callers can load a
// project's settings without cobra.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/leapstack-labs/sqltree/pkg/token"
)

// Output modes.
const (
	OutputAuto     = "auto"
	OutputText     = "text"
	OutputJSON     = "json"
	OutputYAML     = "yaml"
	OutputXML      = "xml"
	OutputMarkdown = "markdown"
)

// OutputModes lists every accepted output mode.
var OutputModes = []string{OutputAuto, OutputText, OutputJSON, OutputYAML, OutputXML, OutputMarkdown}

// ProjectConfig is the content of a sqltree.yaml file.
type ProjectConfig struct {
	Output        string            `koanf:"output"`
	Strict        bool              `koanf:"strict"`
	WarnDataLoss  bool              `koanf:"warn_data_loss"`
	WatchDebounce time.Duration     `koanf:"watch_debounce"`
	TokenAliases  map[string]string `koanf:"token_aliases"` // alias -> kind name
	Parallelism   int               `koanf:"parallelism"`
}

// ApplyDefaults fills unset values.
func (c *ProjectConfig) ApplyDefaults() {
	ApplyDefaults(c)
}

// Validate checks values a file or flag may have gotten wrong.
func (c *ProjectConfig) Validate() error {
	if !validOutput(c.Output) {
		return fmt.Errorf("unknown output mode %q (want one of %s)", c.Output, strings.Join(OutputModes, ", "))
	}
	if c.WatchDebounce < 0 {
		return fmt.Errorf("watch_debounce must not be negative, got %s", c.WatchDebounce)
	}
	if c.Parallelism < 0 {
		return fmt.Errorf("parallelism must not be negative, got %d", c.Parallelism)
	}
	for alias, kind := range c.TokenAliases {
		if _, ok := token.LookupKind(kind); !ok {
			return fmt.Errorf("token alias %q: unknown kind %q", alias, kind)
		}
	}
	return nil
}

// RegisterAliases makes the configured token aliases known to token.LookupKind.
func (c *ProjectConfig) RegisterAliases() error {
	if len(c.TokenAliases) == 0 {
		return nil
	}
	if err := token.RegisterAliases(c.TokenAliases); err != nil {
		return fmt.Errorf("register token aliases: %w", err)
	}
	return nil
}

func validOutput(mode string) bool {
	for _, m := range OutputModes {
		if strings.EqualFold(m, mode) {
			return true
		}
	}
	return false
}
