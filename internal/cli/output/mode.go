package output

import (
	"fmt"
	"strings"
)

// Mode selects how command results are written.
type Mode string

// Output modes.
const (
	ModeAuto     Mode = "auto" // text on a terminal, markdown otherwise
	ModeText     Mode = "text"
	ModeJSON     Mode = "json"
	ModeYAML     Mode = "yaml"
	ModeXML      Mode = "xml"
	ModeMarkdown Mode = "markdown"
)

// Modes lists every mode in help order.
var Modes = []Mode{ModeAuto, ModeText, ModeJSON, ModeYAML, ModeXML, ModeMarkdown}

// ParseMode resolves a mode name case-insensitively. "md" is accepted for markdown.
func ParseMode(s string) (Mode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return ModeAuto, nil
	}
	if name == "md" {
		return ModeMarkdown, nil
	}
	for _, m := range Modes {
		if string(m) == name {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown output mode %q", s)
}

// IsStructured reports whether the mode produces a machine-readable document.
func (m Mode) IsStructured() bool {
	return m == ModeJSON || m == ModeYAML || m == ModeXML
}
