package commands

import (
	"fmt"
	"strings"
)

// StructuralError is returned in strict mode when at least one tree was
// built around structural anomalies.
type StructuralError struct {
	Paths []string
}

func (e *StructuralError) Error() string {
	if len(e.Paths) == 1 {
		return fmt.Sprintf("structural anomalies found in %s", e.Paths[0])
	}
	return fmt.Sprintf("structural anomalies found in %d files: %s", len(e.Paths), strings.Join(e.Paths, ", "))
}
