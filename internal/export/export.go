// Package export writes the task collection to CSV, JSON or YAML files.
package export

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/sadopc/daybook/internal/todo"
)

// Formats lists the supported export formats in picker order.
var Formats = []string{"csv", "json", "yaml"}

// Write exports tasks in format to path.
func Write(format string, tasks []todo.Task, today time.Time, path string) error {
	switch format {
	case "csv":
		return ToCSV(tasks, today, path)
	case "json":
		return ToJSON(tasks, today, path)
	case "yaml":
		return ToYAML(tasks, today, path)
	}
	return fmt.Errorf("unknown export format %q", format)
}

// DefaultPath returns dir/daybook-export-<date>.<format>.
func DefaultPath(dir, format string, today time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("daybook-export-%s.%s", today.Format("2006-01-02"), format))
}
