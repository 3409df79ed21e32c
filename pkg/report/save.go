package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultReportsDir is where saved reports land relative to the working
// directory.
const DefaultReportsDir = "reports"

// Filename builds a timestamped report filename, e.g.
// "sprint_capacity_report_20260210_093000.html".
func Filename(generatedAt time.Time, ext string) string {
	return fmt.Sprintf("sprint_capacity_report_%s.%s", generatedAt.Format("20060102_150405"), ext)
}

// Save writes a rendered report into dir, creating the directory when
// needed, and returns the full path.
func Save(dir, filename, content string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to save report: %w", err)
	}
	return path, nil
}
