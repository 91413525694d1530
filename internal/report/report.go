// Package report renders analysis results into a YAML document suitable for
// archiving or feeding a dashboard.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"fintastic/extract/internal/gig"
	"fintastic/extract/internal/insights"
	"fintastic/extract/internal/logging"
	"fintastic/extract/internal/models"
)

// Report is the full analysis document for one user history.
type Report struct {
	ID          string                  `yaml:"id"`
	GeneratedAt string                  `yaml:"generated_at"`
	Gig         *gig.Result             `yaml:"gig,omitempty"`
	Daily       []insights.DailySummary `yaml:"daily,omitempty"`
	Alerts      []insights.Alert        `yaml:"alerts,omitempty"`
}

// New creates an empty report with a fresh ID and timestamp.
func New() *Report {
	return &Report{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// Write marshals the report to YAML at path, creating parent directories as
// needed.
func (r *Report) Write(path string, logger logging.Logger) error {
	if logger == nil {
		logger = logging.GetLogger()
	}

	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("error marshaling report: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, models.PermissionReportFile); err != nil {
		return fmt.Errorf("error writing report %s: %w", path, err)
	}

	logger.WithFields(
		logging.Field{Key: logging.FieldOutputFile, Value: path},
		logging.Field{Key: "report_id", Value: r.ID},
	).Info("Report written")
	return nil
}
