package storage

import (
	"time"

	"dtp/internal/config"
	"dtp/internal/domain"
)

// Storage persists and loads run reports (e.g. for the review viewer).
type Storage interface {
	Save(results []domain.TestResult, gated []domain.GateRecord, failures []domain.TestFailure, duration time.Duration) error
	Load() (*domain.RunReport, error)
	// SaveReport writes a full report back (e.g. after resolved-status updates).
	SaveReport(report *domain.RunReport) error
}

// JSONStorage stores run reports in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
