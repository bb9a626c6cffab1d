package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dtp/internal/domain"
)

// Save writes the run report to the configured JSON output file.
func (s *JSONStorage) Save(results []domain.TestResult, gated []domain.GateRecord, failures []domain.TestFailure, duration time.Duration) error {
	meta := domain.RunMeta{
		TotalTests:      len(results),
		FailedTestCases: len(failures),
		Duration:        duration.String(),
		DurationSeconds: duration.Seconds(),
		Timestamp:       time.Now().Format(time.RFC3339),
	}

	order := make([]string, 0, len(results))
	for _, r := range results {
		order = append(order, r.Test.Name)
		switch r.Outcome {
		case domain.OutcomePassed:
			meta.Passed++
		case domain.OutcomeFailed:
			meta.Failed++
		case domain.OutcomeError:
			meta.Errors++
		case domain.OutcomeSkipped:
			meta.Skipped++
		}
	}

	return s.SaveReport(&domain.RunReport{
		Meta:    meta,
		Order:   order,
		Gated:   gated,
		Details: failures,
	})
}

// Load reads the last run report from the configured JSON output file.
func (s *JSONStorage) Load() (*domain.RunReport, error) {
	path := s.cfg.GetOutputPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}
	var report domain.RunReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	return &report, nil
}

// SaveReport writes the full report to the configured JSON file.
func (s *JSONStorage) SaveReport(report *domain.RunReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	path := s.cfg.GetOutputPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}
