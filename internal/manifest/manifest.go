// Package manifest loads dependency declarations from a YAML file and
// registers them before a run. The manifest is the CLI equivalent of an
// in-code registration call: test authors declare after/before/priority
// per test name, and setup aborts on any invalid entry rather than
// silently dropping an edge.
package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"dtp/internal/deps"
)

// Entry declares ordering constraints for a single test
type Entry struct {
	Name     string   `yaml:"name"`
	After    []string `yaml:"after,omitempty"`
	Before   []string `yaml:"before,omitempty"`
	Priority *int     `yaml:"priority,omitempty"`
}

// Manifest is a parsed dependency declaration file
type Manifest struct {
	Tests []Entry `yaml:"tests"`
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &m, nil
}

// Apply registers every entry with the registry. known holds the names of
// all discovered tests; an entry targeting anything else is a configuration
// error, guarding against typos and non-test targets. Pass nil to skip the
// target check.
func (m *Manifest) Apply(registry *deps.Registry, known map[string]struct{}) error {
	for _, entry := range m.Tests {
		if entry.Name == "" {
			return fmt.Errorf("manifest entry without a name: %w", deps.ErrInvalidTarget)
		}
		if known != nil {
			if _, ok := known[entry.Name]; !ok {
				return fmt.Errorf("manifest entry %q does not match any discovered test: %w",
					entry.Name, deps.ErrInvalidTarget)
			}
		}
		err := registry.Register(entry.Name, deps.Registration{
			After:    entry.After,
			Before:   entry.Before,
			Priority: entry.Priority,
		})
		if err != nil {
			return fmt.Errorf("manifest: %w", err)
		}
	}
	return nil
}
