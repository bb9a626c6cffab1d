package config

import (
	"os"
	"path/filepath"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath  string
	TestPath     string
	ManifestFile string

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string

	// Paths to ignore when scanning
	PathsToIgnore []string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	TestPath   string
	Manifest   string
	NameFilter string
	TestCases  bool
	FailFast   bool
	OnlyFailed bool
	WithDeps   bool
	Prepare    bool
	Fresh      bool
	OpenReview bool
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:    DefaultProjectPath,
		TestPath:       DefaultTestPath,
		ManifestFile:   DefaultManifestFile,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
	}
	// Copy default paths to ignore
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// Load creates a config and applies flags
func Load(flags Flags) *Config {
	cfg := New()
	cfg.Flags = flags
	return cfg
}

// GetTestPath returns the test path, using flag if provided
func (c *Config) GetTestPath() string {
	if c.Flags.TestPath != "" {
		if filepath.IsAbs(c.Flags.TestPath) {
			return c.Flags.TestPath
		}
		return filepath.Join(c.ProjectPath, c.Flags.TestPath)
	}
	return filepath.Join(c.ProjectPath, c.TestPath)
}

// GetManifestPath returns the dependency manifest path, using flag if provided
func (c *Config) GetManifestPath() string {
	if c.Flags.Manifest != "" {
		if filepath.IsAbs(c.Flags.Manifest) {
			return c.Flags.Manifest
		}
		return filepath.Join(c.ProjectPath, c.Flags.Manifest)
	}
	return filepath.Join(c.ProjectPath, c.ManifestFile)
}

// GetOutputPath returns the full path to the output JSON file. Resolves to
// an absolute path so run and review always use the same file regardless
// of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetPHPUnitPath returns the path to the PHPUnit binary
func (c *Config) GetPHPUnitPath() string {
	return filepath.Join(c.ProjectPath, "vendor", "bin", "phpunit")
}

// GetDatabaseName returns the test database name
func (c *Config) GetDatabaseName() string {
	if name := os.Getenv("DB_DATABASE"); name != "" {
		return name
	}
	return DefaultDatabaseName
}
