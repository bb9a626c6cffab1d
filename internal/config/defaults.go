package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultTestPath is the default test path
	DefaultTestPath = "."
	// DefaultManifestFile is the default dependency manifest file name
	DefaultManifestFile = "dependencies.yaml"
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "test-results.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = "storage"
	// DefaultDatabaseName is the test database used when DB_DATABASE is unset
	DefaultDatabaseName = "testing"
)

// DefaultPathsToIgnore are the default directories to ignore when scanning for tests
var DefaultPathsToIgnore = []string{
	"vendor",
	"node_modules",
	"public",
	"storage",
	"bootstrap",
	"config",
	"database",
	"resources",
	"routes",
}
