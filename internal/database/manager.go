package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"

	"dtp/internal/config"
)

// Manager manages the test database
type Manager struct {
	config *config.Config
}

// NewManager creates a new Manager
func NewManager(cfg *config.Config) *Manager {
	return &Manager{config: cfg}
}

// EnsureDatabase checks that the test database exists and creates it if it
// doesn't. Connection settings come from the project's .env file or the
// environment.
func (m *Manager) EnsureDatabase() error {
	// Load .env file from project directory
	envPath := filepath.Join(m.config.ProjectPath, ".env")
	if err := godotenv.Load(envPath); err != nil {
		// .env file might not exist, that's okay - use environment variables
		_ = err
	}

	db, err := m.connect()
	if err != nil {
		return err
	}
	defer db.Close()

	dbName := m.config.GetDatabaseName()
	exists, err := m.databaseExists(db, dbName)
	if err != nil {
		return fmt.Errorf("failed to check database %s: %w", dbName, err)
	}
	if exists {
		return nil
	}
	if err := m.createDatabase(db, dbName); err != nil {
		return fmt.Errorf("failed to create database %s: %w", dbName, err)
	}
	return nil
}

// connect opens a connection to the MySQL server without selecting a database
func (m *Manager) connect() (*sql.DB, error) {
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	user := envOrDefault("DB_USERNAME", "root")
	password := os.Getenv("DB_PASSWORD")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/", user, password, host, port)
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database server: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database server: %w", err)
	}
	return db, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// databaseExists checks if a database exists
func (m *Manager) databaseExists(db *sql.DB, dbName string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT SCHEMA_NAME FROM INFORMATION_SCHEMA.SCHEMATA WHERE SCHEMA_NAME = ?)"
	err := db.QueryRow(query, dbName).Scan(&exists)
	return exists, err
}

// createDatabase creates a new database
func (m *Manager) createDatabase(db *sql.DB, dbName string) error {
	if !isValidDatabaseName(dbName) {
		return fmt.Errorf("invalid database name: %s", dbName)
	}
	query := fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", dbName)
	_, err := db.Exec(query)
	return err
}

// isValidDatabaseName validates a database name (basic check)
func isValidDatabaseName(name string) bool {
	if len(name) == 0 || len(name) > 64 {
		return false
	}
	invalid := []string{"'", "\"", ";", "--", "/*", "*/", "DROP", "DELETE", "TRUNCATE"}
	upperName := strings.ToUpper(name)
	for _, pattern := range invalid {
		if strings.Contains(upperName, pattern) {
			return false
		}
	}
	return true
}
