package benchmark

import (
	"fmt"
	"strings"
)

// DefaultHistoryPath is where the JSON store keeps runs when no path is set.
const DefaultHistoryPath = ".squashbench/history.json"

// DefaultDatabasePath is the SQLite file used when no path is set.
const DefaultDatabasePath = ".squashbench/history.db"

// StoreConfig holds configuration for the history backend
type StoreConfig struct {
	Type string // "json", "sqlite" or "postgres"
	Path string // file path for json and sqlite
	DSN  string // connection string for postgres
}

// NewStore creates a Store based on the provided configuration
func NewStore(config StoreConfig) (Store, error) {
	switch strings.ToLower(config.Type) {
	case "", "json", "file":
		path := config.Path
		if path == "" {
			path = DefaultHistoryPath
		}
		return NewFileStore(path)
	case "sqlite", "sqlite3":
		path := config.Path
		if path == "" {
			path = DefaultDatabasePath
		}
		if err := ensureDir(path); err != nil {
			return nil, err
		}
		return NewSQLiteStore(path)
	case "postgres", "postgresql":
		if config.DSN == "" {
			return nil, fmt.Errorf("postgres connection string is required")
		}
		return NewPostgresStore(config.DSN)
	default:
		return nil, fmt.Errorf("unsupported store type: %s", config.Type)
	}
}
