package benchmark

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"   // postgres driver
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

type dialect struct {
	driver string
	create string
	insert string
}

var (
	sqliteDialect = dialect{
		driver: "sqlite",
		create: `
	CREATE TABLE IF NOT EXISTS benchmark_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at INTEGER NOT NULL,
		commit_hash TEXT NOT NULL DEFAULT '',
		samples INTEGER NOT NULL,
		batch_size INTEGER NOT NULL,
		results TEXT NOT NULL
	);`,
		insert: `INSERT INTO benchmark_runs (created_at, commit_hash, samples, batch_size, results) VALUES (?, ?, ?, ?, ?)`,
	}
	postgresDialect = dialect{
		driver: "postgres",
		create: `
	CREATE TABLE IF NOT EXISTS benchmark_runs (
		id SERIAL PRIMARY KEY,
		created_at BIGINT NOT NULL,
		commit_hash TEXT NOT NULL DEFAULT '',
		samples INTEGER NOT NULL,
		batch_size INTEGER NOT NULL,
		results TEXT NOT NULL
	);`,
		insert: `INSERT INTO benchmark_runs (created_at, commit_hash, samples, batch_size, results) VALUES ($1, $2, $3, $4, $5)`,
	}
)

const selectRuns = `SELECT created_at, commit_hash, samples, batch_size, results FROM benchmark_runs ORDER BY created_at ASC, id ASC`

// SQLStore implements Store on top of database/sql. Results are kept as a
// JSON column so both dialects share one schema.
type SQLStore struct {
	db      *sql.DB
	dialect dialect
}

// NewSQLiteStore opens (or creates) a SQLite history database at path.
func NewSQLiteStore(path string) (*SQLStore, error) {
	return openSQLStore(sqliteDialect, path)
}

// NewPostgresStore connects to a Postgres history database.
func NewPostgresStore(dsn string) (*SQLStore, error) {
	return openSQLStore(postgresDialect, dsn)
}

func openSQLStore(d dialect, dsn string) (*SQLStore, error) {
	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLStore{db: db, dialect: d}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

func (s *SQLStore) migrate() error {
	_, err := s.db.Exec(s.dialect.create)
	return err
}

// Close closes the database connection
func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) Save(run Run) error {
	results, err := json.Marshal(run.Results)
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	_, err = s.db.Exec(s.dialect.insert,
		run.Timestamp.UnixNano(), run.Commit, run.Samples, run.BatchSize, string(results))
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}

func (s *SQLStore) LoadAll() ([]Run, error) {
	rows, err := s.db.Query(selectRuns)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var (
			createdAt int64
			results   string
			run       Run
		)
		if err := rows.Scan(&createdAt, &run.Commit, &run.Samples, &run.BatchSize, &results); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(results), &run.Results); err != nil {
			return nil, fmt.Errorf("failed to unmarshal results: %w", err)
		}
		run.Timestamp = time.Unix(0, createdAt)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (s *SQLStore) LoadLatest() (*Run, error) {
	runs, err := s.LoadAll()
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[len(runs)-1], nil
}
