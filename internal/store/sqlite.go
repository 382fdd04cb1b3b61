package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Repository using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (creating if needed) a SQLite-backed lead repository.
func NewSQLite(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	// WAL mode for better concurrency under parallel form submits. The pragmas
	// ride in as modernc driver query options.
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS leads (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL DEFAULT '',
		company TEXT NOT NULL DEFAULT '',
		plan TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// CreateLead inserts a new lead. The store assigns the id and creation
// timestamp; a duplicate email maps to ErrDuplicateEmail.
func (s *SQLiteStore) CreateLead(ctx context.Context, lead Lead) (Lead, error) {
	if strings.TrimSpace(lead.Email) == "" {
		return Lead{}, ErrEmailRequired
	}
	if lead.Plan == "" {
		lead.Plan = DefaultPlan
	}
	lead.ID = uuid.NewString()
	lead.CreatedAt = time.Now().UTC().Truncate(time.Second)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO leads (id, email, name, company, plan, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		lead.ID, lead.Email, lead.Name, lead.Company, lead.Plan, lead.CreatedAt.Unix(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return Lead{}, fmt.Errorf("%w: %s", ErrDuplicateEmail, lead.Email)
		}
		return Lead{}, fmt.Errorf("insert lead: %w", err)
	}
	return lead, nil
}

// isUniqueViolation checks for SQLite's unique-constraint error. The modernc
// driver surfaces it in the message, so string matching is the stable check.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "constraint failed: leads.email")
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the underlying pool.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CountLeads reports the number of stored leads.
func (s *SQLiteStore) CountLeads(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM leads`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count leads: %w", err)
	}
	return n, nil
}
