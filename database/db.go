package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// DB owns the single underlying store. Mutations run either immediately
// or are staged on the pending batch and flushed by Commit in one
// transaction.
type DB struct {
	*sql.DB

	mu      sync.Mutex
	pending []statement
}

type statement struct {
	query string
	args  []any
}

func New(dbPath string) (*DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	// WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{DB: db}, nil
}

func (db *DB) Migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS companies (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			abbreviation TEXT DEFAULT '',
			colour TEXT DEFAULT '',
			is_default INTEGER DEFAULT 0,
			hidden INTEGER DEFAULT 0,
			pid INTEGER NOT NULL,
			alive INTEGER DEFAULT 1,
			created DATETIME DEFAULT CURRENT_TIMESTAMP,
			last_update DATETIME
		)`,

		`CREATE TABLE IF NOT EXISTS projects (
			id TEXT PRIMARY KEY,
			company_id TEXT,
			name TEXT NOT NULL,
			abbreviation TEXT DEFAULT '',
			colour TEXT DEFAULT '',
			pid INTEGER NOT NULL,
			ignored_jobs TEXT DEFAULT '',
			alive INTEGER DEFAULT 1,
			created DATETIME DEFAULT CURRENT_TIMESTAMP,
			last_update DATETIME,
			FOREIGN KEY (company_id) REFERENCES companies(id) ON DELETE SET NULL
		)`,

		`CREATE TABLE IF NOT EXISTS jobs (
			id TEXT PRIMARY KEY,
			project_id TEXT,
			jid INTEGER NOT NULL,
			title TEXT DEFAULT '',
			overview TEXT DEFAULT '',
			uri TEXT DEFAULT '',
			shredable INTEGER DEFAULT 0,
			colour TEXT DEFAULT '',
			alive INTEGER DEFAULT 1,
			created DATETIME DEFAULT CURRENT_TIMESTAMP,
			last_update DATETIME,
			FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE SET NULL
		)`,

		`CREATE TABLE IF NOT EXISTS records (
			id TEXT PRIMARY KEY,
			job_id TEXT,
			timestamp DATETIME NOT NULL,
			message TEXT NOT NULL,
			alive INTEGER DEFAULT 1,
			created DATETIME DEFAULT CURRENT_TIMESTAMP,
			last_update DATETIME,
			FOREIGN KEY (job_id) REFERENCES jobs(id) ON DELETE SET NULL
		)`,

		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			job_id TEXT NOT NULL,
			content TEXT NOT NULL,
			due DATETIME,
			completed DATETIME,
			cancelled DATETIME,
			uri TEXT DEFAULT '',
			has_notification INTEGER DEFAULT 0,
			created DATETIME DEFAULT CURRENT_TIMESTAMP,
			last_update DATETIME,
			FOREIGN KEY (job_id) REFERENCES jobs(id) ON DELETE CASCADE
		)`,

		`CREATE TABLE IF NOT EXISTS notes (
			id TEXT PRIMARY KEY,
			job_id TEXT,
			title TEXT NOT NULL,
			body TEXT DEFAULT '',
			starred INTEGER DEFAULT 0,
			posted_date DATETIME NOT NULL,
			alive INTEGER DEFAULT 1,
			created DATETIME DEFAULT CURRENT_TIMESTAMP,
			last_update DATETIME,
			FOREIGN KEY (job_id) REFERENCES jobs(id) ON DELETE SET NULL
		)`,

		`CREATE TABLE IF NOT EXISTS note_versions (
			id TEXT PRIMARY KEY,
			note_id TEXT NOT NULL,
			title TEXT NOT NULL,
			content TEXT DEFAULT '',
			starred INTEGER DEFAULT 0,
			source TEXT DEFAULT 'manual',
			created DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (note_id) REFERENCES notes(id) ON DELETE CASCADE
		)`,

		`CREATE TABLE IF NOT EXISTS people (
			id TEXT PRIMARY KEY,
			company_id TEXT,
			name TEXT NOT NULL,
			created DATETIME DEFAULT CURRENT_TIMESTAMP,
			last_update DATETIME,
			FOREIGN KEY (company_id) REFERENCES companies(id) ON DELETE SET NULL
		)`,

		`CREATE TABLE IF NOT EXISTS plans (
			id TEXT PRIMARY KEY,
			job_ids TEXT DEFAULT '',
			task_ids TEXT DEFAULT '',
			note_ids TEXT DEFAULT '',
			project_ids TEXT DEFAULT '',
			company_ids TEXT DEFAULT '',
			created DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS terms (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			alive INTEGER DEFAULT 1,
			created DATETIME DEFAULT CURRENT_TIMESTAMP,
			last_update DATETIME
		)`,

		`CREATE TABLE IF NOT EXISTS definitions (
			id TEXT PRIMARY KEY,
			term_id TEXT NOT NULL,
			job_id TEXT NOT NULL,
			definition TEXT NOT NULL,
			alive INTEGER DEFAULT 1,
			created DATETIME DEFAULT CURRENT_TIMESTAMP,
			last_update DATETIME,
			FOREIGN KEY (term_id) REFERENCES terms(id) ON DELETE CASCADE,
			FOREIGN KEY (job_id) REFERENCES jobs(id) ON DELETE CASCADE
		)`,

		`CREATE TABLE IF NOT EXISTS banned_words (
			id TEXT PRIMARY KEY,
			project_id TEXT NOT NULL,
			word TEXT NOT NULL,
			created DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
		)`,

		`CREATE TABLE IF NOT EXISTS saved_searches (
			id TEXT PRIMARY KEY,
			term TEXT NOT NULL,
			alive INTEGER DEFAULT 1,
			created DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS assessment_factors (
			id TEXT PRIMARY KEY,
			description TEXT NOT NULL,
			value INTEGER DEFAULT 0,
			weight INTEGER DEFAULT 0,
			alive INTEGER DEFAULT 1,
			created DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS assessment_thresholds (
			id TEXT PRIMARY KEY,
			label TEXT NOT NULL,
			value INTEGER DEFAULT 0,
			default_value INTEGER DEFAULT 0,
			colour TEXT DEFAULT '',
			emoji TEXT DEFAULT '',
			created DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Indexes for the hot list/count paths
		`CREATE INDEX IF NOT EXISTS idx_projects_company ON projects(company_id)`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_project ON jobs(project_id)`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_jid ON jobs(jid)`,
		`CREATE INDEX IF NOT EXISTS idx_records_job ON records(job_id)`,
		`CREATE INDEX IF NOT EXISTS idx_records_timestamp ON records(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_job ON tasks(job_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_due ON tasks(due)`,
		`CREATE INDEX IF NOT EXISTS idx_notes_job ON notes(job_id)`,
		`CREATE INDEX IF NOT EXISTS idx_note_versions_note ON note_versions(note_id)`,
		`CREATE INDEX IF NOT EXISTS idx_definitions_term ON definitions(term_id)`,
		`CREATE INDEX IF NOT EXISTS idx_definitions_job ON definitions(job_id)`,
		`CREATE INDEX IF NOT EXISTS idx_banned_words_project ON banned_words(project_id)`,
		`CREATE INDEX IF NOT EXISTS idx_terms_name ON terms(name)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// exec runs the mutation immediately when save is true, otherwise stages
// it for the next Commit.
func (db *DB) exec(save bool, query string, args ...any) error {
	if !save {
		db.Stage(query, args...)
		return nil
	}
	_, err := db.Exec(query, args...)
	return err
}

// Stage appends a mutation to the pending batch without running it.
func (db *DB) Stage(query string, args ...any) {
	db.mu.Lock()
	db.pending = append(db.pending, statement{query: query, args: args})
	db.mu.Unlock()
}

// Commit flushes all staged mutations in one transaction. A failed
// flush is retried once before the error is surfaced.
func (db *DB) Commit() error {
	db.mu.Lock()
	batch := db.pending
	db.pending = nil
	db.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}

	if err := db.runBatch(batch); err != nil {
		slog.Warn("commit failed, retrying once", "statements", len(batch), "error", err)
		if err := db.runBatch(batch); err != nil {
			slog.Error("commit retry failed", "statements", len(batch), "error", err)
			return fmt.Errorf("commit failed after retry: %w", err)
		}
	}

	return nil
}

// Pending reports how many staged mutations await Commit.
func (db *DB) Pending() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.pending)
}

func (db *DB) runBatch(batch []statement) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}

	for _, st := range batch {
		if _, err := tx.Exec(st.query, st.args...); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

func (db *DB) Close() error {
	return db.DB.Close()
}
