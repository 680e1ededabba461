package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"assignhelper/internal/domain"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Repository using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a new SQLite-backed repository.
func NewSQLite(dbPath string) (Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// Open database with WAL mode for better concurrency.
	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
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

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS questions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		question TEXT NOT NULL,
		answer TEXT NOT NULL,
		had_file INTEGER NOT NULL DEFAULT 0,
		asked_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_questions_asked_at ON questions(asked_at);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// RecordQuestion appends an answered question to the history.
func (s *SQLiteStore) RecordQuestion(ctx context.Context, entry *domain.HistoryEntry) error {
	query := `INSERT INTO questions (question, answer, had_file, asked_at) VALUES (?, ?, ?, ?)`

	hadFile := 0
	if entry.HadFile {
		hadFile = 1
	}

	result, err := s.db.ExecContext(ctx, query,
		entry.Question, entry.Answer, hadFile, entry.AskedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert question: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get insert id: %w", err)
	}
	entry.ID = id

	return nil
}

// RecentQuestions retrieves the most recently answered questions, newest first.
func (s *SQLiteStore) RecentQuestions(ctx context.Context, limit int) ([]*domain.HistoryEntry, error) {
	query := `
		SELECT id, question, answer, had_file, asked_at
		FROM questions ORDER BY asked_at DESC, id DESC LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent questions: %w", err)
	}
	defer rows.Close()

	var entries []*domain.HistoryEntry
	for rows.Next() {
		var entry domain.HistoryEntry
		var hadFile int
		var askedAt int64

		if err := rows.Scan(&entry.ID, &entry.Question, &entry.Answer, &hadFile, &askedAt); err != nil {
			return nil, fmt.Errorf("scan question row: %w", err)
		}

		entry.HadFile = hadFile != 0
		entry.AskedAt = time.Unix(askedAt, 0)
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recent questions: %w", err)
	}

	return entries, nil
}

// MostFrequent retrieves the most frequently asked questions with counts.
func (s *SQLiteStore) MostFrequent(ctx context.Context, limit int) ([]*domain.FrequencyEntry, error) {
	query := `
		SELECT question, COUNT(*) AS cnt
		FROM questions GROUP BY question ORDER BY cnt DESC, question ASC LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query most frequent questions: %w", err)
	}
	defer rows.Close()

	var entries []*domain.FrequencyEntry
	for rows.Next() {
		var entry domain.FrequencyEntry
		if err := rows.Scan(&entry.Question, &entry.Count); err != nil {
			return nil, fmt.Errorf("scan frequency row: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate most frequent questions: %w", err)
	}

	return entries, nil
}

// PurgeAll deletes every history entry.
func (s *SQLiteStore) PurgeAll(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM questions`)
	if err != nil {
		return 0, fmt.Errorf("purge questions: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("get rows affected: %w", err)
	}
	return rows, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}
