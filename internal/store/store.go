// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"

	"assignhelper/internal/domain"
)

// Repository defines the interface for persisting question history.
type Repository interface {
	// RecordQuestion appends an answered question to the history.
	RecordQuestion(ctx context.Context, entry *domain.HistoryEntry) error

	// RecentQuestions retrieves the most recently answered questions,
	// newest first, up to limit entries.
	RecentQuestions(ctx context.Context, limit int) ([]*domain.HistoryEntry, error)

	// MostFrequent retrieves the most frequently asked questions with their
	// counts, highest count first, up to limit entries.
	MostFrequent(ctx context.Context, limit int) ([]*domain.FrequencyEntry, error)

	// PurgeAll deletes every history entry and returns how many were removed.
	PurgeAll(ctx context.Context) (int64, error)

	// Ping verifies database connectivity and returns an error if the database is unreachable.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}
