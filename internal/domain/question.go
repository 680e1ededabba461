// Package domain contains core domain types for the assignment helper.
package domain

import (
	"time"
)

// HistoryEntry is an answered question as persisted and shown on the page.
type HistoryEntry struct {
	ID       int64     `json:"id"`
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
	HadFile  bool      `json:"had_file"`
	AskedAt  time.Time `json:"asked_at"`
}

// AskedAtDisplay returns the timestamp in the form the page renders.
func (e *HistoryEntry) AskedAtDisplay() string {
	return e.AskedAt.Format("2006-01-02 15:04")
}

// FrequencyEntry pairs a question with how many times it has been asked.
type FrequencyEntry struct {
	Question string `json:"question"`
	Count    int    `json:"count"`
}
