package domain

import "time"

// DispatchRecord is one entry in the dispatch log.
type DispatchRecord struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Input      string    `json:"input"`
	Operation  string    `json:"operation"`
	Source     string    `json:"source"`
	Success    bool      `json:"success"`
	Message    string    `json:"message"`
	DurationMS int64     `json:"duration_ms"`
}
