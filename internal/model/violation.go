package model

import "time"

// Violation is one logged restricted-area violation.
type Violation struct {
	ID         int64     `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Class      string    `json:"class"`
	Confidence float64   `json:"confidence"`
	Snapshot   string    `json:"snapshot,omitempty"`
}
