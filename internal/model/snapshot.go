package model

import "time"

// Snapshot is the backup document exchanged by backup and restore.
type Snapshot struct {
	Products     []Product     `json:"products"`
	Transactions []Transaction `json:"transactions"`
	Logs         []LogEntry    `json:"logs,omitempty"`
	ExportedAt   time.Time     `json:"exported_at,omitempty"`
}
