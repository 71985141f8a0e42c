package models

import "time"

// AuditFields holds the timestamps stored on every ledger row.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt" db:"last_updated_at"`
}
