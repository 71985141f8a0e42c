package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// NewAuditFields stamps both timestamps with now.
func NewAuditFields(now time.Time) AuditFields {
	return AuditFields{CreatedAt: now, LastUpdatedAt: now}
}
