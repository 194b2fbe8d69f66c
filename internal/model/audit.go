package model

import "time"

// AuditOutcome is the result of a console action against the backend.
type AuditOutcome string

const (
	OutcomeSuccess         AuditOutcome = "success"
	OutcomeBusinessFailure AuditOutcome = "business_failure"
	OutcomeError           AuditOutcome = "error"
)

// AuditEntry records one mutating console action.
type AuditEntry struct {
	ID        int64        `gorm:"primaryKey" json:"id"`
	Tenant    string       `gorm:"size:64;index;not null" json:"tenant"`
	Resource  string       `gorm:"size:32;not null" json:"resource"`
	Action    string       `gorm:"size:16;not null" json:"action"`
	EntityID  int64        `json:"entity_id,omitempty"`
	Outcome   AuditOutcome `gorm:"size:32;not null" json:"outcome"`
	Message   string       `gorm:"size:1024" json:"message"`
	CreatedAt time.Time    `gorm:"index;not null" json:"created_at"`
}
