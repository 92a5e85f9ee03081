package domain

import "time"

// Idempotency records the resource produced by a POST carrying an
// Idempotency-Key, keyed by (scope, key). A retry with the same key inside
// the TTL returns the recorded resource instead of repeating side effects
// (a second support increment, a second model call).
type Idempotency struct {
	ID         string    `gorm:"type:char(36);primaryKey"`
	Scope      string    `gorm:"type:varchar(128);not null;uniqueIndex:ux_idem_scope_key,priority:1"`
	Key        string    `gorm:"type:varchar(200);not null;uniqueIndex:ux_idem_scope_key,priority:2"`
	ResourceID string    `gorm:"type:char(36);not null"`
	CreatedAt  time.Time `gorm:"not null"`
	ExpiresAt  time.Time `gorm:"not null;index"`
}

// TableName implements the GORM tabler interface.
func (Idempotency) TableName() string { return "idempotency" }
