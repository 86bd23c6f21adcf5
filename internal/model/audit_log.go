package model

import "time"

// AuditLog is an append-only record of a mutating action. UserID is nil for
// actions performed outside a user context (seeding, admin scripts).
type AuditLog struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    *uint     `json:"user_id,omitempty" gorm:"index"`
	Action    string    `json:"action" gorm:"type:varchar(50);not null"`
	Details   string    `json:"details" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
}
