package model

import "time"

// User roles form a closed set validated at the registration boundary.
const (
	RoleAdmin   = "admin"
	RoleClient  = "client"
	RoleCarrier = "carrier"
	RoleAuditor = "auditor"
)

// ValidRole reports whether role is one of the recognized user roles
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleClient, RoleCarrier, RoleAuditor:
		return true
	}
	return false
}

// User represents an authenticated actor stored in the database.
// Username is an email address. Password is never serialized.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"type:varchar(100);uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"type:varchar(255);not null"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null"`
	Role      string    `json:"role" gorm:"type:varchar(20);not null"`
	CompanyID *uint     `json:"company_id,omitempty" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
}
