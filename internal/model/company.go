package model

import "time"

// Company types
const (
	CompanyTypeClient  = "client"
	CompanyTypeCarrier = "carrier"
)

// Company statuses. Deletion is a status flip, the row is retained.
const (
	CompanyStatusActive   = "active"
	CompanyStatusInactive = "inactive"
	CompanyStatusDeleted  = "deleted"
)

// Company represents a client or carrier organization, distinct from the
// user accounts linked to it. FreightTypes and Regions are comma-separated
// carrier tags.
type Company struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"type:varchar(150);not null"`
	TradeName    string    `json:"trade_name" gorm:"type:varchar(150)"`
	CNPJ         string    `json:"cnpj" gorm:"type:varchar(20);uniqueIndex;not null"`
	ContactInfo  string    `json:"contact_info" gorm:"type:varchar(150)"`
	Type         string    `json:"type" gorm:"type:varchar(10);not null"`
	Status       string    `json:"status" gorm:"type:varchar(10);not null;default:active"`
	FreightTypes string    `json:"freight_types" gorm:"type:text"`
	Regions      string    `json:"regions" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
