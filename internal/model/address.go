package model

import "time"

// Address is a postal address owned by exactly one company
type Address struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	CompanyID    uint      `json:"company_id" gorm:"index;not null"`
	Street       string    `json:"street" gorm:"type:varchar(150);not null"`
	Number       string    `json:"number" gorm:"type:varchar(20);not null"`
	Neighborhood string    `json:"neighborhood" gorm:"type:varchar(100);not null"`
	City         string    `json:"city" gorm:"type:varchar(100);not null"`
	State        string    `json:"state" gorm:"type:varchar(50);not null"`
	ZipCode      string    `json:"zip_code" gorm:"type:varchar(20);not null"`
	Country      string    `json:"country" gorm:"type:varchar(50);default:BR"`
	CreatedAt    time.Time `json:"created_at"`
}
