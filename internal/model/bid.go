package model

import "time"

// Bid statuses
const (
	BidStatusPending  = "pending"
	BidStatusAccepted = "accepted"
	BidStatusRejected = "rejected"
)

// Bid is a carrier's priced proposal against a quote
type Bid struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	QuoteID       uint      `json:"quote_id" gorm:"index;not null"`
	CarrierID     uint      `json:"carrier_id" gorm:"index;not null"`
	Amount        float64   `json:"amount" gorm:"not null"`
	EstimatedDays int       `json:"estimated_days" gorm:"not null"`
	Conditions    string    `json:"conditions" gorm:"type:text"`
	Status        string    `json:"status" gorm:"type:varchar(20);not null;default:pending"`
	CreatedAt     time.Time `json:"created_at"`

	Carrier *User `json:"carrier,omitempty" gorm:"foreignKey:CarrierID"`
}
