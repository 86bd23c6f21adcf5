package model

import "time"

// Quote statuses
const (
	QuoteStatusOpen        = "open"
	QuoteStatusResponded   = "responded"
	QuoteStatusNegotiation = "negotiation"
	QuoteStatusClosed      = "closed"
)

// Quote is a freight request posted by a client describing cargo and route
type Quote struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	ClientID    uint       `json:"client_id" gorm:"index;not null"`
	Origin      string     `json:"origin" gorm:"type:varchar(150);not null"`
	Destination string     `json:"destination" gorm:"type:varchar(150);not null"`
	Weight      float64    `json:"weight" gorm:"not null"`
	Volume      float64    `json:"volume"`
	CargoType   string     `json:"cargo_type" gorm:"type:varchar(100);not null"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Notes       string     `json:"notes" gorm:"type:text"`
	Status      string     `json:"status" gorm:"type:varchar(20);not null;default:open"`
	CreatedAt   time.Time  `json:"created_at"`

	Client *User `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Bids   []Bid `json:"bids,omitempty" gorm:"foreignKey:QuoteID"`
}
