package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bid statuses. A bid starts out pending and is moved to accepted or
// rejected by the owner of the target collection.
const (
	BidStatusPending  = "pending"
	BidStatusAccepted = "accepted"
	BidStatusRejected = "rejected"
)

type Bid struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Status       string          `gorm:"default:'pending';size:20" json:"status"` // pending, accepted, rejected
	UserID       uint            `gorm:"index" json:"userId"`
	CollectionID uint            `gorm:"index" json:"collectionId"`

	CreatedAt time.Time `json:"createdAt"`

	// Relations
	User       *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Collection *Collection `gorm:"foreignKey:CollectionID" json:"collection,omitempty"`
}
