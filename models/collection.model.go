package models

import (
	"github.com/shopspring/decimal"
)

type Collection struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Stocks      int             `gorm:"not null" json:"stocks"` // remaining acceptable count
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	OwnerID     uint            `gorm:"index" json:"ownerId"`

	// Relations
	Owner *User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Bids  []Bid `gorm:"foreignKey:CollectionID" json:"bids,omitempty"`

	// Populated on list queries, not a column.
	BidCount *int64 `gorm:"-" json:"bidCount,omitempty"`
}
