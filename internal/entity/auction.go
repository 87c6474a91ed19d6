package entity

import (
	"database/sql"
	"time"
)

// Auction is a time-boxed competitive sale of a single token. The
// primary key doubles as the registry-assigned sequential auction id.
// At most one row per token may have Active set at any time.
type Auction struct {
	ID int64 `gorm:"primaryKey;autoIncrement"`

	TokenID int64  `gorm:"index:idx_auctions_token_active"`
	Seller  string `gorm:"index"`

	StartPrice int64
	EndTime    time.Time

	HighestBid    int64
	HighestBidder sql.NullString

	Active bool `gorm:"index:idx_auctions_token_active"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
