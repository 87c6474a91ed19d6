package entity

import (
	"time"
)

// Balance is one account of the internal value ledger, in the smallest
// currency unit. The escrow account holds bids until refund or payout.
type Balance struct {
	Address string `gorm:"primarykey"`
	Amount  int64

	UpdatedAt time.Time
}
