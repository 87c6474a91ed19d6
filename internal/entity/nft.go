package entity

import (
	"time"
)

// NonFungibleToken is a uniquely identified ownable asset. TokenID is
// assigned by the creator; Seq is the storage-assigned insertion
// sequence and preserves creation order for listings and search.
type NonFungibleToken struct {
	Seq     int64 `gorm:"primaryKey;autoIncrement"`
	TokenID int64 `gorm:"uniqueIndex"`

	Name        string
	Description string

	Owner   string `gorm:"index"`
	Price   int64
	ForSale bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (NonFungibleToken) TableName() string {
	return "non_fungible_tokens"
}
