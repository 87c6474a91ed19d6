package entity

import (
	"github.com/tokenmart/backend/pkg/enum"
)

type NftTxKind string

var (
	NftTxTransfer   = enum.New(NftTxKind("transfer"))
	NftTxPurchase   = enum.New(NftTxKind("purchase"))
	NftTxSettlement = enum.New(NftTxKind("settlement"))
)

// NftTx records one ownership change of a token.
type NftTx struct {
	Base

	TokenID int64 `gorm:"index"`

	FromAddress string
	ToAddress   string

	// Amount paid, zero for plain transfers.
	Amount int64

	Kind NftTxKind
}
