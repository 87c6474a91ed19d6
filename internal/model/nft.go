package model

import "time"

type Token struct {
	TokenID     int64     `json:"token_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Owner       string    `json:"owner"`
	Price       int64     `json:"price"`
	ForSale     bool      `json:"for_sale"`
	CreatedAt   time.Time `json:"created_at"`
}

type NftTx struct {
	ID          string    `json:"id"`
	TokenID     int64     `json:"token_id"`
	FromAddress string    `json:"from_address"`
	ToAddress   string    `json:"to_address"`
	Amount      int64     `json:"amount"`
	Kind        string    `json:"kind"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateTokenRequest struct {
	TokenID     int64  `json:"token_id" form:"token_id"`
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
}

type CreateTokenResponse struct {
	Token Token `json:"token"`
}

type GetTokenRequest struct {
	TokenID int64 `json:"token_id" form:"token_id"`
}

type GetTokenResponse struct {
	Token Token `json:"token"`
}

type SearchTokensRequest struct {
	Keyword string `json:"keyword" form:"keyword"`
}

type SearchTokensResponse struct {
	Tokens []Token `json:"tokens"`
}

type TransferTokenRequest struct {
	TokenID   int64  `json:"token_id" form:"token_id"`
	ToAddress string `json:"to_address" form:"to_address"`
}

type TransferTokenResponse struct{}

type SetTokenForSaleRequest struct {
	TokenID int64 `json:"token_id" form:"token_id"`
	Price   int64 `json:"price" form:"price"`
}

type SetTokenForSaleResponse struct{}

type RemoveTokenFromSaleRequest struct {
	TokenID int64 `json:"token_id" form:"token_id"`
}

type RemoveTokenFromSaleResponse struct{}

type BuyTokenRequest struct {
	TokenID       int64 `json:"token_id" form:"token_id"`
	PaymentAmount int64 `json:"payment_amount" form:"payment_amount"`
}

type BuyTokenResponse struct{}

type GetTokenHistoryRequest struct {
	TokenID int64 `json:"token_id" form:"token_id"`
	// Kind optionally restricts the result to transfer, purchase, or
	// settlement records.
	Kind string `json:"kind" form:"kind"`
}

type GetTokenHistoryResponse struct {
	Txs []NftTx `json:"txs"`
}

type GetTrendingTokensRequest struct {
	Limit int `json:"limit" form:"limit"`
}

type GetTrendingTokensResponse struct {
	Tokens []Token `json:"tokens"`
}
