package model

type GetMyBalanceRequest struct{}

type GetMyBalanceResponse struct {
	Address string `json:"address"`
	Balance int64  `json:"balance"`
}

type DepositRequest struct {
	Amount int64 `json:"amount" form:"amount"`
}

type DepositResponse struct {
	Balance int64 `json:"balance"`
}
