package model

import "time"

type Auction struct {
	ID            int64     `json:"id"`
	TokenID       int64     `json:"token_id"`
	Seller        string    `json:"seller"`
	StartPrice    int64     `json:"start_price"`
	EndTime       time.Time `json:"end_time"`
	HighestBid    int64     `json:"highest_bid"`
	HighestBidder string    `json:"highest_bidder,omitempty"`
	Active        bool      `json:"active"`
}

type CreateAuctionRequest struct {
	TokenID    int64 `json:"token_id" form:"token_id"`
	StartPrice int64 `json:"start_price" form:"start_price"`
	// Duration of the auction in seconds.
	Duration int64 `json:"duration" form:"duration"`
}

type CreateAuctionResponse struct {
	Auction Auction `json:"auction"`
}

type GetAuctionRequest struct {
	AuctionID int64 `json:"auction_id" form:"auction_id"`
}

type GetAuctionResponse struct {
	Auction Auction `json:"auction"`
}

type GetAuctionsByTokenRequest struct {
	TokenID int64 `json:"token_id" form:"token_id"`
}

type GetAuctionsByTokenResponse struct {
	Auctions []Auction `json:"auctions"`
}

type BidRequest struct {
	AuctionID int64 `json:"auction_id" form:"auction_id"`
	Amount    int64 `json:"amount" form:"amount"`
}

type BidResponse struct{}

type EndAuctionRequest struct {
	AuctionID int64 `json:"auction_id" form:"auction_id"`
}

type EndAuctionResponse struct{}

type GetRemainingTimeRequest struct {
	AuctionID int64 `json:"auction_id" form:"auction_id"`
}

type GetRemainingTimeResponse struct {
	// RemainingTime until expiry in seconds, zero if already expired.
	RemainingTime int64 `json:"remaining_time"`
}
