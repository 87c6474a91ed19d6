package domain

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tokenmart/backend/internal/client"
	"github.com/tokenmart/backend/internal/entity"
	"github.com/tokenmart/backend/internal/model"
	"github.com/tokenmart/backend/internal/repository"
	"github.com/tokenmart/backend/pkg/clock"
	"github.com/tokenmart/backend/pkg/errorx"
	"github.com/tokenmart/backend/pkg/xcontext"
	"github.com/tokenmart/backend/pkg/xredis"
	"gorm.io/gorm"
)

type AuctionDomain interface {
	Create(context.Context, *model.CreateAuctionRequest) (*model.CreateAuctionResponse, error)
	Get(context.Context, *model.GetAuctionRequest) (*model.GetAuctionResponse, error)
	GetByToken(context.Context, *model.GetAuctionsByTokenRequest) (*model.GetAuctionsByTokenResponse, error)
	Bid(context.Context, *model.BidRequest) (*model.BidResponse, error)
	End(context.Context, *model.EndAuctionRequest) (*model.EndAuctionResponse, error)
	GetRemainingTime(context.Context, *model.GetRemainingTimeRequest) (*model.GetRemainingTimeResponse, error)
}

type auctionDomain struct {
	auctionRepo   repository.AuctionRepository
	nftRepo       repository.NftRepository
	nftTxRepo     repository.NftTxRepository
	paymentCaller client.PaymentCaller
	redisClient   xredis.Client
	clock         clock.Clock
}

func NewAuctionDomain(
	auctionRepo repository.AuctionRepository,
	nftRepo repository.NftRepository,
	nftTxRepo repository.NftTxRepository,
	paymentCaller client.PaymentCaller,
	redisClient xredis.Client,
	clock clock.Clock,
) *auctionDomain {
	return &auctionDomain{
		auctionRepo:   auctionRepo,
		nftRepo:       nftRepo,
		nftTxRepo:     nftTxRepo,
		paymentCaller: paymentCaller,
		redisClient:   redisClient,
		clock:         clock,
	}
}

func (d *auctionDomain) Create(
	ctx context.Context, req *model.CreateAuctionRequest,
) (*model.CreateAuctionResponse, error) {
	if req.Duration <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Duration must be positive")
	}

	if req.StartPrice < 0 {
		return nil, errorx.New(errorx.BadRequest, "Start price must not be negative")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	// The token row lock serializes concurrent creations for the same
	// token, so the active-auction check below cannot race.
	nft, err := d.nftRepo.GetByTokenIDForUpdate(ctx, req.TokenID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found token")
		}

		xcontext.Logger(ctx).Errorf("Cannot get token: %v", err)
		return nil, errorx.Unknown
	}

	if nft.ForSale {
		return nil, errorx.New(errorx.TokenAlreadyForSale, "Token is listed for sale")
	}

	if nft.Owner != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Not the token owner")
	}

	// One active auction per token. A token already under auction
	// cannot enter a second one.
	_, err = d.auctionRepo.GetActiveByTokenID(ctx, req.TokenID)
	if err == nil {
		return nil, errorx.New(errorx.TokenInAuction, "Token is in an active auction")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check active auction: %v", err)
		return nil, errorx.Unknown
	}

	auction := &entity.Auction{
		TokenID:    nft.TokenID,
		Seller:     nft.Owner,
		StartPrice: req.StartPrice,
		EndTime:    d.clock.Now().Add(time.Duration(req.Duration) * time.Second),
		HighestBid: 0,
		Active:     true,
	}

	if err := d.auctionRepo.Create(ctx, auction); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create auction: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.CreateAuctionResponse{Auction: convertAuction(auction)}, nil
}

func (d *auctionDomain) Get(
	ctx context.Context, req *model.GetAuctionRequest,
) (*model.GetAuctionResponse, error) {
	auction, err := d.auctionRepo.GetByID(ctx, req.AuctionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found auction")
		}

		xcontext.Logger(ctx).Errorf("Cannot get auction: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetAuctionResponse{Auction: convertAuction(auction)}, nil
}

func (d *auctionDomain) GetByToken(
	ctx context.Context, req *model.GetAuctionsByTokenRequest,
) (*model.GetAuctionsByTokenResponse, error) {
	auctions, err := d.auctionRepo.GetByTokenID(ctx, req.TokenID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get auctions of token: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Auction{}
	for i := range auctions {
		result = append(result, convertAuction(&auctions[i]))
	}

	return &model.GetAuctionsByTokenResponse{Auctions: result}, nil
}

func (d *auctionDomain) Bid(
	ctx context.Context, req *model.BidRequest,
) (*model.BidResponse, error) {
	bidder := xcontext.RequestUserID(ctx)

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	// The locked read serializes concurrent bids on the same auction:
	// a second bidder blocks here until the first one commits, then
	// re-evaluates against the committed highest bid.
	auction, err := d.auctionRepo.GetByIDForUpdate(ctx, req.AuctionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found auction")
		}

		xcontext.Logger(ctx).Errorf("Cannot get auction: %v", err)
		return nil, errorx.Unknown
	}

	if !auction.Active {
		return nil, errorx.New(errorx.AuctionNotActive, "Auction is not active")
	}

	// Bidding at exactly the end time is still valid.
	if d.clock.Now().After(auction.EndTime) {
		return nil, errorx.New(errorx.AuctionEnded, "Auction already expired")
	}

	if req.Amount <= auction.HighestBid {
		return nil, errorx.New(errorx.BidTooLow, "Bid must exceed the current highest bid")
	}

	// Refund the previous leader before recording the new bid. A
	// refund failure aborts the whole bid and keeps them in the lead.
	if auction.HighestBidder.Valid {
		err := d.paymentCaller.Refund(ctx, auction.HighestBidder.String, auction.HighestBid)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot refund previous bidder: %v", err)
			return nil, errorx.New(errorx.RefundFailed, "Cannot refund the previous bidder")
		}
	}

	if err := d.paymentCaller.DebitCaller(ctx, bidder, req.Amount); err != nil {
		xcontext.Logger(ctx).Debugf("Cannot escrow bid: %v", err)
		return nil, errorx.New(errorx.InsufficientFunds, "Not enough funds")
	}

	auction.HighestBid = req.Amount
	auction.HighestBidder = sql.NullString{String: bidder, Valid: true}
	if err := d.auctionRepo.Update(ctx, auction); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update auction: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.BidResponse{}, nil
}

func (d *auctionDomain) End(
	ctx context.Context, req *model.EndAuctionRequest,
) (*model.EndAuctionResponse, error) {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	// The locked read serializes concurrent settlements: the loser of
	// the race sees Active already cleared and pays nobody twice.
	auction, err := d.auctionRepo.GetByIDForUpdate(ctx, req.AuctionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found auction")
		}

		xcontext.Logger(ctx).Errorf("Cannot get auction: %v", err)
		return nil, errorx.Unknown
	}

	if !auction.Active {
		return nil, errorx.New(errorx.AuctionNotActive, "Auction already ended")
	}

	// Settlement requires the auction to be strictly past its end
	// time. Anyone may trigger it.
	if !d.clock.Now().After(auction.EndTime) {
		return nil, errorx.New(errorx.AuctionNotEnded, "Auction has not expired yet")
	}

	auction.Active = false
	if err := d.auctionRepo.Update(ctx, auction); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot close auction: %v", err)
		return nil, errorx.Unknown
	}

	// With no bids the auction just closes; ownership and balances
	// stay untouched.
	if auction.HighestBidder.Valid {
		nft, err := d.nftRepo.GetByTokenIDForUpdate(ctx, auction.TokenID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get auctioned token: %v", err)
			return nil, errorx.Unknown
		}

		seller := nft.Owner
		if err := d.paymentCaller.Credit(ctx, seller, auction.HighestBid); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot pay the seller: %v", err)
			return nil, errorx.New(errorx.CreditFailed, "Cannot pay the seller")
		}

		winner := auction.HighestBidder.String
		nft.Owner = winner
		nft.Price = 0
		nft.ForSale = false
		if err := d.nftRepo.Update(ctx, nft); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot update auctioned token: %v", err)
			return nil, errorx.Unknown
		}

		err = d.nftTxRepo.Create(ctx, &entity.NftTx{
			Base:        entity.Base{ID: uuid.NewString()},
			TokenID:     nft.TokenID,
			FromAddress: seller,
			ToAddress:   winner,
			Amount:      auction.HighestBid,
			Kind:        entity.NftTxSettlement,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot record auction settlement: %v", err)
			return nil, errorx.Unknown
		}
	}

	xcontext.WithCommitDBTransaction(ctx)

	if auction.HighestBidder.Valid {
		trackTrade(ctx, d.redisClient, auction.TokenID)
	}

	return &model.EndAuctionResponse{}, nil
}

func (d *auctionDomain) GetRemainingTime(
	ctx context.Context, req *model.GetRemainingTimeRequest,
) (*model.GetRemainingTimeResponse, error) {
	auction, err := d.auctionRepo.GetByID(ctx, req.AuctionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found auction")
		}

		xcontext.Logger(ctx).Errorf("Cannot get auction: %v", err)
		return nil, errorx.Unknown
	}

	remaining := auction.EndTime.Sub(d.clock.Now())
	if remaining < 0 {
		remaining = 0
	}

	return &model.GetRemainingTimeResponse{
		RemainingTime: int64(remaining / time.Second),
	}, nil
}
