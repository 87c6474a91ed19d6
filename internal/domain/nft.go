package domain

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/tokenmart/backend/internal/client"
	"github.com/tokenmart/backend/internal/entity"
	"github.com/tokenmart/backend/internal/model"
	"github.com/tokenmart/backend/internal/repository"
	"github.com/tokenmart/backend/pkg/enum"
	"github.com/tokenmart/backend/pkg/errorx"
	"github.com/tokenmart/backend/pkg/xcontext"
	"github.com/tokenmart/backend/pkg/xredis"
	"gorm.io/gorm"
)

type NftDomain interface {
	Create(context.Context, *model.CreateTokenRequest) (*model.CreateTokenResponse, error)
	Get(context.Context, *model.GetTokenRequest) (*model.GetTokenResponse, error)
	Search(context.Context, *model.SearchTokensRequest) (*model.SearchTokensResponse, error)
	Transfer(context.Context, *model.TransferTokenRequest) (*model.TransferTokenResponse, error)
	SetForSale(context.Context, *model.SetTokenForSaleRequest) (*model.SetTokenForSaleResponse, error)
	RemoveFromSale(context.Context, *model.RemoveTokenFromSaleRequest) (*model.RemoveTokenFromSaleResponse, error)
	Buy(context.Context, *model.BuyTokenRequest) (*model.BuyTokenResponse, error)
	GetHistory(context.Context, *model.GetTokenHistoryRequest) (*model.GetTokenHistoryResponse, error)
	GetTrending(context.Context, *model.GetTrendingTokensRequest) (*model.GetTrendingTokensResponse, error)
}

type nftDomain struct {
	nftRepo       repository.NftRepository
	auctionRepo   repository.AuctionRepository
	nftTxRepo     repository.NftTxRepository
	paymentCaller client.PaymentCaller
	redisClient   xredis.Client
}

func NewNftDomain(
	nftRepo repository.NftRepository,
	auctionRepo repository.AuctionRepository,
	nftTxRepo repository.NftTxRepository,
	paymentCaller client.PaymentCaller,
	redisClient xredis.Client,
) *nftDomain {
	return &nftDomain{
		nftRepo:       nftRepo,
		auctionRepo:   auctionRepo,
		nftTxRepo:     nftTxRepo,
		paymentCaller: paymentCaller,
		redisClient:   redisClient,
	}
}

func (d *nftDomain) Create(
	ctx context.Context, req *model.CreateTokenRequest,
) (*model.CreateTokenResponse, error) {
	if req.TokenID <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Token id must be positive")
	}

	nft := &entity.NonFungibleToken{
		TokenID:     req.TokenID,
		Name:        req.Name,
		Description: req.Description,
		Owner:       xcontext.RequestUserID(ctx),
		Price:       0,
		ForSale:     false,
	}

	// The unique index on token_id is the only collision check, so
	// two concurrent creations of the same id cannot both pass.
	if err := d.nftRepo.Create(ctx, nft); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errorx.New(errorx.AlreadyExists, "Token %d already exists", req.TokenID)
		}

		xcontext.Logger(ctx).Errorf("Cannot create token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateTokenResponse{Token: convertToken(nft)}, nil
}

func (d *nftDomain) Get(
	ctx context.Context, req *model.GetTokenRequest,
) (*model.GetTokenResponse, error) {
	nft, err := d.nftRepo.GetByTokenID(ctx, req.TokenID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found token")
		}

		xcontext.Logger(ctx).Errorf("Cannot get token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetTokenResponse{Token: convertToken(nft)}, nil
}

// Search returns every token whose name or description contains the
// keyword as a case-sensitive substring, in creation order. An empty
// keyword matches all tokens.
func (d *nftDomain) Search(
	ctx context.Context, req *model.SearchTokensRequest,
) (*model.SearchTokensResponse, error) {
	nfts, err := d.nftRepo.GetAll(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get tokens: %v", err)
		return nil, errorx.Unknown
	}

	tokens := []model.Token{}
	for i := range nfts {
		if strings.Contains(nfts[i].Name, req.Keyword) ||
			strings.Contains(nfts[i].Description, req.Keyword) {
			tokens = append(tokens, convertToken(&nfts[i]))
		}
	}

	return &model.SearchTokensResponse{Tokens: tokens}, nil
}

func (d *nftDomain) Transfer(
	ctx context.Context, req *model.TransferTokenRequest,
) (*model.TransferTokenResponse, error) {
	if req.ToAddress == "" {
		return nil, errorx.New(errorx.BadRequest, "Receiver address is empty")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	nft, err := d.getOwnedTokenNotInAuction(ctx, req.TokenID)
	if err != nil {
		return nil, err
	}

	from := nft.Owner
	nft.Owner = req.ToAddress
	if err := d.nftRepo.Update(ctx, nft); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update token owner: %v", err)
		return nil, errorx.Unknown
	}

	err = d.nftTxRepo.Create(ctx, &entity.NftTx{
		Base:        entity.Base{ID: uuid.NewString()},
		TokenID:     nft.TokenID,
		FromAddress: from,
		ToAddress:   req.ToAddress,
		Amount:      0,
		Kind:        entity.NftTxTransfer,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot record token transfer: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.TransferTokenResponse{}, nil
}

func (d *nftDomain) SetForSale(
	ctx context.Context, req *model.SetTokenForSaleRequest,
) (*model.SetTokenForSaleResponse, error) {
	if req.Price < 0 {
		return nil, errorx.New(errorx.BadRequest, "Price must not be negative")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	nft, err := d.getOwnedTokenNotInAuction(ctx, req.TokenID)
	if err != nil {
		return nil, err
	}

	nft.Price = req.Price
	nft.ForSale = true
	if err := d.nftRepo.Update(ctx, nft); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot list token for sale: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.SetTokenForSaleResponse{}, nil
}

func (d *nftDomain) RemoveFromSale(
	ctx context.Context, req *model.RemoveTokenFromSaleRequest,
) (*model.RemoveTokenFromSaleResponse, error) {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	nft, err := d.getOwnedTokenNotInAuction(ctx, req.TokenID)
	if err != nil {
		return nil, err
	}

	if !nft.ForSale {
		return nil, errorx.New(errorx.TokenNotForSale, "Token is not for sale")
	}

	nft.Price = 0
	nft.ForSale = false
	if err := d.nftRepo.Update(ctx, nft); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot remove token from sale: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.RemoveTokenFromSaleResponse{}, nil
}

func (d *nftDomain) Buy(
	ctx context.Context, req *model.BuyTokenRequest,
) (*model.BuyTokenResponse, error) {
	buyer := xcontext.RequestUserID(ctx)

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	// The locked read serializes concurrent purchases of the same
	// token: the loser of the race re-reads it as no longer for sale.
	nft, err := d.nftRepo.GetByTokenIDForUpdate(ctx, req.TokenID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found token")
		}

		xcontext.Logger(ctx).Errorf("Cannot get token: %v", err)
		return nil, errorx.Unknown
	}

	if !nft.ForSale {
		return nil, errorx.New(errorx.TokenNotForSale, "Token is not for sale")
	}

	if err := d.ensureNotInAuction(ctx, nft.TokenID); err != nil {
		return nil, err
	}

	// The payment must match the listed price exactly, in either
	// direction.
	if req.PaymentAmount != nft.Price {
		return nil, errorx.New(errorx.InsufficientFunds, "Payment does not match the price")
	}

	if buyer == nft.Owner {
		return nil, errorx.New(errorx.SelfPurchase, "Cannot buy your own token")
	}

	if err := d.paymentCaller.DebitCaller(ctx, buyer, req.PaymentAmount); err != nil {
		xcontext.Logger(ctx).Debugf("Cannot debit buyer: %v", err)
		return nil, errorx.New(errorx.InsufficientFunds, "Not enough funds")
	}

	seller := nft.Owner
	if err := d.paymentCaller.Credit(ctx, seller, req.PaymentAmount); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot credit seller: %v", err)
		return nil, errorx.New(errorx.CreditFailed, "Cannot credit the seller")
	}

	nft.Owner = buyer
	nft.Price = 0
	nft.ForSale = false
	if err := d.nftRepo.Update(ctx, nft); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update purchased token: %v", err)
		return nil, errorx.Unknown
	}

	err = d.nftTxRepo.Create(ctx, &entity.NftTx{
		Base:        entity.Base{ID: uuid.NewString()},
		TokenID:     nft.TokenID,
		FromAddress: seller,
		ToAddress:   buyer,
		Amount:      req.PaymentAmount,
		Kind:        entity.NftTxPurchase,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot record token purchase: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	trackTrade(ctx, d.redisClient, nft.TokenID)
	return &model.BuyTokenResponse{}, nil
}

func (d *nftDomain) GetHistory(
	ctx context.Context, req *model.GetTokenHistoryRequest,
) (*model.GetTokenHistoryResponse, error) {
	var kindFilter entity.NftTxKind
	if req.Kind != "" {
		kind, err := enum.ToEnum[entity.NftTxKind](req.Kind)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid history kind %s", req.Kind)
		}

		kindFilter = kind
	}

	if _, err := d.nftRepo.GetByTokenID(ctx, req.TokenID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found token")
		}

		xcontext.Logger(ctx).Errorf("Cannot get token: %v", err)
		return nil, errorx.Unknown
	}

	txs, err := d.nftTxRepo.GetByTokenID(ctx, req.TokenID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get token history: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.NftTx{}
	for i := range txs {
		if kindFilter != "" && txs[i].Kind != kindFilter {
			continue
		}

		result = append(result, convertNftTx(&txs[i]))
	}

	return &model.GetTokenHistoryResponse{Txs: result}, nil
}

func (d *nftDomain) GetTrending(
	ctx context.Context, req *model.GetTrendingTokensRequest,
) (*model.GetTrendingTokensResponse, error) {
	if d.redisClient == nil {
		return &model.GetTrendingTokensResponse{Tokens: []model.Token{}}, nil
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultTrendingLimit
	}

	members, err := d.redisClient.ZRevRangeWithScores(ctx, trendingTokensKey, 0, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get trending tokens: %v", err)
		return nil, errorx.Unknown
	}

	tokens := []model.Token{}
	for _, member := range members {
		memberID, ok := member.Member.(string)
		if !ok {
			xcontext.Logger(ctx).Warnf("Invalid trending member %v", member.Member)
			continue
		}

		tokenID, err := strconv.ParseInt(memberID, 10, 64)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Invalid trending member %v: %v", member.Member, err)
			continue
		}

		nft, err := d.nftRepo.GetByTokenID(ctx, tokenID)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot get trending token %d: %v", tokenID, err)
			continue
		}

		tokens = append(tokens, convertToken(nft))
	}

	return &model.GetTrendingTokensResponse{Tokens: tokens}, nil
}

// getOwnedTokenNotInAuction loads a token with a row lock and checks
// the common preconditions of owner-driven mutations: the token
// exists, the caller owns it, and it is not under an active auction.
// Callers must have opened a transaction.
func (d *nftDomain) getOwnedTokenNotInAuction(
	ctx context.Context, tokenID int64,
) (*entity.NonFungibleToken, error) {
	nft, err := d.nftRepo.GetByTokenIDForUpdate(ctx, tokenID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found token")
		}

		xcontext.Logger(ctx).Errorf("Cannot get token: %v", err)
		return nil, errorx.Unknown
	}

	if nft.Owner != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Not the token owner")
	}

	if err := d.ensureNotInAuction(ctx, tokenID); err != nil {
		return nil, err
	}

	return nft, nil
}

func (d *nftDomain) ensureNotInAuction(ctx context.Context, tokenID int64) error {
	_, err := d.auctionRepo.GetActiveByTokenID(ctx, tokenID)
	if err == nil {
		return errorx.New(errorx.TokenInAuction, "Token is in an active auction")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check active auction: %v", err)
		return errorx.Unknown
	}

	return nil
}
