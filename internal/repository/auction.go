package repository

import (
	"context"

	"github.com/tokenmart/backend/internal/entity"
	"github.com/tokenmart/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type AuctionRepository interface {
	Create(ctx context.Context, auction *entity.Auction) error
	GetByID(ctx context.Context, id int64) (*entity.Auction, error)
	// GetByIDForUpdate locks the row until the surrounding transaction
	// finishes. Must be called inside a transaction.
	GetByIDForUpdate(ctx context.Context, id int64) (*entity.Auction, error)
	// GetActiveByTokenID returns gorm.ErrRecordNotFound if the token
	// has no active auction.
	GetActiveByTokenID(ctx context.Context, tokenID int64) (*entity.Auction, error)
	GetByTokenID(ctx context.Context, tokenID int64) ([]entity.Auction, error)
	Update(ctx context.Context, auction *entity.Auction) error
}

type auctionRepository struct{}

func NewAuctionRepository() *auctionRepository {
	return &auctionRepository{}
}

func (r *auctionRepository) Create(ctx context.Context, auction *entity.Auction) error {
	return xcontext.DB(ctx).Create(auction).Error
}

func (r *auctionRepository) GetByID(ctx context.Context, id int64) (*entity.Auction, error) {
	var result entity.Auction
	err := xcontext.DB(ctx).Where("id = ?", id).Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *auctionRepository) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Auction, error) {
	var result entity.Auction
	err := xcontext.DB(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *auctionRepository) GetActiveByTokenID(ctx context.Context, tokenID int64) (*entity.Auction, error) {
	var result entity.Auction
	err := xcontext.DB(ctx).
		Where("token_id = ? AND active = ?", tokenID, true).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *auctionRepository) GetByTokenID(ctx context.Context, tokenID int64) ([]entity.Auction, error) {
	var result []entity.Auction
	err := xcontext.DB(ctx).
		Where("token_id = ?", tokenID).
		Order("id ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *auctionRepository) Update(ctx context.Context, auction *entity.Auction) error {
	return xcontext.DB(ctx).Save(auction).Error
}
