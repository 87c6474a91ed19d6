package repository

import (
	"context"

	"github.com/tokenmart/backend/internal/entity"
	"github.com/tokenmart/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type NftRepository interface {
	Create(ctx context.Context, nft *entity.NonFungibleToken) error
	GetByTokenID(ctx context.Context, tokenID int64) (*entity.NonFungibleToken, error)
	// GetByTokenIDForUpdate locks the row until the surrounding
	// transaction finishes. Must be called inside a transaction.
	GetByTokenIDForUpdate(ctx context.Context, tokenID int64) (*entity.NonFungibleToken, error)
	GetAll(ctx context.Context) ([]entity.NonFungibleToken, error)
	Update(ctx context.Context, nft *entity.NonFungibleToken) error
}

type nftRepository struct{}

func NewNftRepository() *nftRepository {
	return &nftRepository{}
}

func (r *nftRepository) Create(ctx context.Context, nft *entity.NonFungibleToken) error {
	return xcontext.DB(ctx).Create(nft).Error
}

func (r *nftRepository) GetByTokenID(ctx context.Context, tokenID int64) (*entity.NonFungibleToken, error) {
	var result entity.NonFungibleToken
	err := xcontext.DB(ctx).Where("token_id = ?", tokenID).Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *nftRepository) GetByTokenIDForUpdate(ctx context.Context, tokenID int64) (*entity.NonFungibleToken, error) {
	var result entity.NonFungibleToken
	err := xcontext.DB(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("token_id = ?", tokenID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// GetAll returns every token in creation order.
func (r *nftRepository) GetAll(ctx context.Context) ([]entity.NonFungibleToken, error) {
	var result []entity.NonFungibleToken
	err := xcontext.DB(ctx).Order("seq ASC").Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *nftRepository) Update(ctx context.Context, nft *entity.NonFungibleToken) error {
	return xcontext.DB(ctx).Save(nft).Error
}
