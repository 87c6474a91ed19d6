package repository

import (
	"context"

	"github.com/tokenmart/backend/internal/entity"
	"github.com/tokenmart/backend/pkg/xcontext"
)

type NftTxRepository interface {
	Create(ctx context.Context, tx *entity.NftTx) error
	GetByTokenID(ctx context.Context, tokenID int64) ([]entity.NftTx, error)
}

type nftTxRepository struct{}

func NewNftTxRepository() *nftTxRepository {
	return &nftTxRepository{}
}

func (r *nftTxRepository) Create(ctx context.Context, tx *entity.NftTx) error {
	return xcontext.DB(ctx).Create(tx).Error
}

func (r *nftTxRepository) GetByTokenID(ctx context.Context, tokenID int64) ([]entity.NftTx, error) {
	var result []entity.NftTx
	err := xcontext.DB(ctx).
		Where("token_id = ?", tokenID).
		Order("created_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
