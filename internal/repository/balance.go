package repository

import (
	"context"
	"errors"

	"github.com/tokenmart/backend/internal/entity"
	"github.com/tokenmart/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrInsufficientBalance is returned by Deduct when the account does
// not hold the requested amount.
var ErrInsufficientBalance = errors.New("insufficient balance")

type BalanceRepository interface {
	Get(ctx context.Context, address string) (*entity.Balance, error)
	Add(ctx context.Context, address string, amount int64) error
	Deduct(ctx context.Context, address string, amount int64) error
}

type balanceRepository struct{}

func NewBalanceRepository() *balanceRepository {
	return &balanceRepository{}
}

func (r *balanceRepository) Get(ctx context.Context, address string) (*entity.Balance, error) {
	var result entity.Balance
	err := xcontext.DB(ctx).Where("address = ?", address).Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *balanceRepository) Add(ctx context.Context, address string, amount int64) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "address"}},
			DoUpdates: clause.Assignments(map[string]any{
				"amount": gorm.Expr("amount + ?", amount),
			}),
		}).
		Create(&entity.Balance{Address: address, Amount: amount}).Error
}

func (r *balanceRepository) Deduct(ctx context.Context, address string, amount int64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Balance{}).
		Where("address = ? AND amount >= ?", address, amount).
		Update("amount", gorm.Expr("amount - ?", amount))

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return ErrInsufficientBalance
	}

	return nil
}
