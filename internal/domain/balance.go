package domain

import (
	"context"
	"errors"

	"github.com/tokenmart/backend/internal/model"
	"github.com/tokenmart/backend/internal/repository"
	"github.com/tokenmart/backend/pkg/errorx"
	"github.com/tokenmart/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type BalanceDomain interface {
	GetMyBalance(context.Context, *model.GetMyBalanceRequest) (*model.GetMyBalanceResponse, error)
	Deposit(context.Context, *model.DepositRequest) (*model.DepositResponse, error)
}

type balanceDomain struct {
	balanceRepo repository.BalanceRepository
}

func NewBalanceDomain(balanceRepo repository.BalanceRepository) *balanceDomain {
	return &balanceDomain{balanceRepo: balanceRepo}
}

func (d *balanceDomain) GetMyBalance(
	ctx context.Context, req *model.GetMyBalanceRequest,
) (*model.GetMyBalanceResponse, error) {
	address := xcontext.RequestUserID(ctx)

	balance, err := d.balanceRepo.Get(ctx, address)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.GetMyBalanceResponse{Address: address, Balance: 0}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get balance: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetMyBalanceResponse{Address: address, Balance: balance.Amount}, nil
}

func (d *balanceDomain) Deposit(
	ctx context.Context, req *model.DepositRequest,
) (*model.DepositResponse, error) {
	if req.Amount <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Amount must be positive")
	}

	address := xcontext.RequestUserID(ctx)

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.balanceRepo.Add(ctx, address, req.Amount); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot deposit: %v", err)
		return nil, errorx.Unknown
	}

	balance, err := d.balanceRepo.Get(ctx, address)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get balance after deposit: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.DepositResponse{Balance: balance.Amount}, nil
}
