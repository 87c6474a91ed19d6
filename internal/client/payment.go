package client

import (
	"context"

	"github.com/tokenmart/backend/internal/repository"
)

// EscrowAddress is the ledger account holding funds the market has
// taken custody of (running bids, in-flight purchases).
const EscrowAddress = "market-escrow"

// PaymentCaller is the value-transfer rail the market settles through.
// All methods are synchronous and all-or-nothing; when called inside a
// database transaction they commit or roll back with it.
type PaymentCaller interface {
	// DebitCaller moves amount from the given account into escrow. It
	// fails if the account does not hold amount.
	DebitCaller(ctx context.Context, account string, amount int64) error

	// Credit pays amount out of escrow to the given account.
	Credit(ctx context.Context, account string, amount int64) error

	// Refund returns previously escrowed amount to the given account.
	Refund(ctx context.Context, account string, amount int64) error
}

type ledgerPaymentCaller struct {
	balanceRepo repository.BalanceRepository
}

func NewLedgerPaymentCaller(balanceRepo repository.BalanceRepository) *ledgerPaymentCaller {
	return &ledgerPaymentCaller{balanceRepo: balanceRepo}
}

func (c *ledgerPaymentCaller) DebitCaller(ctx context.Context, account string, amount int64) error {
	if err := c.balanceRepo.Deduct(ctx, account, amount); err != nil {
		return err
	}

	return c.balanceRepo.Add(ctx, EscrowAddress, amount)
}

func (c *ledgerPaymentCaller) Credit(ctx context.Context, account string, amount int64) error {
	if err := c.balanceRepo.Deduct(ctx, EscrowAddress, amount); err != nil {
		return err
	}

	return c.balanceRepo.Add(ctx, account, amount)
}

func (c *ledgerPaymentCaller) Refund(ctx context.Context, account string, amount int64) error {
	return c.Credit(ctx, account, amount)
}
