package testutil

import (
	"context"

	"github.com/tokenmart/backend/internal/repository"
)

// Fixture addresses used across domain tests.
const (
	Address1 = "addr-alice"
	Address2 = "addr-bob"
	Address3 = "addr-carol"
)

// FixtureBalance is the ledger amount each fixture address starts with.
const FixtureBalance int64 = 1000

func CreateFixtureDb(ctx context.Context) {
	InsertBalances(ctx)
}

func InsertBalances(ctx context.Context) {
	balanceRepo := repository.NewBalanceRepository()
	for _, address := range []string{Address1, Address2, Address3} {
		if err := balanceRepo.Add(ctx, address, FixtureBalance); err != nil {
			panic(err)
		}
	}
}
