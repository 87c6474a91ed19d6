package migration

import (
	"context"

	"github.com/tokenmart/backend/internal/entity"
	"github.com/tokenmart/backend/pkg/xcontext"
)

func AutoMigrate(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.NonFungibleToken{},
		&entity.Auction{},
		&entity.Balance{},
		&entity.NftTx{},
	)
}
