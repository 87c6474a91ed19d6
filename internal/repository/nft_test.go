package repository_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tokenmart/backend/internal/entity"
	"github.com/tokenmart/backend/internal/repository"
	"github.com/tokenmart/backend/pkg/testutil"
	"gorm.io/gorm"
)

func Test_nftRepository_Create_DuplicateTokenID(t *testing.T) {
	ctx := testutil.MockContext()
	r := repository.NewNftRepository()

	err := r.Create(ctx, &entity.NonFungibleToken{TokenID: 1, Name: "NFT1", Owner: testutil.Address1})
	require.NoError(t, err)

	// The unique index on token_id must surface as the translated
	// duplicate-key error, not a raw driver error.
	err = r.Create(ctx, &entity.NonFungibleToken{TokenID: 1, Name: "NFT1b", Owner: testutil.Address2})
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
