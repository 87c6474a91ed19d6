package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/tokenmart/backend/internal/client"
	"github.com/tokenmart/backend/internal/model"
	"github.com/tokenmart/backend/internal/repository"
	"github.com/tokenmart/backend/pkg/errorx"
	"github.com/tokenmart/backend/pkg/testutil"
	"github.com/tokenmart/backend/pkg/xcontext"
)

func requireErrorCode(t *testing.T, err error, code errorx.Code) {
	t.Helper()

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, code, errx.Code)
}

func newTestNftDomain(balanceRepo repository.BalanceRepository) *nftDomain {
	return NewNftDomain(
		repository.NewNftRepository(),
		repository.NewAuctionRepository(),
		repository.NewNftTxRepository(),
		client.NewLedgerPaymentCaller(balanceRepo),
		&testutil.MockRedisClient{},
	)
}

func Test_nftDomain_CreateAndGet(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	d := newTestNftDomain(repository.NewBalanceRepository())

	ctx = xcontext.WithRequestUserID(ctx, testutil.Address1)
	resp, err := d.Create(ctx, &model.CreateTokenRequest{
		TokenID:     1,
		Name:        "NFT1",
		Description: "desc",
	})
	require.NoError(t, err)
	require.Equal(t, testutil.Address1, resp.Token.Owner)

	got, err := d.Get(ctx, &model.GetTokenRequest{TokenID: 1})
	require.NoError(t, err)
	require.Equal(t, testutil.Address1, got.Token.Owner)
	require.Equal(t, "NFT1", got.Token.Name)
	require.Equal(t, "desc", got.Token.Description)
	require.False(t, got.Token.ForSale)
	require.Zero(t, got.Token.Price)

	// The token id is caller assigned and must not collide.
	_, err = d.Create(ctx, &model.CreateTokenRequest{TokenID: 1, Name: "dup"})
	requireErrorCode(t, err, errorx.AlreadyExists)

	_, err = d.Create(ctx, &model.CreateTokenRequest{TokenID: 0, Name: "zero"})
	requireErrorCode(t, err, errorx.BadRequest)

	_, err = d.Get(ctx, &model.GetTokenRequest{TokenID: 99})
	requireErrorCode(t, err, errorx.NotFound)
}

func Test_nftDomain_Transfer(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	d := newTestNftDomain(repository.NewBalanceRepository())

	ctx = xcontext.WithRequestUserID(ctx, testutil.Address1)
	_, err := d.Create(ctx, &model.CreateTokenRequest{TokenID: 2, Name: "NFT2"})
	require.NoError(t, err)

	_, err = d.Transfer(ctx, &model.TransferTokenRequest{
		TokenID:   2,
		ToAddress: testutil.Address2,
	})
	require.NoError(t, err)

	got, err := d.Get(ctx, &model.GetTokenRequest{TokenID: 2})
	require.NoError(t, err)
	require.Equal(t, testutil.Address2, got.Token.Owner)

	// The previous owner cannot transfer anymore.
	_, err = d.Transfer(ctx, &model.TransferTokenRequest{
		TokenID:   2,
		ToAddress: testutil.Address3,
	})
	requireErrorCode(t, err, errorx.PermissionDenied)

	got, err = d.Get(ctx, &model.GetTokenRequest{TokenID: 2})
	require.NoError(t, err)
	require.Equal(t, testutil.Address2, got.Token.Owner)

	history, err := d.GetHistory(ctx, &model.GetTokenHistoryRequest{TokenID: 2})
	require.NoError(t, err)
	require.Len(t, history.Txs, 1)
	require.Equal(t, testutil.Address1, history.Txs[0].FromAddress)
	require.Equal(t, testutil.Address2, history.Txs[0].ToAddress)
	require.Equal(t, "transfer", history.Txs[0].Kind)

	_, err = d.Transfer(ctx, &model.TransferTokenRequest{TokenID: 99, ToAddress: testutil.Address2})
	requireErrorCode(t, err, errorx.NotFound)
}

func Test_nftDomain_SaleListing(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	d := newTestNftDomain(repository.NewBalanceRepository())

	ownerCtx := xcontext.WithRequestUserID(ctx, testutil.Address1)
	_, err := d.Create(ownerCtx, &model.CreateTokenRequest{TokenID: 3, Name: "NFT3"})
	require.NoError(t, err)

	// Only the owner can list.
	otherCtx := xcontext.WithRequestUserID(ctx, testutil.Address2)
	_, err = d.SetForSale(otherCtx, &model.SetTokenForSaleRequest{TokenID: 3, Price: 100})
	requireErrorCode(t, err, errorx.PermissionDenied)

	_, err = d.SetForSale(ownerCtx, &model.SetTokenForSaleRequest{TokenID: 3, Price: 100})
	require.NoError(t, err)

	got, err := d.Get(ownerCtx, &model.GetTokenRequest{TokenID: 3})
	require.NoError(t, err)
	require.True(t, got.Token.ForSale)
	require.Equal(t, int64(100), got.Token.Price)

	_, err = d.RemoveFromSale(ownerCtx, &model.RemoveTokenFromSaleRequest{TokenID: 3})
	require.NoError(t, err)

	got, err = d.Get(ownerCtx, &model.GetTokenRequest{TokenID: 3})
	require.NoError(t, err)
	require.False(t, got.Token.ForSale)
	require.Zero(t, got.Token.Price)

	// Removing an unlisted token fails.
	_, err = d.RemoveFromSale(ownerCtx, &model.RemoveTokenFromSaleRequest{TokenID: 3})
	requireErrorCode(t, err, errorx.TokenNotForSale)
}

func Test_nftDomain_Buy(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	balanceRepo := repository.NewBalanceRepository()
	d := newTestNftDomain(balanceRepo)
	balanceDomain := NewBalanceDomain(balanceRepo)

	sellerCtx := xcontext.WithRequestUserID(ctx, testutil.Address1)
	_, err := d.Create(sellerCtx, &model.CreateTokenRequest{TokenID: 4, Name: "NFT4"})
	require.NoError(t, err)

	buyerCtx := xcontext.WithRequestUserID(ctx, testutil.Address2)
	_, err = d.Buy(buyerCtx, &model.BuyTokenRequest{TokenID: 4, PaymentAmount: 100})
	requireErrorCode(t, err, errorx.TokenNotForSale)

	_, err = d.SetForSale(sellerCtx, &model.SetTokenForSaleRequest{TokenID: 4, Price: 100})
	require.NoError(t, err)

	// The owner cannot buy their own token.
	_, err = d.Buy(sellerCtx, &model.BuyTokenRequest{TokenID: 4, PaymentAmount: 100})
	requireErrorCode(t, err, errorx.SelfPurchase)

	_, err = d.Buy(buyerCtx, &model.BuyTokenRequest{TokenID: 4, PaymentAmount: 100})
	require.NoError(t, err)

	got, err := d.Get(buyerCtx, &model.GetTokenRequest{TokenID: 4})
	require.NoError(t, err)
	require.Equal(t, testutil.Address2, got.Token.Owner)
	require.False(t, got.Token.ForSale)
	require.Zero(t, got.Token.Price)

	sellerBalance, err := balanceDomain.GetMyBalance(sellerCtx, &model.GetMyBalanceRequest{})
	require.NoError(t, err)
	require.Equal(t, testutil.FixtureBalance+100, sellerBalance.Balance)

	buyerBalance, err := balanceDomain.GetMyBalance(buyerCtx, &model.GetMyBalanceRequest{})
	require.NoError(t, err)
	require.Equal(t, testutil.FixtureBalance-100, buyerBalance.Balance)

	// The token left the sale state with the purchase.
	thirdCtx := xcontext.WithRequestUserID(ctx, testutil.Address3)
	_, err = d.Buy(thirdCtx, &model.BuyTokenRequest{TokenID: 4, PaymentAmount: 100})
	requireErrorCode(t, err, errorx.TokenNotForSale)

	history, err := d.GetHistory(buyerCtx, &model.GetTokenHistoryRequest{TokenID: 4})
	require.NoError(t, err)
	require.Len(t, history.Txs, 1)
	require.Equal(t, "purchase", history.Txs[0].Kind)
	require.Equal(t, int64(100), history.Txs[0].Amount)
}

func Test_nftDomain_Buy_PaymentMismatch(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	balanceRepo := repository.NewBalanceRepository()
	d := newTestNftDomain(balanceRepo)
	balanceDomain := NewBalanceDomain(balanceRepo)

	sellerCtx := xcontext.WithRequestUserID(ctx, testutil.Address1)
	_, err := d.Create(sellerCtx, &model.CreateTokenRequest{TokenID: 5, Name: "NFT5"})
	require.NoError(t, err)
	_, err = d.SetForSale(sellerCtx, &model.SetTokenForSaleRequest{TokenID: 5, Price: 200})
	require.NoError(t, err)

	buyerCtx := xcontext.WithRequestUserID(ctx, testutil.Address2)

	// The payment must equal the price exactly, in both directions.
	_, err = d.Buy(buyerCtx, &model.BuyTokenRequest{TokenID: 5, PaymentAmount: 100})
	requireErrorCode(t, err, errorx.InsufficientFunds)

	_, err = d.Buy(buyerCtx, &model.BuyTokenRequest{TokenID: 5, PaymentAmount: 300})
	requireErrorCode(t, err, errorx.InsufficientFunds)

	got, err := d.Get(buyerCtx, &model.GetTokenRequest{TokenID: 5})
	require.NoError(t, err)
	require.Equal(t, testutil.Address1, got.Token.Owner)
	require.True(t, got.Token.ForSale)

	buyerBalance, err := balanceDomain.GetMyBalance(buyerCtx, &model.GetMyBalanceRequest{})
	require.NoError(t, err)
	require.Equal(t, testutil.FixtureBalance, buyerBalance.Balance)
}

func Test_nftDomain_Buy_CreditFailureRollsBack(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	balanceRepo := repository.NewBalanceRepository()
	ledger := client.NewLedgerPaymentCaller(balanceRepo)

	d := NewNftDomain(
		repository.NewNftRepository(),
		repository.NewAuctionRepository(),
		repository.NewNftTxRepository(),
		&testutil.MockPaymentCaller{
			DebitCallerFunc: ledger.DebitCaller,
			CreditFunc: func(ctx context.Context, account string, amount int64) error {
				return errors.New("deposit rejected")
			},
		},
		&testutil.MockRedisClient{},
	)
	balanceDomain := NewBalanceDomain(balanceRepo)

	sellerCtx := xcontext.WithRequestUserID(ctx, testutil.Address1)
	_, err := d.Create(sellerCtx, &model.CreateTokenRequest{TokenID: 6, Name: "NFT6"})
	require.NoError(t, err)
	_, err = d.SetForSale(sellerCtx, &model.SetTokenForSaleRequest{TokenID: 6, Price: 100})
	require.NoError(t, err)

	buyerCtx := xcontext.WithRequestUserID(ctx, testutil.Address2)
	_, err = d.Buy(buyerCtx, &model.BuyTokenRequest{TokenID: 6, PaymentAmount: 100})
	requireErrorCode(t, err, errorx.CreditFailed)

	// Nothing was applied: no ownership change, no listing change, and
	// the buyer got their escrowed funds back with the rollback.
	got, err := d.Get(buyerCtx, &model.GetTokenRequest{TokenID: 6})
	require.NoError(t, err)
	require.Equal(t, testutil.Address1, got.Token.Owner)
	require.True(t, got.Token.ForSale)

	buyerBalance, err := balanceDomain.GetMyBalance(buyerCtx, &model.GetMyBalanceRequest{})
	require.NoError(t, err)
	require.Equal(t, testutil.FixtureBalance, buyerBalance.Balance)
}

func Test_nftDomain_GetHistory_KindFilter(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	d := newTestNftDomain(repository.NewBalanceRepository())

	sellerCtx := xcontext.WithRequestUserID(ctx, testutil.Address1)
	_, err := d.Create(sellerCtx, &model.CreateTokenRequest{TokenID: 7, Name: "NFT7"})
	require.NoError(t, err)
	_, err = d.SetForSale(sellerCtx, &model.SetTokenForSaleRequest{TokenID: 7, Price: 100})
	require.NoError(t, err)

	buyerCtx := xcontext.WithRequestUserID(ctx, testutil.Address2)
	_, err = d.Buy(buyerCtx, &model.BuyTokenRequest{TokenID: 7, PaymentAmount: 100})
	require.NoError(t, err)

	_, err = d.Transfer(buyerCtx, &model.TransferTokenRequest{
		TokenID:   7,
		ToAddress: testutil.Address3,
	})
	require.NoError(t, err)

	history, err := d.GetHistory(ctx, &model.GetTokenHistoryRequest{TokenID: 7})
	require.NoError(t, err)
	require.Len(t, history.Txs, 2)

	history, err = d.GetHistory(ctx, &model.GetTokenHistoryRequest{TokenID: 7, Kind: "purchase"})
	require.NoError(t, err)
	require.Len(t, history.Txs, 1)
	require.Equal(t, "purchase", history.Txs[0].Kind)
	require.Equal(t, int64(100), history.Txs[0].Amount)

	history, err = d.GetHistory(ctx, &model.GetTokenHistoryRequest{TokenID: 7, Kind: "transfer"})
	require.NoError(t, err)
	require.Len(t, history.Txs, 1)
	require.Equal(t, testutil.Address3, history.Txs[0].ToAddress)

	_, err = d.GetHistory(ctx, &model.GetTokenHistoryRequest{TokenID: 7, Kind: "minted"})
	requireErrorCode(t, err, errorx.BadRequest)
}

func Test_nftDomain_GetTrending(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	redisClient := &testutil.MockRedisClient{
		ZRevRangeWithScoresFunc: func(ctx context.Context, key string, offset, limit int) ([]redis.Z, error) {
			return []redis.Z{
				{Member: "8", Score: 3},
				{Member: int64(12345), Score: 2},
				{Member: "99", Score: 1},
			}, nil
		},
	}

	d := NewNftDomain(
		repository.NewNftRepository(),
		repository.NewAuctionRepository(),
		repository.NewNftTxRepository(),
		client.NewLedgerPaymentCaller(repository.NewBalanceRepository()),
		redisClient,
	)

	ctx = xcontext.WithRequestUserID(ctx, testutil.Address1)
	_, err := d.Create(ctx, &model.CreateTokenRequest{TokenID: 8, Name: "NFT8"})
	require.NoError(t, err)

	// Non-string members and ids of deleted or unknown tokens are
	// skipped, not fatal.
	resp, err := d.GetTrending(ctx, &model.GetTrendingTokensRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Tokens, 1)
	require.Equal(t, int64(8), resp.Tokens[0].TokenID)
}

func Test_nftDomain_Search(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	d := newTestNftDomain(repository.NewBalanceRepository())

	ctx = xcontext.WithRequestUserID(ctx, testutil.Address1)
	for _, token := range []model.CreateTokenRequest{
		{TokenID: 10, Name: "Crystal Fox", Description: "a shiny fox"},
		{TokenID: 11, Name: "Iron Wolf", Description: "a grim wolf"},
		{TokenID: 12, Name: "foxglove", Description: "a flower"},
	} {
		token := token
		_, err := d.Create(ctx, &token)
		require.NoError(t, err)
	}

	// Empty keyword matches everything, in creation order.
	resp, err := d.Search(ctx, &model.SearchTokensRequest{Keyword: ""})
	require.NoError(t, err)
	require.Len(t, resp.Tokens, 3)
	require.Equal(t, int64(10), resp.Tokens[0].TokenID)
	require.Equal(t, int64(11), resp.Tokens[1].TokenID)
	require.Equal(t, int64(12), resp.Tokens[2].TokenID)

	// Substring match over name and description, case sensitive.
	resp, err = d.Search(ctx, &model.SearchTokensRequest{Keyword: "fox"})
	require.NoError(t, err)
	require.Len(t, resp.Tokens, 2)
	require.Equal(t, int64(10), resp.Tokens[0].TokenID)
	require.Equal(t, int64(12), resp.Tokens[1].TokenID)

	resp, err = d.Search(ctx, &model.SearchTokensRequest{Keyword: "Fox"})
	require.NoError(t, err)
	require.Len(t, resp.Tokens, 1)
	require.Equal(t, int64(10), resp.Tokens[0].TokenID)

	resp, err = d.Search(ctx, &model.SearchTokensRequest{Keyword: "dragon"})
	require.NoError(t, err)
	require.Empty(t, resp.Tokens)
}
