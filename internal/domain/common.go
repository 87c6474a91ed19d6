package domain

import (
	"context"
	"strconv"

	"github.com/tokenmart/backend/pkg/xcontext"
	"github.com/tokenmart/backend/pkg/xredis"
)

const (
	trendingTokensKey    = "trending_tokens"
	defaultTrendingLimit = 10
)

// trackTrade bumps the trade counter of a token. Best effort: the
// trade already committed, a failure here is only logged.
func trackTrade(ctx context.Context, redisClient xredis.Client, tokenID int64) {
	if redisClient == nil {
		return
	}

	err := redisClient.ZIncrBy(ctx, trendingTokensKey, 1, strconv.FormatInt(tokenID, 10))
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot track trade of token %d: %v", tokenID, err)
	}
}
