package middleware

import (
	"context"
	"strings"

	"github.com/tokenmart/backend/internal/model"
	"github.com/tokenmart/backend/pkg/errorx"
	"github.com/tokenmart/backend/pkg/jwt"
	"github.com/tokenmart/backend/pkg/router"
	"github.com/tokenmart/backend/pkg/xcontext"
)

type AuthVerifier struct{}

func NewAuthVerifier() *AuthVerifier {
	return &AuthVerifier{}
}

// Middleware verifies the Bearer access token and records the caller
// identity in the context.
func (v *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		req := router.Request(ctx)
		if req == nil {
			return nil, errorx.New(errorx.Unauthenticated, "Not found request")
		}

		authorization := req.Header.Get("Authorization")
		token, ok := strings.CutPrefix(authorization, "Bearer ")
		if !ok || token == "" {
			return nil, errorx.New(errorx.Unauthenticated, "Not found access token")
		}

		cfg := xcontext.Configs(ctx).Auth
		engine := jwt.NewEngine[model.AccessToken](cfg.TokenSecret, cfg.AccessToken.Expiration)

		accessToken, err := engine.Verify(token)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot verify access token: %v", err)
			return nil, errorx.New(errorx.Unauthenticated, "Invalid access token")
		}

		return xcontext.WithRequestUserID(ctx, accessToken.Address), nil
	}
}
