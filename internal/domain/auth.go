package domain

import (
	"context"

	"github.com/tokenmart/backend/internal/model"
	"github.com/tokenmart/backend/pkg/errorx"
	"github.com/tokenmart/backend/pkg/jwt"
	"github.com/tokenmart/backend/pkg/xcontext"
)

type AuthDomain interface {
	Login(context.Context, *model.LoginRequest) (*model.LoginResponse, error)
}

type authDomain struct{}

func NewAuthDomain() *authDomain {
	return &authDomain{}
}

// Login issues an access token for an address. Authentication of the
// address itself belongs to an external identity provider; this
// endpoint only exchanges an already-trusted identity for a token.
func (d *authDomain) Login(
	ctx context.Context, req *model.LoginRequest,
) (*model.LoginResponse, error) {
	if req.Address == "" {
		return nil, errorx.New(errorx.BadRequest, "Address is empty")
	}

	cfg := xcontext.Configs(ctx).Auth
	engine := jwt.NewEngine[model.AccessToken](cfg.TokenSecret, cfg.AccessToken.Expiration)

	token, err := engine.Generate(req.Address, model.AccessToken{Address: req.Address})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.LoginResponse{AccessToken: token}, nil
}
