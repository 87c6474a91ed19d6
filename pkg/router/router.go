package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tokenmart/backend/config"
	"github.com/tokenmart/backend/pkg/logger"
	"github.com/tokenmart/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// HandlerFunc is a domain operation exposed over HTTP. The request is
// bound from the query string (GET) or the JSON body (POST).
type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. It can enrich the context or
// reject the request by returning an error.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

type Router struct {
	engine *gin.Engine

	db      *gorm.DB
	cfg     config.Configs
	logger  logger.Logger
	befores []MiddlewareFunc
}

func New(db *gorm.DB, cfg config.Configs, l logger.Logger) *Router {
	engine := gin.New()
	engine.Use(gin.Recovery())

	return &Router{
		engine: engine,
		db:     db,
		cfg:    cfg,
		logger: l,
	}
}

// Branch returns a router sharing the underlying engine but with an
// independent middleware chain.
func (r *Router) Branch() *Router {
	clone := *r
	clone.befores = append([]MiddlewareFunc{}, r.befores...)
	return &clone
}

func (r *Router) Before(m MiddlewareFunc) {
	r.befores = append(r.befores, m)
}

func (r *Router) Handler() http.Handler {
	return r.engine
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.engine.GET(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.engine.POST(pattern, wrapHandler(r, http.MethodPost, handler))
}

func (r *Router) baseContext(ginCtx *gin.Context) context.Context {
	ctx := ginCtx.Request.Context()
	ctx = xcontext.WithDB(ctx, r.db)
	ctx = xcontext.WithConfigs(ctx, r.cfg)
	ctx = xcontext.WithLogger(ctx, r.logger)
	return ctx
}
