package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tokenmart/backend/pkg/errorx"
	"github.com/tokenmart/backend/pkg/xcontext"
)

// requestKey lets middlewares (e.g. the auth verifier) read the raw
// http request from the handler context.
type requestKey struct{}

func contextWithRequest(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, requestKey{}, r)
}

func Request(ctx context.Context) *http.Request {
	r, ok := ctx.Value(requestKey{}).(*http.Request)
	if !ok {
		return nil
	}

	return r
}

func wrapHandler[Request, Response any](
	r *Router,
	method string,
	handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	return func(ginCtx *gin.Context) {
		ctx := r.baseContext(ginCtx)
		ctx = contextWithRequest(ctx, ginCtx.Request)

		for _, m := range r.befores {
			var err error
			if ctx, err = m(ctx); err != nil {
				writeResponse(ginCtx, newErrorResponse(err))
				return
			}
		}

		var req Request
		var err error
		switch method {
		case http.MethodGet:
			err = ginCtx.BindQuery(&req)
		case http.MethodPost:
			err = ginCtx.BindJSON(&req)
		}
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot bind the request: %v", err)
			writeResponse(ginCtx, newErrorResponse(errorx.New(errorx.BadRequest, "Cannot bind the request")))
			return
		}

		resp, err := handler(ctx, &req)
		if err != nil {
			writeResponse(ginCtx, newErrorResponse(err))
			return
		}

		writeResponse(ginCtx, newResponse(resp))
	}
}
