package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lotopool/backend/pkg/errorx"
)

// layeredContext follows the request context for cancellation and deadline
// but falls back to the base context for values.
type layeredContext struct {
	context.Context
	base context.Context
}

func (ctx layeredContext) Value(key any) any {
	if value := ctx.Context.Value(key); value != nil {
		return value
	}

	return ctx.base.Value(key)
}

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	return func(ginCtx *gin.Context) {
		var req Request
		var err error
		switch method {
		case http.MethodGet:
			err = ginCtx.ShouldBindQuery(&req)
		default:
			err = ginCtx.ShouldBindJSON(&req)
		}

		ctx := context.Context(layeredContext{
			Context: ginCtx.Request.Context(),
			base:    router.base,
		})

		if err != nil {
			writeResponse(ctx, ginCtx, nil, errorx.New(errorx.BadRequest, "Cannot bind the request"))
			return
		}

		for _, middleware := range router.middlewares {
			next, err := middleware(ctx, ginCtx.Request)
			if err != nil {
				writeResponse(ctx, ginCtx, nil, err)
				return
			}
			ctx = next
		}

		resp, err := handler(ctx, &req)
		writeResponse(ctx, ginCtx, resp, err)
	}
}

func writeResponse(ctx context.Context, ginCtx *gin.Context, resp any, err error) {
	if err != nil {
		ginCtx.JSON(http.StatusOK, newErrorResponse(ctx, err))
		return
	}

	ginCtx.JSON(http.StatusOK, newResponse(resp))
}
