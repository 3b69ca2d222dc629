package controllers

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	json "github.com/bytedance/sonic"
	"github.com/softdesk/tracker/internal/api/authenticator"
	"github.com/softdesk/tracker/internal/api/response"
	"github.com/valyala/fasthttp"
)

// requestContext returns a baseline context for handlers. fasthttp does not
// provide a standard context, so we start from the trace context the
// middleware extracted, falling back to Background.
func requestContext(ctx *fasthttp.RequestCtx) context.Context {
	if traceCtx, ok := ctx.UserValue("traceCtx").(context.Context); ok {
		return traceCtx
	}
	return context.Background()
}

func parseBody(ctx *fasthttp.RequestCtx, target any) error {
	body := ctx.PostBody()
	if len(body) == 0 {
		return errors.New("request body is empty")
	}

	return json.Unmarshal(body, target)
}

func writeError(ctx *fasthttp.RequestCtx, stdCtx context.Context, err error) {
	response.Error(ctx, stdCtx, err)
}

func pathParamInt64(ctx *fasthttp.RequestCtx, key string) (int64, error) {
	val := ctx.UserValue(key)
	if val == nil {
		return 0, fmt.Errorf("%s is required", key)
	}

	id, err := strconv.ParseInt(fmt.Sprint(val), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}

	return id, nil
}

// principal returns the claims the auth middleware stored for the request.
func principal(ctx *fasthttp.RequestCtx) (*authenticator.UserClaims, error) {
	claims, ok := ctx.UserValue("userClaims").(*authenticator.UserClaims)
	if !ok || claims == nil {
		return nil, errors.New("no user claims")
	}

	return claims, nil
}
