// Package response writes the API's flat JSON bodies. Entities serialize as
// plain objects mirroring their fields; errors serialize as {"error": ...}.
package response

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	json "github.com/bytedance/sonic"
	"github.com/valyala/fasthttp"

	"github.com/softdesk/tracker/internal/perrors"
)

type errorBody struct {
	Error string `json:"error"`
}

// JSON writes v as the response body with the given status code.
func JSON(ctx *fasthttp.RequestCtx, status int, v any) {
	ctx.Response.Header.Set("content-type", "application/json")
	ctx.SetStatusCode(status)

	body, err := json.Marshal(v)
	if err != nil {
		slog.Error("Unable to json encode response", slog.Any("error", err))
		ctx.SetStatusCode(http.StatusInternalServerError)
		return
	}

	ctx.SetBody(body)
}

// NoContent writes an empty 204 response.
func NoContent(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(http.StatusNoContent)
	ctx.Response.ResetBody()
}

// Error maps a perrors.Err to its HTTP status with an {"error": ...} body.
// Anything else becomes a 500.
func Error(ctx *fasthttp.RequestCtx, stdCtx context.Context, err error) {
	var perr perrors.Err
	if !errors.As(err, &perr) {
		perr = perrors.NewErrInternalServerError("Unexpected error", err).(perrors.Err)
	}

	perr.Print(stdCtx)
	JSON(ctx, perr.HttpStatus(), errorBody{Error: perr.Message})
}
