package controllers

import (
	"errors"
	"net/http"

	"github.com/fasthttp/router"
	"github.com/softdesk/tracker/internal/api/authenticator"
	"github.com/softdesk/tracker/internal/api/response"
	"github.com/softdesk/tracker/internal/perrors"
	"github.com/softdesk/tracker/internal/services"
	userSvc "github.com/softdesk/tracker/internal/services/user"
	"github.com/valyala/fasthttp"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

func RegisterAuthRoutes(r *router.Router, svc *services.Services, auth *authenticator.Authenticator) {
	// Create account
	r.POST("/signup/", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		var req userSvc.SignupRequest
		if err := parseBody(ctx, &req); err != nil {
			writeError(ctx, stdCtx, perrors.NewErrValidation("Invalid request body", err))
			return
		}

		if _, err := svc.User.Signup(stdCtx, &req); err != nil {
			switch {
			case errors.Is(err, userSvc.ErrMissingFields):
				writeError(ctx, stdCtx, perrors.NewErrValidation("Username, password, first name, last name and email are required", err))
			case errors.Is(err, userSvc.ErrWeakPassword):
				writeError(ctx, stdCtx, perrors.NewErrValidation("Password is not complex enough", err))
			case errors.Is(err, userSvc.ErrInvalidEmail):
				writeError(ctx, stdCtx, perrors.NewErrValidation("Invalid email address", err))
			default:
				writeError(ctx, stdCtx, perrors.NewErrInternalServerError("Failed to create user", err))
			}
			return
		}

		response.JSON(ctx, http.StatusCreated, map[string]string{"message": "User created"})
	})

	// Obtain an access/refresh token pair
	r.POST("/login/", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		var req LoginRequest
		if err := parseBody(ctx, &req); err != nil {
			writeError(ctx, stdCtx, perrors.NewErrValidation("Invalid request body", err))
			return
		}

		if req.Username == "" || req.Password == "" {
			writeError(ctx, stdCtx, perrors.NewErrValidation("Username and password are required", errors.New("missing credentials")))
			return
		}

		u, err := svc.User.Authenticate(stdCtx, req.Username, req.Password)
		if err != nil {
			writeError(ctx, stdCtx, perrors.NewErrUnauthorized("Invalid credentials", err))
			return
		}

		pair, err := auth.GenerateTokenPair(u.ID, u.Username)
		if err != nil {
			writeError(ctx, stdCtx, perrors.NewErrInternalServerError("Failed to generate tokens", err))
			return
		}

		response.JSON(ctx, http.StatusOK, pair)
	})

	// Exchange a refresh token for a new access token
	r.POST("/api/token/refresh/", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		var req RefreshRequest
		if err := parseBody(ctx, &req); err != nil {
			writeError(ctx, stdCtx, perrors.NewErrValidation("Invalid request body", err))
			return
		}

		if req.Refresh == "" {
			writeError(ctx, stdCtx, perrors.NewErrValidation("Refresh token is required", errors.New("missing refresh token")))
			return
		}

		access, err := auth.Refresh(req.Refresh)
		if err != nil {
			writeError(ctx, stdCtx, perrors.NewErrUnauthorized("Invalid refresh token", err))
			return
		}

		response.JSON(ctx, http.StatusOK, map[string]string{"access": access})
	})
}
