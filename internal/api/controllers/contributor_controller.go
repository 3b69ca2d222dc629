package controllers

import (
	"errors"
	"net/http"

	"github.com/fasthttp/router"
	"github.com/softdesk/tracker/internal/api/response"
	"github.com/softdesk/tracker/internal/perrors"
	"github.com/softdesk/tracker/internal/services"
	contributorSvc "github.com/softdesk/tracker/internal/services/contributor"
	userSvc "github.com/softdesk/tracker/internal/services/user"
	"github.com/valyala/fasthttp"
)

func RegisterContributorRoutes(r *router.Router, svc *services.Services) {
	// List contributor user ids of a project. The body is a bare array of
	// integers, not wrapped objects.
	listContributors := func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		claims, err := principal(ctx)
		if err != nil {
			writeError(ctx, stdCtx, perrors.NewErrUnauthorized("Unauthorized", err))
			return
		}

		p, perr := loadProject(ctx, svc)
		if perr != nil {
			writeError(ctx, stdCtx, perr)
			return
		}

		if err := svc.Access.RequireProjectMember(stdCtx, claims.UserID, p); err != nil {
			writeError(ctx, stdCtx, mapAccessErr(err))
			return
		}

		userIDs, err := svc.Contributor.ListUserIDs(stdCtx, p.ID)
		if err != nil {
			writeError(ctx, stdCtx, perrors.NewErrInternalServerError("Failed to list contributors", err))
			return
		}

		response.JSON(ctx, http.StatusOK, userIDs)
	}

	r.GET("/projects/{pk}/users/", listContributors)
	// The id form shares the collection view; a GET there answers with the
	// id list
	r.GET("/projects/{pk}/users/{u_id}/", listContributors)

	// Add a contributor, project author only
	r.POST("/projects/{pk}/users/", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		claims, err := principal(ctx)
		if err != nil {
			writeError(ctx, stdCtx, perrors.NewErrUnauthorized("Unauthorized", err))
			return
		}

		p, perr := loadProject(ctx, svc)
		if perr != nil {
			writeError(ctx, stdCtx, perr)
			return
		}

		if err := svc.Access.RequireProjectAuthor(claims.UserID, p); err != nil {
			writeError(ctx, stdCtx, mapAccessErr(err))
			return
		}

		var body contributorSvc.AddContributorRequest
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, perrors.NewErrValidation("Invalid request body", err))
			return
		}

		if body.UserID == 0 {
			writeError(ctx, stdCtx, perrors.NewErrValidation("User is required", errors.New("user is required")))
			return
		}

		// The referenced user must exist before a row is written
		if _, err := svc.User.GetByID(stdCtx, body.UserID); err != nil {
			if errors.Is(err, userSvc.ErrUserNotFound) {
				writeError(ctx, stdCtx, perrors.NewErrValidation("User does not exist", err))
				return
			}
			writeError(ctx, stdCtx, perrors.NewErrInternalServerError("Failed to get user", err))
			return
		}

		created, err := svc.Contributor.Add(stdCtx, body.UserID, p.ID)
		if err != nil {
			writeError(ctx, stdCtx, perrors.NewErrInternalServerError("Failed to add contributor", err))
			return
		}

		response.JSON(ctx, http.StatusCreated, created)
	})

	// Remove a contributor, project author only. Every contributor row of
	// the user on the project goes away.
	r.DELETE("/projects/{pk}/users/{u_id}/", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		claims, err := principal(ctx)
		if err != nil {
			writeError(ctx, stdCtx, perrors.NewErrUnauthorized("Unauthorized", err))
			return
		}

		p, perr := loadProject(ctx, svc)
		if perr != nil {
			writeError(ctx, stdCtx, perr)
			return
		}

		if err := svc.Access.RequireProjectAuthor(claims.UserID, p); err != nil {
			writeError(ctx, stdCtx, mapAccessErr(err))
			return
		}

		uID, err := pathParamInt64(ctx, "u_id")
		if err != nil {
			writeError(ctx, stdCtx, perrors.NewErrValidation("Invalid user id", err))
			return
		}

		if _, err := svc.User.GetByID(stdCtx, uID); err != nil {
			if errors.Is(err, userSvc.ErrUserNotFound) {
				writeError(ctx, stdCtx, perrors.NewErrNotFound("User not found", err))
				return
			}
			writeError(ctx, stdCtx, perrors.NewErrInternalServerError("Failed to get user", err))
			return
		}

		if err := svc.Contributor.Remove(stdCtx, p.ID, uID); err != nil {
			switch {
			case errors.Is(err, contributorSvc.ErrContributorNotFound):
				writeError(ctx, stdCtx, perrors.NewErrNotFound("Error with your request", err))
			default:
				writeError(ctx, stdCtx, perrors.NewErrInternalServerError("Failed to remove contributor", err))
			}
			return
		}

		response.NoContent(ctx)
	})
}
