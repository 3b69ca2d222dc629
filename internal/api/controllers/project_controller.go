package controllers

import (
	"errors"
	"net/http"

	"github.com/fasthttp/router"
	"github.com/softdesk/tracker/internal/api/response"
	"github.com/softdesk/tracker/internal/perrors"
	"github.com/softdesk/tracker/internal/services"
	"github.com/softdesk/tracker/internal/services/access"
	projectSvc "github.com/softdesk/tracker/internal/services/project"
	"github.com/valyala/fasthttp"
)

func RegisterProjectRoutes(r *router.Router, svc *services.Services) {
	// List own projects
	r.GET("/projects/", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		claims, err := principal(ctx)
		if err != nil {
			writeError(ctx, stdCtx, perrors.NewErrUnauthorized("Unauthorized", err))
			return
		}

		projects, err := svc.Project.ListByAuthor(stdCtx, claims.UserID)
		if err != nil {
			writeError(ctx, stdCtx, perrors.NewErrInternalServerError("Failed to list projects", err))
			return
		}

		response.JSON(ctx, http.StatusOK, projects)
	})

	// Create project; the principal becomes its author
	r.POST("/projects/", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		claims, err := principal(ctx)
		if err != nil {
			writeError(ctx, stdCtx, perrors.NewErrUnauthorized("Unauthorized", err))
			return
		}

		var body projectSvc.CreateProjectRequest
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, perrors.NewErrValidation("Invalid request body", err))
			return
		}

		created, err := svc.Project.Create(stdCtx, claims.UserID, &body)
		if err != nil {
			switch {
			case errors.Is(err, projectSvc.ErrInvalidProject):
				writeError(ctx, stdCtx, perrors.NewErrValidation("Title, description and type are required", err))
			default:
				writeError(ctx, stdCtx, perrors.NewErrInternalServerError("Failed to create project", err))
			}
			return
		}

		response.JSON(ctx, http.StatusCreated, created)
	})

	// Fetch one project
	r.GET("/projects/{pk}/", func(ctx *fasthttp.RequestCtx) {
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

		// Visibility through the authored-or-contributed set, not the
		// contributor table alone
		visible, err := svc.Project.VisibleTo(stdCtx, claims.UserID, p.ID)
		if err != nil {
			writeError(ctx, stdCtx, perrors.NewErrInternalServerError("Failed to check permissions", err))
			return
		}
		if !visible {
			writeError(ctx, stdCtx, mapAccessErr(access.ErrNotAllowed))
			return
		}

		response.JSON(ctx, http.StatusOK, p)
	})

	// Update project, author only. Mirrors the create quirk: a successful
	// update answers 201.
	r.PUT("/projects/{pk}/", func(ctx *fasthttp.RequestCtx) {
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

		var body projectSvc.UpdateProjectRequest
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, perrors.NewErrValidation("Invalid request body", err))
			return
		}

		updated, err := svc.Project.Update(stdCtx, p.ID, &body)
		if err != nil {
			switch {
			case errors.Is(err, projectSvc.ErrInvalidProject):
				writeError(ctx, stdCtx, perrors.NewErrValidation("Title, description and type are required", err))
			case errors.Is(err, projectSvc.ErrProjectNotFound):
				writeError(ctx, stdCtx, perrors.NewErrNotFound("Project not found", err))
			default:
				writeError(ctx, stdCtx, perrors.NewErrInternalServerError("Failed to update project", err))
			}
			return
		}

		response.JSON(ctx, http.StatusCreated, updated)
	})

	// Delete project, author only; cascades to issues, comments and
	// contributor records
	r.DELETE("/projects/{pk}/", func(ctx *fasthttp.RequestCtx) {
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

		if err := svc.Project.Delete(stdCtx, p.ID); err != nil {
			switch {
			case errors.Is(err, projectSvc.ErrProjectNotFound):
				writeError(ctx, stdCtx, perrors.NewErrNotFound("Project not found", err))
			default:
				writeError(ctx, stdCtx, perrors.NewErrInternalServerError("Failed to delete project", err))
			}
			return
		}

		response.NoContent(ctx)
	})
}

// loadProject resolves the {pk} path segment to a project, mapping a bad id
// or a missing row to the coded error the caller should write.
func loadProject(ctx *fasthttp.RequestCtx, svc *services.Services) (*projectSvc.Project, error) {
	stdCtx := requestContext(ctx)

	pk, err := pathParamInt64(ctx, "pk")
	if err != nil {
		return nil, perrors.NewErrValidation("Invalid project id", err)
	}

	p, err := svc.Project.GetByID(stdCtx, pk)
	if err != nil {
		if errors.Is(err, projectSvc.ErrProjectNotFound) {
			return nil, perrors.NewErrNotFound("Project not found", err)
		}
		return nil, perrors.NewErrInternalServerError("Failed to get project", err)
	}

	return p, nil
}

// mapAccessErr translates an authorization engine denial to its coded error.
func mapAccessErr(err error) error {
	if errors.Is(err, access.ErrNotAllowed) {
		return perrors.NewErrPermissionDenied("You are not allowed", err)
	}
	return perrors.NewErrInternalServerError("Failed to check permissions", err)
}
