package controllers

import (
	"errors"
	"net/http"

	"github.com/fasthttp/router"
	"github.com/softdesk/tracker/internal/api/response"
	"github.com/softdesk/tracker/internal/perrors"
	"github.com/softdesk/tracker/internal/services"
	issueSvc "github.com/softdesk/tracker/internal/services/issue"
	projectSvc "github.com/softdesk/tracker/internal/services/project"
	userSvc "github.com/softdesk/tracker/internal/services/user"
	"github.com/valyala/fasthttp"
)

func RegisterIssueRoutes(r *router.Router, svc *services.Services) {
	// List issues of a project, author or contributor
	listIssues := func(ctx *fasthttp.RequestCtx) {
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

		issues, err := svc.Issue.ListByProject(stdCtx, p.ID)
		if err != nil {
			writeError(ctx, stdCtx, perrors.NewErrInternalServerError("Failed to list issues", err))
			return
		}

		response.JSON(ctx, http.StatusOK, issues)
	}

	r.GET("/projects/{pk}/issues/", listIssues)
	// The id form shares the collection view; a GET there answers with the
	// project's issue list
	r.GET("/projects/{pk}/issues/{id_issue}/", listIssues)

	// File an issue, author or contributor; the principal becomes the
	// issue's author and, absent an explicit assignee, its assignee too
	r.POST("/projects/{pk}/issues/", func(ctx *fasthttp.RequestCtx) {
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

		var body issueSvc.CreateIssueRequest
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, perrors.NewErrValidation("Invalid request body", err))
			return
		}

		if perr := checkAssigneeExists(ctx, svc, body.AssigneeID); perr != nil {
			writeError(ctx, stdCtx, perr)
			return
		}

		created, err := svc.Issue.Create(stdCtx, p.ID, claims.UserID, &body)
		if err != nil {
			switch {
			case errors.Is(err, issueSvc.ErrInvalidIssue):
				writeError(ctx, stdCtx, perrors.NewErrValidation("Invalid issue payload", err))
			default:
				writeError(ctx, stdCtx, perrors.NewErrInternalServerError("Failed to create issue", err))
			}
			return
		}

		response.JSON(ctx, http.StatusCreated, created)
	})

	// Update an issue, issue author only. Mirrors the create quirk: a
	// successful update answers 201.
	r.PUT("/projects/{pk}/issues/{id_issue}/", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		claims, err := principal(ctx)
		if err != nil {
			writeError(ctx, stdCtx, perrors.NewErrUnauthorized("Unauthorized", err))
			return
		}

		_, is, perr := loadProjectIssue(ctx, svc)
		if perr != nil {
			writeError(ctx, stdCtx, perr)
			return
		}

		if err := svc.Access.RequireIssueAuthor(claims.UserID, is); err != nil {
			writeError(ctx, stdCtx, mapAccessErr(err))
			return
		}

		var body issueSvc.UpdateIssueRequest
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, perrors.NewErrValidation("Invalid request body", err))
			return
		}

		if perr := checkAssigneeExists(ctx, svc, body.AssigneeID); perr != nil {
			writeError(ctx, stdCtx, perr)
			return
		}

		updated, err := svc.Issue.Update(stdCtx, is, &body)
		if err != nil {
			switch {
			case errors.Is(err, issueSvc.ErrInvalidIssue):
				writeError(ctx, stdCtx, perrors.NewErrValidation("Invalid issue payload", err))
			case errors.Is(err, issueSvc.ErrIssueNotFound):
				writeError(ctx, stdCtx, perrors.NewErrNotFound("Issue not found", err))
			default:
				writeError(ctx, stdCtx, perrors.NewErrInternalServerError("Failed to update issue", err))
			}
			return
		}

		response.JSON(ctx, http.StatusCreated, updated)
	})

	// Delete an issue, issue author only; cascades to its comments
	r.DELETE("/projects/{pk}/issues/{id_issue}/", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		claims, err := principal(ctx)
		if err != nil {
			writeError(ctx, stdCtx, perrors.NewErrUnauthorized("Unauthorized", err))
			return
		}

		_, is, perr := loadProjectIssue(ctx, svc)
		if perr != nil {
			writeError(ctx, stdCtx, perr)
			return
		}

		if err := svc.Access.RequireIssueAuthor(claims.UserID, is); err != nil {
			writeError(ctx, stdCtx, mapAccessErr(err))
			return
		}

		if err := svc.Issue.Delete(stdCtx, is.ID); err != nil {
			switch {
			case errors.Is(err, issueSvc.ErrIssueNotFound):
				writeError(ctx, stdCtx, perrors.NewErrNotFound("Issue not found", err))
			default:
				writeError(ctx, stdCtx, perrors.NewErrInternalServerError("Failed to delete issue", err))
			}
			return
		}

		response.NoContent(ctx)
	})
}

// loadProjectIssue resolves the {pk}/{id_issue} path pair. The issue lookup
// is scoped to the project, so an issue from another project is a miss, not
// a leak.
func loadProjectIssue(ctx *fasthttp.RequestCtx, svc *services.Services) (*projectSvc.Project, *issueSvc.Issue, error) {
	stdCtx := requestContext(ctx)

	p, perr := loadProject(ctx, svc)
	if perr != nil {
		return nil, nil, perr
	}

	idIssue, err := pathParamInt64(ctx, "id_issue")
	if err != nil {
		return nil, nil, perrors.NewErrValidation("Invalid issue id", err)
	}

	is, err := svc.Issue.GetByProjectAndID(stdCtx, p.ID, idIssue)
	if err != nil {
		if errors.Is(err, issueSvc.ErrIssueNotFound) {
			return nil, nil, perrors.NewErrNotFound("Issue not found", err)
		}
		return nil, nil, perrors.NewErrInternalServerError("Failed to get issue", err)
	}

	return p, is, nil
}

// checkAssigneeExists validates an explicit assignee id against the identity
// store. A nil or zero assignee is fine; defaulting happens in the service.
func checkAssigneeExists(ctx *fasthttp.RequestCtx, svc *services.Services, assigneeID *int64) error {
	if assigneeID == nil || *assigneeID == 0 {
		return nil
	}

	stdCtx := requestContext(ctx)
	if _, err := svc.User.GetByID(stdCtx, *assigneeID); err != nil {
		if errors.Is(err, userSvc.ErrUserNotFound) {
			return perrors.NewErrValidation("Assignee does not exist", err)
		}
		return perrors.NewErrInternalServerError("Failed to get assignee", err)
	}

	return nil
}
