package controllers

import (
	"errors"
	"net/http"

	"github.com/fasthttp/router"
	"github.com/softdesk/tracker/internal/api/response"
	"github.com/softdesk/tracker/internal/perrors"
	"github.com/softdesk/tracker/internal/services"
	commentSvc "github.com/softdesk/tracker/internal/services/comment"
	issueSvc "github.com/softdesk/tracker/internal/services/issue"
	projectSvc "github.com/softdesk/tracker/internal/services/project"
	"github.com/valyala/fasthttp"
)

// Comment paths carry the full project/issue chain. Unlike the issue routes,
// the issue here is loaded by id alone and the chain is then integrity-
// checked: a stated project that does not own the issue, or a stated issue
// that does not own the comment, is a denial rather than a lookup miss.
func RegisterCommentRoutes(r *router.Router, svc *services.Services) {
	// List comments of an issue, author or contributor of the project
	r.GET("/projects/{pk}/issues/{id_issue}/comments/", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		claims, err := principal(ctx)
		if err != nil {
			writeError(ctx, stdCtx, perrors.NewErrUnauthorized("Unauthorized", err))
			return
		}

		p, is, perr := loadCommentChain(ctx, svc)
		if perr != nil {
			writeError(ctx, stdCtx, perr)
			return
		}

		if err := svc.Access.RequireProjectMember(stdCtx, claims.UserID, p); err != nil {
			writeError(ctx, stdCtx, mapAccessErr(err))
			return
		}

		if err := svc.Access.RequireIssueInProject(p, is); err != nil {
			writeError(ctx, stdCtx, mapAccessErr(err))
			return
		}

		comments, err := svc.Comment.ListByIssue(stdCtx, is.ID)
		if err != nil {
			writeError(ctx, stdCtx, perrors.NewErrInternalServerError("Failed to list comments", err))
			return
		}

		response.JSON(ctx, http.StatusOK, comments)
	})

	// Comment on an issue, author or contributor of the project
	r.POST("/projects/{pk}/issues/{id_issue}/comments/", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		claims, err := principal(ctx)
		if err != nil {
			writeError(ctx, stdCtx, perrors.NewErrUnauthorized("Unauthorized", err))
			return
		}

		p, is, perr := loadCommentChain(ctx, svc)
		if perr != nil {
			writeError(ctx, stdCtx, perr)
			return
		}

		if err := svc.Access.RequireProjectMember(stdCtx, claims.UserID, p); err != nil {
			writeError(ctx, stdCtx, mapAccessErr(err))
			return
		}

		if err := svc.Access.RequireIssueInProject(p, is); err != nil {
			writeError(ctx, stdCtx, mapAccessErr(err))
			return
		}

		var body commentSvc.CommentRequest
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, perrors.NewErrValidation("Invalid request body", err))
			return
		}

		created, err := svc.Comment.Create(stdCtx, is.ID, claims.UserID, &body)
		if err != nil {
			switch {
			case errors.Is(err, commentSvc.ErrInvalidComment):
				writeError(ctx, stdCtx, perrors.NewErrValidation("Description is required", err))
			default:
				writeError(ctx, stdCtx, perrors.NewErrInternalServerError("Failed to create comment", err))
			}
			return
		}

		response.JSON(ctx, http.StatusCreated, created)
	})

	// Fetch one comment, author or contributor of the project, with the
	// whole chain checked
	r.GET("/projects/{pk}/issues/{id_issue}/comments/{id_comment}/", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		claims, err := principal(ctx)
		if err != nil {
			writeError(ctx, stdCtx, perrors.NewErrUnauthorized("Unauthorized", err))
			return
		}

		p, is, c, perr := loadFullCommentChain(ctx, svc)
		if perr != nil {
			writeError(ctx, stdCtx, perr)
			return
		}

		if err := svc.Access.RequireProjectMember(stdCtx, claims.UserID, p); err != nil {
			writeError(ctx, stdCtx, mapAccessErr(err))
			return
		}

		if err := svc.Access.RequireIssueInProject(p, is); err != nil {
			writeError(ctx, stdCtx, mapAccessErr(err))
			return
		}

		if err := svc.Access.RequireCommentOnIssue(is, c); err != nil {
			writeError(ctx, stdCtx, mapAccessErr(err))
			return
		}

		response.JSON(ctx, http.StatusOK, c)
	})

	// Update a comment, comment author only. Mirrors the create quirk: a
	// successful update answers 201.
	r.PUT("/projects/{pk}/issues/{id_issue}/comments/{id_comment}/", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		claims, err := principal(ctx)
		if err != nil {
			writeError(ctx, stdCtx, perrors.NewErrUnauthorized("Unauthorized", err))
			return
		}

		p, is, c, perr := loadFullCommentChain(ctx, svc)
		if perr != nil {
			writeError(ctx, stdCtx, perr)
			return
		}

		if err := svc.Access.RequireProjectMember(stdCtx, claims.UserID, p); err != nil {
			writeError(ctx, stdCtx, mapAccessErr(err))
			return
		}

		if err := svc.Access.RequireCommentAuthor(claims.UserID, c); err != nil {
			writeError(ctx, stdCtx, mapAccessErr(err))
			return
		}

		if err := svc.Access.RequireIssueInProject(p, is); err != nil {
			writeError(ctx, stdCtx, mapAccessErr(err))
			return
		}

		if err := svc.Access.RequireCommentOnIssue(is, c); err != nil {
			writeError(ctx, stdCtx, mapAccessErr(err))
			return
		}

		var body commentSvc.CommentRequest
		if err := parseBody(ctx, &body); err != nil {
			writeError(ctx, stdCtx, perrors.NewErrValidation("Invalid request body", err))
			return
		}

		updated, err := svc.Comment.Update(stdCtx, c.ID, &body)
		if err != nil {
			switch {
			case errors.Is(err, commentSvc.ErrInvalidComment):
				writeError(ctx, stdCtx, perrors.NewErrValidation("Description is required", err))
			case errors.Is(err, commentSvc.ErrCommentNotFound):
				writeError(ctx, stdCtx, perrors.NewErrNotFound("Comment not found", err))
			default:
				writeError(ctx, stdCtx, perrors.NewErrInternalServerError("Failed to update comment", err))
			}
			return
		}

		response.JSON(ctx, http.StatusCreated, updated)
	})

	// Delete a comment, comment author only
	r.DELETE("/projects/{pk}/issues/{id_issue}/comments/{id_comment}/", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		claims, err := principal(ctx)
		if err != nil {
			writeError(ctx, stdCtx, perrors.NewErrUnauthorized("Unauthorized", err))
			return
		}

		p, is, c, perr := loadFullCommentChain(ctx, svc)
		if perr != nil {
			writeError(ctx, stdCtx, perr)
			return
		}

		if err := svc.Access.RequireProjectMember(stdCtx, claims.UserID, p); err != nil {
			writeError(ctx, stdCtx, mapAccessErr(err))
			return
		}

		if err := svc.Access.RequireCommentAuthor(claims.UserID, c); err != nil {
			writeError(ctx, stdCtx, mapAccessErr(err))
			return
		}

		if err := svc.Access.RequireIssueInProject(p, is); err != nil {
			writeError(ctx, stdCtx, mapAccessErr(err))
			return
		}

		if err := svc.Access.RequireCommentOnIssue(is, c); err != nil {
			writeError(ctx, stdCtx, mapAccessErr(err))
			return
		}

		if err := svc.Comment.Delete(stdCtx, c.ID); err != nil {
			switch {
			case errors.Is(err, commentSvc.ErrCommentNotFound):
				writeError(ctx, stdCtx, perrors.NewErrNotFound("Comment not found", err))
			default:
				writeError(ctx, stdCtx, perrors.NewErrInternalServerError("Failed to delete comment", err))
			}
			return
		}

		response.NoContent(ctx)
	})
}

// loadCommentChain resolves {pk} and {id_issue} independently. The issue is
// looked up by id alone; whether it actually belongs to the project is the
// authorization engine's question, not the loader's.
func loadCommentChain(ctx *fasthttp.RequestCtx, svc *services.Services) (*projectSvc.Project, *issueSvc.Issue, error) {
	stdCtx := requestContext(ctx)

	p, perr := loadProject(ctx, svc)
	if perr != nil {
		return nil, nil, perr
	}

	idIssue, err := pathParamInt64(ctx, "id_issue")
	if err != nil {
		return nil, nil, perrors.NewErrValidation("Invalid issue id", err)
	}

	is, err := svc.Issue.GetByID(stdCtx, idIssue)
	if err != nil {
		if errors.Is(err, issueSvc.ErrIssueNotFound) {
			return nil, nil, perrors.NewErrNotFound("Issue not found", err)
		}
		return nil, nil, perrors.NewErrInternalServerError("Failed to get issue", err)
	}

	return p, is, nil
}

func loadFullCommentChain(ctx *fasthttp.RequestCtx, svc *services.Services) (*projectSvc.Project, *issueSvc.Issue, *commentSvc.Comment, error) {
	stdCtx := requestContext(ctx)

	p, is, perr := loadCommentChain(ctx, svc)
	if perr != nil {
		return nil, nil, nil, perr
	}

	idComment, err := pathParamInt64(ctx, "id_comment")
	if err != nil {
		return nil, nil, nil, perrors.NewErrValidation("Invalid comment id", err)
	}

	c, err := svc.Comment.GetByID(stdCtx, idComment)
	if err != nil {
		if errors.Is(err, commentSvc.ErrCommentNotFound) {
			return nil, nil, nil, perrors.NewErrNotFound("Comment not found", err)
		}
		return nil, nil, nil, perrors.NewErrInternalServerError("Failed to get comment", err)
	}

	return p, is, c, nil
}
