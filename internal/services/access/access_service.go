// Package access is the authorization engine. It decides, per request, what
// an authenticated principal may do to a project, its contributors, its
// issues and their comments. Resources are loaded by the caller before any
// decision is made, so a missing resource surfaces as not-found and never
// leaks permission state.
package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/softdesk/tracker/internal/services/comment"
	"github.com/softdesk/tracker/internal/services/issue"
	"github.com/softdesk/tracker/internal/services/project"
)

// ErrNotAllowed is returned for every denied operation, including nested
// path chains that do not hold together.
var ErrNotAllowed = errors.New("you are not allowed")

// ContributorChecker answers contributor-membership questions. Satisfied by
// the contributor service.
type ContributorChecker interface {
	IsContributor(ctx context.Context, userID, projectID int64) (bool, error)
}

// AccessService evaluates the ownership rules: a project's author holds
// exclusive mutation rights, contributors may read and create, everyone else
// is denied.
type AccessService struct {
	contributors ContributorChecker
}

func NewAccessService(contributors ContributorChecker) *AccessService {
	return &AccessService{contributors: contributors}
}

// RequireProjectAuthor allows only the project's author.
func (s *AccessService) RequireProjectAuthor(principalID int64, p *project.Project) error {
	if p.AuthorID != principalID {
		return ErrNotAllowed
	}
	return nil
}

// RequireProjectMember allows the project's author and its contributors.
func (s *AccessService) RequireProjectMember(ctx context.Context, principalID int64, p *project.Project) error {
	if p.AuthorID == principalID {
		return nil
	}

	isContributor, err := s.contributors.IsContributor(ctx, principalID, p.ID)
	if err != nil {
		return fmt.Errorf("failed to check project membership: %w", err)
	}
	if !isContributor {
		return ErrNotAllowed
	}

	return nil
}

// RequireIssueAuthor allows only the issue's author.
func (s *AccessService) RequireIssueAuthor(principalID int64, is *issue.Issue) error {
	if is.AuthorID != principalID {
		return ErrNotAllowed
	}
	return nil
}

// RequireCommentAuthor allows only the comment's author.
func (s *AccessService) RequireCommentAuthor(principalID int64, c *comment.Comment) error {
	if c.AuthorID != principalID {
		return ErrNotAllowed
	}
	return nil
}

// RequireIssueInProject checks the path chain: the issue must belong to the
// stated project. A mismatch is a denial, not a lookup miss; the nested path
// is integrity-checked rather than used as a filter.
func (s *AccessService) RequireIssueInProject(p *project.Project, is *issue.Issue) error {
	if is.ProjectID != p.ID {
		return ErrNotAllowed
	}
	return nil
}

// RequireCommentOnIssue checks the path chain: the comment must belong to
// the stated issue.
func (s *AccessService) RequireCommentOnIssue(is *issue.Issue, c *comment.Comment) error {
	if c.IssueID != is.ID {
		return ErrNotAllowed
	}
	return nil
}
