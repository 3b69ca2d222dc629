package access

import (
	"context"
	"testing"

	"github.com/softdesk/tracker/internal/services/comment"
	"github.com/softdesk/tracker/internal/services/issue"
	"github.com/softdesk/tracker/internal/services/project"
	"github.com/stretchr/testify/assert"
)

// membership is a canned ContributorChecker keyed by (user, project).
type membership map[[2]int64]bool

func (m membership) IsContributor(_ context.Context, userID, projectID int64) (bool, error) {
	return m[[2]int64{userID, projectID}], nil
}

const (
	authorID      = int64(1)
	contributorID = int64(2)
	outsiderID    = int64(3)
)

func testService() *AccessService {
	return NewAccessService(membership{
		{contributorID, 10}: true,
	})
}

func testProject() *project.Project {
	return &project.Project{ID: 10, AuthorID: authorID}
}

func TestRequireProjectAuthor(t *testing.T) {
	svc := testService()
	p := testProject()

	assert.NoError(t, svc.RequireProjectAuthor(authorID, p))
	assert.ErrorIs(t, svc.RequireProjectAuthor(contributorID, p), ErrNotAllowed)
	assert.ErrorIs(t, svc.RequireProjectAuthor(outsiderID, p), ErrNotAllowed)
}

func TestRequireProjectMember(t *testing.T) {
	svc := testService()
	p := testProject()
	ctx := context.Background()

	tests := []struct {
		name      string
		principal int64
		allowed   bool
	}{
		{name: "author", principal: authorID, allowed: true},
		{name: "contributor", principal: contributorID, allowed: true},
		{name: "outsider", principal: outsiderID, allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.RequireProjectMember(ctx, tt.principal, p)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrNotAllowed)
			}
		})
	}
}

func TestRequireIssueAuthor(t *testing.T) {
	svc := testService()
	is := &issue.Issue{ID: 100, ProjectID: 10, AuthorID: contributorID}

	// A contributor may mutate only issues they authored; even the project
	// author cannot touch someone else's issue.
	assert.NoError(t, svc.RequireIssueAuthor(contributorID, is))
	assert.ErrorIs(t, svc.RequireIssueAuthor(authorID, is), ErrNotAllowed)
	assert.ErrorIs(t, svc.RequireIssueAuthor(outsiderID, is), ErrNotAllowed)
}

func TestRequireCommentAuthor(t *testing.T) {
	svc := testService()
	c := &comment.Comment{ID: 1000, IssueID: 100, AuthorID: contributorID}

	assert.NoError(t, svc.RequireCommentAuthor(contributorID, c))
	assert.ErrorIs(t, svc.RequireCommentAuthor(authorID, c), ErrNotAllowed)
}

func TestRequireIssueInProject(t *testing.T) {
	svc := testService()
	p := testProject()

	assert.NoError(t, svc.RequireIssueInProject(p, &issue.Issue{ID: 100, ProjectID: 10}))
	assert.ErrorIs(t, svc.RequireIssueInProject(p, &issue.Issue{ID: 100, ProjectID: 11}), ErrNotAllowed)
}

func TestRequireCommentOnIssue(t *testing.T) {
	svc := testService()
	is := &issue.Issue{ID: 100, ProjectID: 10}

	assert.NoError(t, svc.RequireCommentOnIssue(is, &comment.Comment{ID: 1000, IssueID: 100}))

	// Correct comment id but wrong issue in the path stays a denial even
	// for a principal who could otherwise read it.
	assert.ErrorIs(t, svc.RequireCommentOnIssue(is, &comment.Comment{ID: 1000, IssueID: 101}), ErrNotAllowed)
}
