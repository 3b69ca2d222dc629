package issue

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockService(t *testing.T) (*IssueService, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db := sqlx.NewDb(mockDB, "sqlmock")
	return NewIssueService(NewIssueRepo(db)), mock
}

func issueRows(id, assigneeID, projectID, authorID int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "description", "assignee_id", "priority", "tag", "status", "project_id", "created_time", "author_id"}).
		AddRow(id, "Crash on save", "Stack trace attached", assigneeID, "HIGH", "BUG", "TODO", projectID, time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC), authorID)
}

func validCreateRequest() *CreateIssueRequest {
	return &CreateIssueRequest{
		Title:       "Crash on save",
		Description: "Stack trace attached",
		Priority:    PriorityHigh,
		Tag:         TagBug,
		Status:      StatusTodo,
	}
}

func TestCreateDefaultsAssigneeToAuthor(t *testing.T) {
	svc, mock := newMockService(t)

	// With no assignee in the payload the insert must carry the author id
	// in the assignee column.
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO issues")).
		WithArgs("Crash on save", "Stack trace attached", int64(7), "HIGH", "BUG", "TODO", int64(10), int64(7)).
		WillReturnRows(issueRows(100, 7, 10, 7))

	is, err := svc.Create(context.Background(), 10, 7, validCreateRequest())
	require.NoError(t, err)
	assert.Equal(t, is.AuthorID, is.AssigneeID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithExplicitAssignee(t *testing.T) {
	svc, mock := newMockService(t)

	req := validCreateRequest()
	assignee := int64(8)
	req.AssigneeID = &assignee

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO issues")).
		WithArgs("Crash on save", "Stack trace attached", int64(8), "HIGH", "BUG", "TODO", int64(10), int64(7)).
		WillReturnRows(issueRows(100, 8, 10, 7))

	is, err := svc.Create(context.Background(), 10, 7, req)
	require.NoError(t, err)
	assert.Equal(t, int64(8), is.AssigneeID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newMockService(t)

	tests := []struct {
		name   string
		mutate func(*CreateIssueRequest)
	}{
		{name: "missing title", mutate: func(r *CreateIssueRequest) { r.Title = "" }},
		{name: "missing description", mutate: func(r *CreateIssueRequest) { r.Description = "" }},
		{name: "bad priority", mutate: func(r *CreateIssueRequest) { r.Priority = "URGENT" }},
		{name: "bad tag", mutate: func(r *CreateIssueRequest) { r.Tag = "FEATURE" }},
		{name: "bad status", mutate: func(r *CreateIssueRequest) { r.Status = "CLOSED" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(req)

			_, err := svc.Create(context.Background(), 10, 7, req)
			assert.ErrorIs(t, err, ErrInvalidIssue)
		})
	}
}

func TestUpdateKeepsAssigneeWhenOmitted(t *testing.T) {
	svc, mock := newMockService(t)

	existing := &Issue{ID: 100, AssigneeID: 8, ProjectID: 10, AuthorID: 7}

	// The update omits assignee; the stored assignee must flow through,
	// not the author.
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE issues")).
		WithArgs("New title", "New description", int64(8), "LOW", "TASK", "DONE", int64(100)).
		WillReturnRows(issueRows(100, 8, 10, 7))

	is, err := svc.Update(context.Background(), existing, &UpdateIssueRequest{
		Title:       "New title",
		Description: "New description",
		Priority:    PriorityLow,
		Tag:         TagTask,
		Status:      StatusDone,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(8), is.AssigneeID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePreservesImmutableFields(t *testing.T) {
	svc, mock := newMockService(t)

	existing := &Issue{ID: 100, AssigneeID: 7, ProjectID: 10, AuthorID: 7}

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE issues")).
		WithArgs("New title", "New description", int64(7), "LOW", "TASK", "DONE", int64(100)).
		WillReturnRows(issueRows(100, 7, 10, 7))

	is, err := svc.Update(context.Background(), existing, &UpdateIssueRequest{
		Title:       "New title",
		Description: "New description",
		Priority:    PriorityLow,
		Tag:         TagTask,
		Status:      StatusDone,
	})
	require.NoError(t, err)

	// project and author come back from the stored row, untouched by the
	// update statement.
	assert.Equal(t, int64(10), is.ProjectID)
	assert.Equal(t, int64(7), is.AuthorID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByProjectAndIDScopesToProject(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE project_id = $1 AND id = $2")).
		WithArgs(int64(11), int64(100)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	// Issue 100 lives in project 10; asking for it through project 11 is
	// a miss.
	_, err := svc.GetByProjectAndID(context.Background(), 11, 100)
	assert.ErrorIs(t, err, ErrIssueNotFound)
}

func TestDeleteMissingIssue(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM issues")).
		WithArgs(int64(100)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := svc.Delete(context.Background(), 100)
	assert.ErrorIs(t, err, ErrIssueNotFound)
}
