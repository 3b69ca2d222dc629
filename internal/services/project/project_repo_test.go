package project

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

func newMockRepo(t *testing.T) (*ProjectRepo, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return NewProjectRepo(sqlx.NewDb(mockDB, "sqlmock")), mock
}

func projectRows(ids ...int64) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "title", "description", "type", "author_id", "created_time"})
	for _, id := range ids {
		rows.AddRow(id, "Backend", "REST API", "back-end", int64(1), time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC))
	}
	return rows
}

func TestCreateSetsAuthor(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO projects")).
		WithArgs("Backend", "REST API", "back-end", int64(1)).
		WillReturnRows(projectRows(10))

	p, err := repo.Create(context.Background(), 1, &CreateProjectRequest{
		Title:       "Backend",
		Description: "REST API",
		Type:        "back-end",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.AuthorID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM projects")).
		WithArgs(int64(99)).
		WillReturnRows(projectRows())

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestListByAuthorFiltersOnAuthor(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE author_id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(projectRows(10, 11))

	projects, err := repo.ListByAuthor(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, projects, 2)
}

func TestListVisibleToIncludesContributedProjects(t *testing.T) {
	repo, mock := newMockRepo(t)

	// The visibility query unions authored projects with contributor rows.
	mock.ExpectQuery(regexp.QuoteMeta("EXISTS")).
		WithArgs(int64(2)).
		WillReturnRows(projectRows(10))

	projects, err := repo.ListVisibleTo(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, projects, 1)
}

func TestVisibleTo(t *testing.T) {
	t.Run("project in the visible set", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		svc := NewProjectService(repo)

		mock.ExpectQuery(regexp.QuoteMeta("EXISTS")).
			WithArgs(int64(2)).
			WillReturnRows(projectRows(10, 11))

		visible, err := svc.VisibleTo(context.Background(), 2, 10)
		require.NoError(t, err)
		assert.True(t, visible)
	})

	t.Run("project outside the visible set", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		svc := NewProjectService(repo)

		mock.ExpectQuery(regexp.QuoteMeta("EXISTS")).
			WithArgs(int64(2)).
			WillReturnRows(projectRows(11))

		visible, err := svc.VisibleTo(context.Background(), 2, 10)
		require.NoError(t, err)
		assert.False(t, visible)
	})
}

func TestUpdateDoesNotTouchAuthor(t *testing.T) {
	repo, mock := newMockRepo(t)

	// The update statement sets exactly title, description and type; the
	// author column is not part of it.
	mock.ExpectQuery(regexp.QuoteMeta("SET title = $1, description = $2, type = $3")).
		WithArgs("Renamed", "Still a REST API", "back-end", int64(10)).
		WillReturnRows(projectRows(10))

	p, err := repo.Update(context.Background(), 10, &UpdateProjectRequest{
		Title:       "Renamed",
		Description: "Still a REST API",
		Type:        "back-end",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.AuthorID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMissingProject(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM projects")).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, ErrProjectNotFound)
}
