package contributor

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockService(t *testing.T) (*ContributorService, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return NewContributorService(NewContributorRepo(sqlx.NewDb(mockDB, "sqlmock"))), mock
}

func TestAddReturnsContributor(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO contributors")).
		WithArgs(int64(2), int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "project_id"}).AddRow(1, 2, 10))

	c, err := svc.Add(context.Background(), 2, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), c.UserID)
	assert.Equal(t, int64(10), c.ProjectID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListUserIDs(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM contributors")).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "project_id"}).
			AddRow(1, 2, 10).
			AddRow(2, 5, 10))

	ids, err := svc.ListUserIDs(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 5}, ids)
}

func TestListUserIDsEmptyProject(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM contributors")).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "project_id"}))

	ids, err := svc.ListUserIDs(context.Background(), 10)
	require.NoError(t, err)
	// An empty slice, not nil, so the handler serializes [] rather than null.
	assert.NotNil(t, ids)
	assert.Empty(t, ids)
}

func TestRemoveDeletesAllRowsForPair(t *testing.T) {
	svc, mock := newMockService(t)

	// Duplicate contributor rows are possible; removal sweeps them all.
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM contributors WHERE project_id = $1 AND user_id = $2")).
		WithArgs(int64(10), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	err := svc.Remove(context.Background(), 10, 2)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveUnknownContributor(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM contributors")).
		WithArgs(int64(10), int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := svc.Remove(context.Background(), 10, 99)
	assert.ErrorIs(t, err, ErrContributorNotFound)
}

func TestIsContributor(t *testing.T) {
	tests := []struct {
		name   string
		exists bool
	}{
		{name: "member", exists: true},
		{name: "outsider", exists: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mock := newMockService(t)

			mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
				WithArgs(int64(2), int64(10)).
				WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(tt.exists))

			got, err := svc.IsContributor(context.Background(), 2, 10)
			require.NoError(t, err)
			assert.Equal(t, tt.exists, got)
		})
	}
}
