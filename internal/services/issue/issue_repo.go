package issue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var ErrIssueNotFound = errors.New("issue not found")

// IssueRepo handles database operations for issues
type IssueRepo struct {
	db *sqlx.DB
}

func NewIssueRepo(db *sqlx.DB) *IssueRepo {
	return &IssueRepo{db: db}
}

// Create inserts a new issue row and returns it with the assigned id
func (r *IssueRepo) Create(ctx context.Context, projectID, authorID, assigneeID int64, req *CreateIssueRequest) (*Issue, error) {
	query := `
        INSERT INTO issues (title, description, assignee_id, priority, tag, status, project_id, author_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, title, description, assignee_id, priority, tag, status, project_id, created_time, author_id
    `

	var is Issue
	err := r.db.GetContext(ctx, &is, query,
		req.Title, req.Description, assigneeID, req.Priority, req.Tag, req.Status, projectID, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to create issue: %w", err)
	}

	return &is, nil
}

// GetByProjectAndID retrieves an issue that belongs to the given project
func (r *IssueRepo) GetByProjectAndID(ctx context.Context, projectID, issueID int64) (*Issue, error) {
	query := `
        SELECT id, title, description, assignee_id, priority, tag, status, project_id, created_time, author_id
        FROM issues
        WHERE project_id = $1 AND id = $2
    `

	var is Issue
	err := r.db.GetContext(ctx, &is, query, projectID, issueID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrIssueNotFound
		}
		return nil, fmt.Errorf("failed to get issue: %w", err)
	}

	return &is, nil
}

// GetByID retrieves an issue by its id alone
func (r *IssueRepo) GetByID(ctx context.Context, issueID int64) (*Issue, error) {
	query := `
        SELECT id, title, description, assignee_id, priority, tag, status, project_id, created_time, author_id
        FROM issues
        WHERE id = $1
    `

	var is Issue
	err := r.db.GetContext(ctx, &is, query, issueID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrIssueNotFound
		}
		return nil, fmt.Errorf("failed to get issue: %w", err)
	}

	return &is, nil
}

// ListByProject retrieves all issues of a project
func (r *IssueRepo) ListByProject(ctx context.Context, projectID int64) ([]*Issue, error) {
	query := `
        SELECT id, title, description, assignee_id, priority, tag, status, project_id, created_time, author_id
        FROM issues
        WHERE project_id = $1
        ORDER BY created_time DESC
    `

	var issues []*Issue
	err := r.db.SelectContext(ctx, &issues, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list issues: %w", err)
	}

	return issues, nil
}

// Update persists the mutable fields of an issue. project_id, author_id and
// created_time stay untouched.
func (r *IssueRepo) Update(ctx context.Context, id, assigneeID int64, req *UpdateIssueRequest) (*Issue, error) {
	query := `
        UPDATE issues
        SET title = $1, description = $2, assignee_id = $3, priority = $4, tag = $5, status = $6
        WHERE id = $7
        RETURNING id, title, description, assignee_id, priority, tag, status, project_id, created_time, author_id
    `

	var is Issue
	err := r.db.GetContext(ctx, &is, query,
		req.Title, req.Description, assigneeID, req.Priority, req.Tag, req.Status, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrIssueNotFound
		}
		return nil, fmt.Errorf("failed to update issue: %w", err)
	}

	return &is, nil
}

// Delete removes an issue by ID. Its comments go with it through the store's
// cascading foreign key.
func (r *IssueRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM issues WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete issue: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrIssueNotFound
	}

	return nil
}
