package comment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var ErrCommentNotFound = errors.New("comment not found")

// CommentRepo handles database operations for comments
type CommentRepo struct {
	db *sqlx.DB
}

func NewCommentRepo(db *sqlx.DB) *CommentRepo {
	return &CommentRepo{db: db}
}

// Create inserts a new comment row and returns it with the assigned id
func (r *CommentRepo) Create(ctx context.Context, issueID, authorID int64, description string) (*Comment, error) {
	query := `
        INSERT INTO comments (description, author_id, issue_id)
        VALUES ($1, $2, $3)
        RETURNING id, description, author_id, issue_id, created_time
    `

	var c Comment
	err := r.db.GetContext(ctx, &c, query, description, authorID, issueID)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return &c, nil
}

// GetByID retrieves a comment by ID
func (r *CommentRepo) GetByID(ctx context.Context, id int64) (*Comment, error) {
	query := `
        SELECT id, description, author_id, issue_id, created_time
        FROM comments
        WHERE id = $1
    `

	var c Comment
	err := r.db.GetContext(ctx, &c, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return &c, nil
}

// ListByIssue retrieves all comments of an issue
func (r *CommentRepo) ListByIssue(ctx context.Context, issueID int64) ([]*Comment, error) {
	query := `
        SELECT id, description, author_id, issue_id, created_time
        FROM comments
        WHERE issue_id = $1
        ORDER BY created_time DESC
    `

	var comments []*Comment
	err := r.db.SelectContext(ctx, &comments, query, issueID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return comments, nil
}

// Update persists a comment's description. author_id, issue_id and
// created_time stay untouched.
func (r *CommentRepo) Update(ctx context.Context, id int64, description string) (*Comment, error) {
	query := `
        UPDATE comments
        SET description = $1
        WHERE id = $2
        RETURNING id, description, author_id, issue_id, created_time
    `

	var c Comment
	err := r.db.GetContext(ctx, &c, query, description, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	return &c, nil
}

// Delete removes a comment by ID
func (r *CommentRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrCommentNotFound
	}

	return nil
}
