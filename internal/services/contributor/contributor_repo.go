package contributor

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ContributorRepo handles database operations for contributors
type ContributorRepo struct {
	db *sqlx.DB
}

func NewContributorRepo(db *sqlx.DB) *ContributorRepo {
	return &ContributorRepo{db: db}
}

// Add inserts a contributor row. (user, project) pairs are not unique, so
// adding the same user twice leaves two rows.
func (r *ContributorRepo) Add(ctx context.Context, userID, projectID int64) (*Contributor, error) {
	query := `
        INSERT INTO contributors (user_id, project_id)
        VALUES ($1, $2)
        RETURNING id, user_id, project_id
    `

	var c Contributor
	err := r.db.GetContext(ctx, &c, query, userID, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to add contributor: %w", err)
	}

	return &c, nil
}

// ListByProject retrieves all contributor rows of a project
func (r *ContributorRepo) ListByProject(ctx context.Context, projectID int64) ([]*Contributor, error) {
	query := `
        SELECT id, user_id, project_id
        FROM contributors
        WHERE project_id = $1
    `

	var contributors []*Contributor
	err := r.db.SelectContext(ctx, &contributors, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contributors: %w", err)
	}

	return contributors, nil
}

// RemoveByProjectAndUser deletes every contributor row for the pair and
// reports how many rows went away.
func (r *ContributorRepo) RemoveByProjectAndUser(ctx context.Context, projectID, userID int64) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM contributors WHERE project_id = $1 AND user_id = $2`, projectID, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to remove contributor: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected, nil
}

// IsContributor reports whether the user has at least one contributor row on
// the project.
func (r *ContributorRepo) IsContributor(ctx context.Context, userID, projectID int64) (bool, error) {
	query := `
        SELECT EXISTS (
            SELECT 1 FROM contributors
            WHERE user_id = $1 AND project_id = $2
        )
    `

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, userID, projectID)
	if err != nil {
		return false, fmt.Errorf("failed to check contributor: %w", err)
	}

	return exists, nil
}
