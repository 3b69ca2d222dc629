package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var ErrProjectNotFound = errors.New("project not found")

// ProjectRepo handles database operations for projects
type ProjectRepo struct {
	db *sqlx.DB
}

// NewProjectRepo creates a new project repository
func NewProjectRepo(db *sqlx.DB) *ProjectRepo {
	return &ProjectRepo{db: db}
}

// Create creates a new project owned by authorID
func (r *ProjectRepo) Create(ctx context.Context, authorID int64, req *CreateProjectRequest) (*Project, error) {
	query := `
        INSERT INTO projects (title, description, type, author_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id, title, description, type, author_id, created_time
    `

	var p Project
	err := r.db.GetContext(ctx, &p, query, req.Title, req.Description, req.Type, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return &p, nil
}

// GetByID retrieves a project by ID
func (r *ProjectRepo) GetByID(ctx context.Context, id int64) (*Project, error) {
	query := `
        SELECT id, title, description, type, author_id, created_time
        FROM projects
        WHERE id = $1
    `

	var p Project
	err := r.db.GetContext(ctx, &p, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return &p, nil
}

// ListByAuthor retrieves the projects authored by a user
func (r *ProjectRepo) ListByAuthor(ctx context.Context, authorID int64) ([]*Project, error) {
	query := `
        SELECT id, title, description, type, author_id, created_time
        FROM projects
        WHERE author_id = $1
        ORDER BY created_time DESC
    `

	var projects []*Project
	err := r.db.SelectContext(ctx, &projects, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	return projects, nil
}

// ListVisibleTo retrieves the projects a user authored or contributes to
func (r *ProjectRepo) ListVisibleTo(ctx context.Context, userID int64) ([]*Project, error) {
	query := `
        SELECT p.id, p.title, p.description, p.type, p.author_id, p.created_time
        FROM projects p
        WHERE p.author_id = $1
           OR EXISTS (
               SELECT 1 FROM contributors c
               WHERE c.project_id = p.id AND c.user_id = $1
           )
        ORDER BY p.created_time DESC
    `

	var projects []*Project
	err := r.db.SelectContext(ctx, &projects, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	return projects, nil
}

// Update persists the mutable fields of a project
func (r *ProjectRepo) Update(ctx context.Context, id int64, req *UpdateProjectRequest) (*Project, error) {
	query := `
        UPDATE projects
        SET title = $1, description = $2, type = $3
        WHERE id = $4
        RETURNING id, title, description, type, author_id, created_time
    `

	var p Project
	err := r.db.GetContext(ctx, &p, query, req.Title, req.Description, req.Type, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return &p, nil
}

// Delete removes a project by ID. Issues, their comments and contributor
// records go with it through the store's cascading foreign keys, all inside
// the one DELETE statement.
func (r *ProjectRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProjectNotFound
	}

	return nil
}
