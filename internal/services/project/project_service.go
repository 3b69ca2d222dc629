package project

import (
	"context"
	"errors"
	"fmt"
)

var ErrInvalidProject = errors.New("title, description and type are required")

// ProjectService contains business logic for projects
type ProjectService struct {
	repo *ProjectRepo
}

// NewProjectService constructs a new ProjectService
func NewProjectService(repo *ProjectRepo) *ProjectService {
	return &ProjectService{repo: repo}
}

// Create registers a new project with the principal as author
func (s *ProjectService) Create(ctx context.Context, authorID int64, req *CreateProjectRequest) (*Project, error) {
	if req.Title == "" || req.Description == "" || req.Type == "" {
		return nil, ErrInvalidProject
	}

	p, err := s.repo.Create(ctx, authorID, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return p, nil
}

// GetByID fetches a project by its identifier
func (s *ProjectService) GetByID(ctx context.Context, id int64) (*Project, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return p, nil
}

// ListByAuthor returns the projects authored by a user
func (s *ProjectService) ListByAuthor(ctx context.Context, authorID int64) ([]*Project, error) {
	projects, err := s.repo.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	return projects, nil
}

// ListVisibleTo returns the projects a user authored or contributes to
func (s *ProjectService) ListVisibleTo(ctx context.Context, userID int64) ([]*Project, error) {
	projects, err := s.repo.ListVisibleTo(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	return projects, nil
}

// VisibleTo reports whether the project sits in the user's visible set,
// authored or contributed to.
func (s *ProjectService) VisibleTo(ctx context.Context, userID, projectID int64) (bool, error) {
	projects, err := s.repo.ListVisibleTo(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to check project visibility: %w", err)
	}

	for _, p := range projects {
		if p.ID == projectID {
			return true, nil
		}
	}

	return false, nil
}

// Update modifies the mutable project fields. The stored id, author and
// created_time always win over whatever the caller sent.
func (s *ProjectService) Update(ctx context.Context, id int64, req *UpdateProjectRequest) (*Project, error) {
	if req.Title == "" || req.Description == "" || req.Type == "" {
		return nil, ErrInvalidProject
	}

	p, err := s.repo.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return p, nil
}

// Delete removes a project and, transitively, its issues, comments and
// contributor records
func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}
