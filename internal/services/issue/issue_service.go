package issue

import (
	"context"
	"errors"
	"fmt"
)

var ErrInvalidIssue = errors.New("invalid issue payload")

// IssueService contains business logic for issues
type IssueService struct {
	repo *IssueRepo
}

func NewIssueService(repo *IssueRepo) *IssueService {
	return &IssueService{repo: repo}
}

// Create files an issue on a project with the principal as author. A missing
// assignee defaults to the author; this happens here, at creation, and never
// again on update.
func (s *IssueService) Create(ctx context.Context, projectID, authorID int64, req *CreateIssueRequest) (*Issue, error) {
	if err := validatePayload(req.Title, req.Description, req.Priority, req.Tag, req.Status); err != nil {
		return nil, err
	}

	assigneeID := authorID
	if req.AssigneeID != nil && *req.AssigneeID != 0 {
		assigneeID = *req.AssigneeID
	}

	is, err := s.repo.Create(ctx, projectID, authorID, assigneeID, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create issue: %w", err)
	}

	return is, nil
}

// GetByProjectAndID fetches an issue scoped to a project
func (s *IssueService) GetByProjectAndID(ctx context.Context, projectID, issueID int64) (*Issue, error) {
	is, err := s.repo.GetByProjectAndID(ctx, projectID, issueID)
	if err != nil {
		if errors.Is(err, ErrIssueNotFound) {
			return nil, ErrIssueNotFound
		}
		return nil, fmt.Errorf("failed to get issue: %w", err)
	}

	return is, nil
}

// GetByID fetches an issue by id alone
func (s *IssueService) GetByID(ctx context.Context, issueID int64) (*Issue, error) {
	is, err := s.repo.GetByID(ctx, issueID)
	if err != nil {
		if errors.Is(err, ErrIssueNotFound) {
			return nil, ErrIssueNotFound
		}
		return nil, fmt.Errorf("failed to get issue: %w", err)
	}

	return is, nil
}

// ListByProject returns all issues of a project
func (s *IssueService) ListByProject(ctx context.Context, projectID int64) ([]*Issue, error) {
	issues, err := s.repo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list issues: %w", err)
	}

	return issues, nil
}

// Update modifies the mutable fields of an existing issue. The stored
// project, author and created_time always win, and an omitted assignee keeps
// its current value.
func (s *IssueService) Update(ctx context.Context, existing *Issue, req *UpdateIssueRequest) (*Issue, error) {
	if err := validatePayload(req.Title, req.Description, req.Priority, req.Tag, req.Status); err != nil {
		return nil, err
	}

	assigneeID := existing.AssigneeID
	if req.AssigneeID != nil && *req.AssigneeID != 0 {
		assigneeID = *req.AssigneeID
	}

	is, err := s.repo.Update(ctx, existing.ID, assigneeID, req)
	if err != nil {
		if errors.Is(err, ErrIssueNotFound) {
			return nil, ErrIssueNotFound
		}
		return nil, fmt.Errorf("failed to update issue: %w", err)
	}

	return is, nil
}

// Delete removes an issue and, transitively, its comments
func (s *IssueService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrIssueNotFound) {
			return ErrIssueNotFound
		}
		return fmt.Errorf("failed to delete issue: %w", err)
	}

	return nil
}

func validatePayload(title, description string, priority Priority, tag Tag, status Status) error {
	if title == "" || description == "" {
		return fmt.Errorf("%w: title and description are required", ErrInvalidIssue)
	}
	if !priority.Valid() {
		return fmt.Errorf("%w: invalid priority %q", ErrInvalidIssue, priority)
	}
	if !tag.Valid() {
		return fmt.Errorf("%w: invalid tag %q", ErrInvalidIssue, tag)
	}
	if !status.Valid() {
		return fmt.Errorf("%w: invalid status %q", ErrInvalidIssue, status)
	}
	return nil
}
