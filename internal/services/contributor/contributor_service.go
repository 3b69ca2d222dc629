package contributor

import (
	"context"
	"errors"
	"fmt"
)

var ErrContributorNotFound = errors.New("contributor not found")

// ContributorService contains business logic for project contributors
type ContributorService struct {
	repo *ContributorRepo
}

func NewContributorService(repo *ContributorRepo) *ContributorService {
	return &ContributorService{repo: repo}
}

// Add registers a user as contributor of a project
func (s *ContributorService) Add(ctx context.Context, userID, projectID int64) (*Contributor, error) {
	c, err := s.repo.Add(ctx, userID, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to add contributor: %w", err)
	}

	return c, nil
}

// ListUserIDs returns the user ids of a project's contributors
func (s *ContributorService) ListUserIDs(ctx context.Context, projectID int64) ([]int64, error) {
	contributors, err := s.repo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contributors: %w", err)
	}

	userIDs := make([]int64, 0, len(contributors))
	for _, c := range contributors {
		userIDs = append(userIDs, c.UserID)
	}

	return userIDs, nil
}

// Remove deletes every contributor row of the user on the project
func (s *ContributorService) Remove(ctx context.Context, projectID, userID int64) error {
	removed, err := s.repo.RemoveByProjectAndUser(ctx, projectID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove contributor: %w", err)
	}

	if removed == 0 {
		return ErrContributorNotFound
	}

	return nil
}

// IsContributor reports whether the user contributes to the project
func (s *ContributorService) IsContributor(ctx context.Context, userID, projectID int64) (bool, error) {
	return s.repo.IsContributor(ctx, userID, projectID)
}
