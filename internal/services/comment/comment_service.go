package comment

import (
	"context"
	"errors"
	"fmt"
)

var ErrInvalidComment = errors.New("description is required")

// CommentService contains business logic for issue comments
type CommentService struct {
	repo *CommentRepo
}

func NewCommentService(repo *CommentRepo) *CommentService {
	return &CommentService{repo: repo}
}

// Create adds a comment to an issue with the principal as author
func (s *CommentService) Create(ctx context.Context, issueID, authorID int64, req *CommentRequest) (*Comment, error) {
	if req.Description == "" {
		return nil, ErrInvalidComment
	}

	c, err := s.repo.Create(ctx, issueID, authorID, req.Description)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return c, nil
}

// GetByID fetches a comment by its identifier
func (s *CommentService) GetByID(ctx context.Context, id int64) (*Comment, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrCommentNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return c, nil
}

// ListByIssue returns all comments of an issue
func (s *CommentService) ListByIssue(ctx context.Context, issueID int64) ([]*Comment, error) {
	comments, err := s.repo.ListByIssue(ctx, issueID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return comments, nil
}

// Update changes a comment's description. The stored id, author, issue and
// created_time always win over whatever the caller sent.
func (s *CommentService) Update(ctx context.Context, id int64, req *CommentRequest) (*Comment, error) {
	if req.Description == "" {
		return nil, ErrInvalidComment
	}

	c, err := s.repo.Update(ctx, id, req.Description)
	if err != nil {
		if errors.Is(err, ErrCommentNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	return c, nil
}

// Delete removes a comment
func (s *CommentService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrCommentNotFound) {
			return ErrCommentNotFound
		}
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	return nil
}
