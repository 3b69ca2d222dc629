package comment

import "time"

// Comment belongs to exactly one issue; author and issue never change after
// creation.
type Comment struct {
	ID          int64     `json:"id" db:"id"`
	Description string    `json:"description" db:"description"`
	AuthorID    int64     `json:"author" db:"author_id"`
	IssueID     int64     `json:"issue" db:"issue_id"`
	CreatedTime time.Time `json:"created_time" db:"created_time"`
}

// CommentRequest is the payload for both creating and updating a comment;
// only the description is caller-controlled.
type CommentRequest struct {
	Description string `json:"description"`
}
