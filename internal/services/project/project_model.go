package project

import "time"

// Project is a container for issues and contributors, owned by its author.
type Project struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Type        string    `json:"type" db:"type"`
	AuthorID    int64     `json:"author" db:"author_id"`
	CreatedTime time.Time `json:"created_time" db:"created_time"`
}

// CreateProjectRequest captures payload for creating a project. The author is
// always the authenticated principal, never taken from the body.
type CreateProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

// UpdateProjectRequest carries the mutable project fields. id, author and
// created_time are immutable; anything the caller supplies for them is
// discarded in favor of the stored values.
type UpdateProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
}
