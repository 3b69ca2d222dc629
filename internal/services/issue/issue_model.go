package issue

import "time"

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

type Tag string

const (
	TagBug         Tag = "BUG"
	TagTask        Tag = "TASK"
	TagEnhancement Tag = "ENHANCEMENT"
)

type Status string

const (
	StatusTodo    Status = "TODO"
	StatusOngoing Status = "ONGOING"
	StatusDone    Status = "DONE"
)

// Issue belongs to exactly one project; project and author never change
// after creation.
type Issue struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	AssigneeID  int64     `json:"assignee" db:"assignee_id"`
	Priority    Priority  `json:"priority" db:"priority"`
	Tag         Tag       `json:"tag" db:"tag"`
	Status      Status    `json:"status" db:"status"`
	ProjectID   int64     `json:"project" db:"project_id"`
	CreatedTime time.Time `json:"created_time" db:"created_time"`
	AuthorID    int64     `json:"author" db:"author_id"`
}

// CreateIssueRequest captures payload for filing an issue. Assignee is
// optional; when omitted the issue is assigned to its author.
type CreateIssueRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	AssigneeID  *int64   `json:"assignee"`
	Priority    Priority `json:"priority"`
	Tag         Tag      `json:"tag"`
	Status      Status   `json:"status"`
}

// UpdateIssueRequest carries the mutable issue fields. An omitted assignee
// keeps the stored value; it is never re-derived from the author.
type UpdateIssueRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	AssigneeID  *int64   `json:"assignee"`
	Priority    Priority `json:"priority"`
	Tag         Tag      `json:"tag"`
	Status      Status   `json:"status"`
}

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

func (t Tag) Valid() bool {
	switch t {
	case TagBug, TagTask, TagEnhancement:
		return true
	}
	return false
}

func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusOngoing, StatusDone:
		return true
	}
	return false
}
