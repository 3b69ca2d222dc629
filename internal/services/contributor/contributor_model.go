package contributor

// Contributor grants a user read/create access to a project without
// ownership rights.
type Contributor struct {
	ID        int64 `json:"id" db:"id"`
	UserID    int64 `json:"user" db:"user_id"`
	ProjectID int64 `json:"project" db:"project_id"`
}

// AddContributorRequest captures payload for adding a contributor. The
// project always comes from the request path.
type AddContributorRequest struct {
	UserID int64 `json:"user"`
}
