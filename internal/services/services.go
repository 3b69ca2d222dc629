package services

import (
	"github.com/softdesk/tracker/internal/config"
	"github.com/softdesk/tracker/internal/db"
	"github.com/softdesk/tracker/internal/services/access"
	"github.com/softdesk/tracker/internal/services/comment"
	"github.com/softdesk/tracker/internal/services/contributor"
	"github.com/softdesk/tracker/internal/services/issue"
	"github.com/softdesk/tracker/internal/services/project"
	"github.com/softdesk/tracker/internal/services/user"
)

type Services struct {
	User        *user.UserService
	Project     *project.ProjectService
	Contributor *contributor.ContributorService
	Issue       *issue.IssueService
	Comment     *comment.CommentService
	Access      *access.AccessService
}

func NewServices(conf *config.Config) *Services {
	dbconn := db.NewConn(conf)

	contributorSvc := contributor.NewContributorService(contributor.NewContributorRepo(dbconn))

	return &Services{
		User:        user.NewUserService(user.NewUserRepo(dbconn)),
		Project:     project.NewProjectService(project.NewProjectRepo(dbconn)),
		Contributor: contributorSvc,
		Issue:       issue.NewIssueService(issue.NewIssueRepo(dbconn)),
		Comment:     comment.NewCommentService(comment.NewCommentRepo(dbconn)),
		Access:      access.NewAccessService(contributorSvc),
	}
}
