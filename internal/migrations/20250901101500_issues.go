package migrations

import "github.com/jmoiron/sqlx"

func init() {
	m.addMigration(&migration{
		version: "20250901101500",
		up:      mig_20250901101500_issues_up,
		down:    mig_20250901101500_issues_down,
	})
}

func mig_20250901101500_issues_up(tx *sqlx.Tx) error {
	_, err := tx.Exec(`
        CREATE TABLE IF NOT EXISTS issues (
            id BIGSERIAL PRIMARY KEY,
            title VARCHAR(200) NOT NULL,
            description TEXT NOT NULL,
            assignee_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            priority VARCHAR(10) NOT NULL CHECK (priority IN ('LOW', 'MEDIUM', 'HIGH')),
            tag VARCHAR(15) NOT NULL CHECK (tag IN ('BUG', 'TASK', 'ENHANCEMENT')),
            status VARCHAR(10) NOT NULL CHECK (status IN ('TODO', 'ONGOING', 'DONE')),
            project_id BIGINT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
            created_time TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
            author_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE
        );
    `)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
        CREATE INDEX IF NOT EXISTS idx_issues_project ON issues(project_id);
    `)
	return err
}

func mig_20250901101500_issues_down(tx *sqlx.Tx) error {
	_, err := tx.Exec(`DROP TABLE IF EXISTS issues;`)
	return err
}
