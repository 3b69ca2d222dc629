package migrations

import "github.com/jmoiron/sqlx"

func init() {
	m.addMigration(&migration{
		version: "20250901102000",
		up:      mig_20250901102000_comments_up,
		down:    mig_20250901102000_comments_down,
	})
}

func mig_20250901102000_comments_up(tx *sqlx.Tx) error {
	_, err := tx.Exec(`
        CREATE TABLE IF NOT EXISTS comments (
            id BIGSERIAL PRIMARY KEY,
            description TEXT NOT NULL,
            author_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            issue_id BIGINT NOT NULL REFERENCES issues(id) ON DELETE CASCADE,
            created_time TIMESTAMP WITH TIME ZONE DEFAULT NOW()
        );
    `)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
        CREATE INDEX IF NOT EXISTS idx_comments_issue ON comments(issue_id);
    `)
	return err
}

func mig_20250901102000_comments_down(tx *sqlx.Tx) error {
	_, err := tx.Exec(`DROP TABLE IF EXISTS comments;`)
	return err
}
