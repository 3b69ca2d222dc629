package migrations

import "github.com/jmoiron/sqlx"

func init() {
	m.addMigration(&migration{
		version: "20250901101000",
		up:      mig_20250901101000_contributors_up,
		down:    mig_20250901101000_contributors_down,
	})
}

// No uniqueness on (user_id, project_id): duplicate contributor rows are
// tolerated and removal deletes every row for the pair.
func mig_20250901101000_contributors_up(tx *sqlx.Tx) error {
	_, err := tx.Exec(`
        CREATE TABLE IF NOT EXISTS contributors (
            id BIGSERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            project_id BIGINT NOT NULL REFERENCES projects(id) ON DELETE CASCADE
        );
    `)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
        CREATE INDEX IF NOT EXISTS idx_contributors_project ON contributors(project_id);
    `)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
        CREATE INDEX IF NOT EXISTS idx_contributors_user ON contributors(user_id);
    `)
	return err
}

func mig_20250901101000_contributors_down(tx *sqlx.Tx) error {
	_, err := tx.Exec(`DROP TABLE IF EXISTS contributors;`)
	return err
}
