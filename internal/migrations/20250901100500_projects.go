package migrations

import "github.com/jmoiron/sqlx"

func init() {
	m.addMigration(&migration{
		version: "20250901100500",
		up:      mig_20250901100500_projects_up,
		down:    mig_20250901100500_projects_down,
	})
}

func mig_20250901100500_projects_up(tx *sqlx.Tx) error {
	_, err := tx.Exec(`
        CREATE TABLE IF NOT EXISTS projects (
            id BIGSERIAL PRIMARY KEY,
            title VARCHAR(200) NOT NULL,
            description TEXT NOT NULL,
            type VARCHAR(200) NOT NULL,
            author_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            created_time TIMESTAMP WITH TIME ZONE DEFAULT NOW()
        );
    `)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
        CREATE INDEX IF NOT EXISTS idx_projects_author ON projects(author_id);
    `)
	return err
}

func mig_20250901100500_projects_down(tx *sqlx.Tx) error {
	_, err := tx.Exec(`DROP TABLE IF EXISTS projects;`)
	return err
}
