package sqlite

import "database/sql"

// schema mirrors the entity definitions in internal/models.
// It runs on startup to ensure tables exist. users must be created before
// todos because of the foreign key. SQLite ignores VARCHAR lengths, so the
// limits are enforced with CHECK constraints.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username VARCHAR(80) NOT NULL UNIQUE CHECK (length(username) <= 80),
    password VARCHAR(200) NOT NULL CHECK (length(password) <= 200)
);

CREATE TABLE IF NOT EXISTS todos (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title VARCHAR(200) NOT NULL CHECK (length(title) <= 200),
    details VARCHAR(500) CHECK (details IS NULL OR length(details) <= 500),
    completed BOOLEAN NOT NULL DEFAULT 0,
    user_id INTEGER NOT NULL,
    FOREIGN KEY (user_id) REFERENCES users(id)
);

CREATE INDEX IF NOT EXISTS idx_todos_user_id ON todos(user_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
