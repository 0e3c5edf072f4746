package database

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		username      TEXT PRIMARY KEY,
		password_hash TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS test_results (
		id            BIGSERIAL PRIMARY KEY,
		username      TEXT NOT NULL,
		test_date     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		subject       TEXT NOT NULL DEFAULT '',
		topic         TEXT NOT NULL DEFAULT '',
		score         INTEGER NOT NULL,
		weak_concepts TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS test_results_username_idx ON test_results (username, test_date)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		username      TEXT PRIMARY KEY,
		password_hash TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS test_results (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		username      TEXT NOT NULL,
		test_date     TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		subject       TEXT NOT NULL DEFAULT '',
		topic         TEXT NOT NULL DEFAULT '',
		score         INTEGER NOT NULL,
		weak_concepts TEXT NOT NULL DEFAULT '',
		FOREIGN KEY (username) REFERENCES users (username)
	)`,
	`CREATE INDEX IF NOT EXISTS test_results_username_idx ON test_results (username, test_date)`,
}
