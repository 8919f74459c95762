package db

import (
	"database/sql"

	_ "github.com/lib/pq"
)

// Open connects to Postgres and makes sure the schema exists.
// The events collection lives in Mongo; only accounts and the
// drop-off ledger are relational.
func Open(dsn string) (*sql.DB, error) {
	sqldb, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := sqldb.Ping(); err != nil {
		return nil, err
	}
	sqldb.SetMaxOpenConns(20)
	sqldb.SetMaxIdleConns(10)

	if err := createTables(sqldb); err != nil {
		return nil, err
	}
	return sqldb, nil
}

func createTables(sqldb *sql.DB) error {
	createUsersTable := `
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		rewards BIGINT NOT NULL DEFAULT 0,
		is_admin BOOLEAN NOT NULL DEFAULT FALSE
	);`
	if _, err := sqldb.Exec(createUsersTable); err != nil {
		return err
	}

	// event_id is a UUID issued by the Mongo-backed event registry.
	createDropOffsTable := `
	CREATE TABLE IF NOT EXISTS dropoffs (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id),
		event_id UUID NOT NULL,
		electronics TEXT[] NOT NULL DEFAULT '{}',
		items TEXT NOT NULL DEFAULT '',
		rewards BIGINT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`
	if _, err := sqldb.Exec(createDropOffsTable); err != nil {
		return err
	}
	return nil
}
