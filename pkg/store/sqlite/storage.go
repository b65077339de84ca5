package sqlite

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const ordersSchema = `
	CREATE TABLE IF NOT EXISTS orders (
		id TEXT PRIMARY KEY,
		customer_id TEXT NOT NULL,
		total TEXT NOT NULL,
		placed_at TIMESTAMP NOT NULL
	);
`

const activitySchema = `
	CREATE TABLE IF NOT EXISTS customer_activity (
		customer_id TEXT NOT NULL,
		occurred_at TIMESTAMP NOT NULL
	);
`

const reportLogSchema = `
	CREATE TABLE IF NOT EXISTS report_log (
		id TEXT PRIMARY KEY,
		report_type TEXT NOT NULL,
		format TEXT NOT NULL,
		user_id TEXT NULL,
		parameters TEXT NOT NULL,
		generated_at TIMESTAMP NOT NULL
	);
`

var bootQueries = []string{
	ordersSchema,
	activitySchema,
	reportLogSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", settings.DbPath)
	if err != nil {
		return nil, err
	}

	for _, query := range bootQueries {
		if _, err := db.Exec(query); err != nil {
			return nil, fmt.Errorf("bootstrap schema: %w", err)
		}
	}

	return db, nil
}
