package activity

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/de-tools/commerce-reports/pkg/models/store"
	"github.com/rs/zerolog"
)

type Store interface {
	GetActivity(ctx context.Context, start, end time.Time) ([]store.ActivityRecord, error)
}

type defaultStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &defaultStore{db: db}, nil
}

func (s *defaultStore) GetActivity(ctx context.Context, start, end time.Time) ([]store.ActivityRecord, error) {
	logger := zerolog.Ctx(ctx)
	query := `
		SELECT customer_id, occurred_at
		FROM customer_activity
		WHERE occurred_at BETWEEN ? AND ?
		ORDER BY occurred_at ASC`

	rows, err := s.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("activity query failed: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close activity query rows")
		}
	}(rows)

	var records []store.ActivityRecord
	for rows.Next() {
		var rec store.ActivityRecord
		if err := rows.Scan(&rec.CustomerID, &rec.OccurredAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
