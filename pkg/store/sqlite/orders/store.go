package orders

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/de-tools/commerce-reports/pkg/models/store"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type Store interface {
	GetOrders(ctx context.Context, start, end time.Time) ([]store.OrderRecord, error)
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

func (s *defaultStore) GetOrders(ctx context.Context, start, end time.Time) ([]store.OrderRecord, error) {
	logger := zerolog.Ctx(ctx)
	query := `
		SELECT id, placed_at, total
		FROM orders
		WHERE placed_at BETWEEN ? AND ?
		ORDER BY placed_at ASC`

	rows, err := s.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("orders query failed: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close orders query rows")
		}
	}(rows)

	var records []store.OrderRecord
	for rows.Next() {
		var (
			id       string
			placedAt time.Time
			total    string
		)
		if err := rows.Scan(&id, &placedAt, &total); err != nil {
			return nil, err
		}

		amount, err := decimal.NewFromString(total)
		if err != nil {
			return nil, fmt.Errorf("order %s has malformed total %q: %w", id, total, err)
		}

		records = append(records, store.OrderRecord{
			ID:       id,
			PlacedAt: placedAt,
			Total:    amount,
		})
	}

	return records, rows.Err()
}
