package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/de-tools/commerce-reports/pkg/models/domain"
	auditsvc "github.com/de-tools/commerce-reports/pkg/services/audit"
)

type defaultStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (auditsvc.Logger, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &defaultStore{db: db}, nil
}

func (s *defaultStore) Record(ctx context.Context, entry domain.ReportLogEntry) error {
	params, err := json.Marshal(entry.Parameters)
	if err != nil {
		return fmt.Errorf("marshal parameters: %w", err)
	}

	query := `
		INSERT INTO report_log (id, report_type, format, user_id, parameters, generated_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err = s.db.ExecContext(ctx, query,
		entry.ID.String(),
		string(entry.Kind),
		string(entry.Format),
		entry.UserID,
		string(params),
		entry.GeneratedAt,
	)
	if err != nil {
		return fmt.Errorf("insert report log entry: %w", err)
	}

	return nil
}
