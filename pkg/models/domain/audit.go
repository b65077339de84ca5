package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReportLogEntry records that a report was generated, by whom, and with
// what parameters. Append-only; never mutated after creation.
type ReportLogEntry struct {
	ID          uuid.UUID
	Kind        ReportKind
	Format      ExportFormat
	UserID      *string
	Parameters  ReportParams
	GeneratedAt time.Time
}
