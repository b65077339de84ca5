package store

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderRecord is a raw order row as read from storage.
type OrderRecord struct {
	ID       string
	PlacedAt time.Time
	Total    decimal.Decimal
}

// ActivityRecord is a raw customer activity row as read from storage.
type ActivityRecord struct {
	CustomerID string
	OccurredAt time.Time
}
