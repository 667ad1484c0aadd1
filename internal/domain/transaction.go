package domain

import (
	"time"
)

// Transaction types recognized by the summary aggregation. The set is open:
// the store accepts any label, but only these two contribute to totals.
const (
	TypeIncome  = "Income"
	TypeExpense = "Expense"
)

// Transaction is a persisted transaction record. The store owns the id and
// the timestamps; everything else comes from the normalized upload row.
type Transaction struct {
	ID              string    `json:"id"`
	Date            time.Time `json:"date"`             // date-only precision, parsed from "YYYY-MM-DD"
	Description     string    `json:"description"`      // verbatim from the upload, may be empty
	Amount          float64   `json:"amount"`           // signed; 0.0 when the source cell was unparseable
	TransactionType string    `json:"transaction_type"` // "Income", "Expense", or any other label as uploaded

	// Reserved for automated classification; never populated by the
	// ingestion pipeline.
	Category           *string `json:"category"`
	IsBusiness         bool    `json:"is_business"`
	BusinessPercentage float64 `json:"business_percentage"` // 0.0 to 1.0

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"` // nil until the record is first updated

	UserID *string `json:"user_id"` // reserved for multi-user support
}

// Draft carries a transaction's fields before the store assigns an id and
// timestamps.
type Draft struct {
	Date            time.Time
	Description     string
	Amount          float64
	TransactionType string

	Category           *string
	IsBusiness         bool
	BusinessPercentage float64

	// DateDefaulted marks a row whose Date cell was absent or unparseable
	// and was replaced with the processing time. It is logged during
	// ingestion so defaulted dates stay visible; it is not persisted.
	DateDefaulted bool
}
