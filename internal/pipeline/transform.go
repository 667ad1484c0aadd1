package pipeline

import (
	"strconv"
	"strings"
	"time"

	"github.com/tsethi/paysplit/internal/domain"
)

// Expected upload columns, matched case-sensitively. Any other columns in
// the file are ignored by the persistence path.
const (
	colDate        = "Date"
	colDescription = "Description"
	colAmount      = "Amount"
	colType        = "Type"
)

const dateLayout = "2006-01-02"

// timeNow is swapped out in tests.
var timeNow = time.Now

// NormalizeRow maps a decoded row into a transaction draft.
//
// Every malformed or missing cell degrades to a default rather than failing
// the row: a bad upload cell never loses the rest of the file. Date falls
// back to the processing time with DateDefaulted set so the caller can log
// it; Description falls back to empty text, Amount to 0.0, Type to
// "Expense". The classification fields (Category, IsBusiness,
// BusinessPercentage) always start at their zero defaults and are never
// derived from the row.
func NormalizeRow(row Row) domain.Draft {
	draft := domain.Draft{
		TransactionType: domain.TypeExpense,
	}

	if raw, ok := row.Lookup(colDate); ok {
		if date, err := time.Parse(dateLayout, strings.TrimSpace(raw)); err == nil {
			draft.Date = date
		} else {
			draft.DateDefaulted = true
		}
	} else {
		draft.DateDefaulted = true
	}
	if draft.DateDefaulted {
		draft.Date = timeNow()
	}

	if raw, ok := row.Lookup(colDescription); ok {
		draft.Description = raw // verbatim: no trimming, no length cap
	}

	if raw, ok := row.Lookup(colAmount); ok {
		if amount, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			draft.Amount = amount
		}
	}

	if raw, ok := row.Lookup(colType); ok {
		// Verbatim, including labels outside {Income, Expense}. The
		// type set is open; unexpected labels are persisted as-is and
		// excluded from summary totals.
		draft.TransactionType = raw
	}

	return draft
}
