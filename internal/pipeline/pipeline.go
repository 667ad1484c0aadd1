package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tsethi/paysplit/internal/domain"
	"github.com/tsethi/paysplit/internal/store"
)

// Ingestor runs the upload pipeline: decode bytes into rows, normalize each
// row into a draft, and insert drafts one at a time.
type Ingestor struct {
	repo store.Repository
	log  zerolog.Logger
}

// NewIngestor creates an ingestor backed by the given repository.
func NewIngestor(repo store.Repository, log zerolog.Logger) *Ingestor {
	return &Ingestor{
		repo: repo,
		log:  log,
	}
}

// Ingest processes one uploaded file and returns the persisted records in
// file order.
//
// Inserts are committed per row, not as one upload-wide transaction: a store
// failure part way through leaves the earlier rows persisted and aborts the
// rest. Decode failures return an error wrapping ErrDecode before anything
// is written.
func (in *Ingestor) Ingest(ctx context.Context, content []byte) ([]*domain.Transaction, error) {
	rows, err := ParseCSV(content)
	if err != nil {
		return nil, fmt.Errorf("Ingest: %w", err)
	}

	records := make([]*domain.Transaction, 0, len(rows))
	for i, row := range rows {
		draft := NormalizeRow(row)
		if draft.DateDefaulted {
			in.log.Warn().
				Int("row", i+1).
				Str("description", draft.Description).
				Msg("Date cell missing or unparseable, defaulted to processing time")
		}

		record, err := in.repo.Create(ctx, draft)
		if err != nil {
			return nil, fmt.Errorf("Ingest: inserting row %d: %w", i+1, err)
		}
		records = append(records, record)
	}

	in.log.Info().Int("count", len(records)).Msg("Upload ingested")
	return records, nil
}
