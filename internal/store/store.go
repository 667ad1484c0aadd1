package store

import (
	"context"
	"errors"

	"github.com/tsethi/paysplit/internal/domain"
)

// DefaultLimit is the list page size used when the caller does not supply
// one.
const DefaultLimit = 100

// ErrNotFound is returned by GetByID when no record has the given id. A
// lookup miss is not a store failure; callers translate it into a not-found
// response.
var ErrNotFound = errors.New("transaction not found")

// Repository persists transaction records. The repository exclusively owns
// record identity and timestamp assignment; drafts never carry an id.
//
// Any error other than ErrNotFound is a persistence failure and is
// propagated unmodified - the repository does not retry.
type Repository interface {
	// Create assigns a new unique id, stamps CreatedAt, inserts the
	// record, and returns it. The record is durable before Create
	// returns.
	Create(ctx context.Context, draft domain.Draft) (*domain.Transaction, error)

	// GetAll returns up to limit records in insertion order. A limit of
	// zero or less means no cap.
	GetAll(ctx context.Context, limit int) ([]*domain.Transaction, error)

	// GetByID returns the record with the given id, or ErrNotFound.
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)

	// GetByType returns records whose transaction type matches exactly,
	// in insertion order.
	GetByType(ctx context.Context, transactionType string) ([]*domain.Transaction, error)

	// Delete removes a record. It reports false, nil when no record had
	// the given id.
	Delete(ctx context.Context, id string) (bool, error)
}
