package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tsethi/paysplit/internal/domain"
	"github.com/tsethi/paysplit/internal/store"
)

// Store is the Postgres implementation of store.Repository, backed by a
// pgx connection pool. The pool is passed in explicitly; the store never
// holds process-global connection state.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Postgres transaction store on the given pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const transactionColumns = `id, date, description, amount, transaction_type,
	category, is_business, business_percentage, created_at, updated_at, user_id`

// pgTime truncates a timestamp to the microsecond precision TIMESTAMPTZ
// stores, so the record returned by Create equals what a later read scans
// back.
func pgTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// Create implements store.Repository. Identity is a fresh UUID assigned
// here; the seq column defaults from its sequence and fixes the insertion
// order that GetAll reads back.
func (s *Store) Create(ctx context.Context, draft domain.Draft) (*domain.Transaction, error) {
	record := &domain.Transaction{
		ID:                 uuid.New().String(),
		Date:               pgTime(draft.Date),
		Description:        draft.Description,
		Amount:             draft.Amount,
		TransactionType:    draft.TransactionType,
		Category:           draft.Category,
		IsBusiness:         draft.IsBusiness,
		BusinessPercentage: draft.BusinessPercentage,
		CreatedAt:          pgTime(time.Now()),
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO transactions
			(id, date, description, amount, transaction_type,
			 category, is_business, business_percentage, created_at, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		record.ID,
		record.Date,
		record.Description,
		record.Amount,
		record.TransactionType,
		record.Category,
		record.IsBusiness,
		record.BusinessPercentage,
		record.CreatedAt,
		record.UserID,
	)
	if err != nil {
		return nil, fmt.Errorf("Create: inserting transaction: %w", err)
	}

	return record, nil
}

// GetAll implements store.Repository. Records come back in insertion order
// (seq); limit <= 0 means no cap.
func (s *Store) GetAll(ctx context.Context, limit int) ([]*domain.Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM transactions ORDER BY seq`, transactionColumns)

	var (
		rows pgx.Rows
		err  error
	)
	if limit > 0 {
		rows, err = s.pool.Query(ctx, query+` LIMIT $1`, limit)
	} else {
		rows, err = s.pool.Query(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("GetAll: querying transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// GetByID implements store.Repository.
func (s *Store) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE id = $1`, transactionColumns)

	record, err := scanTransaction(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("GetByID: querying transaction: %w", err)
	}
	return record, nil
}

// GetByType implements store.Repository.
func (s *Store) GetByType(ctx context.Context, transactionType string) ([]*domain.Transaction, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM transactions WHERE transaction_type = $1 ORDER BY seq`,
		transactionColumns,
	)

	rows, err := s.pool.Query(ctx, query, transactionType)
	if err != nil {
		return nil, fmt.Errorf("GetByType: querying transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// Delete implements store.Repository.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("Delete: deleting transaction: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var t domain.Transaction
	err := row.Scan(
		&t.ID,
		&t.Date,
		&t.Description,
		&t.Amount,
		&t.TransactionType,
		&t.Category,
		&t.IsBusiness,
		&t.BusinessPercentage,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.UserID,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func scanTransactions(rows pgx.Rows) ([]*domain.Transaction, error) {
	var result []*domain.Transaction
	for rows.Next() {
		record, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction row: %w", err)
		}
		result = append(result, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}
	return result, nil
}

// Ensure Store implements the Repository interface.
var _ store.Repository = (*Store)(nil)
