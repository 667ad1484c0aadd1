package inmemory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsethi/paysplit/internal/domain"
	"github.com/tsethi/paysplit/internal/store"
)

func draft(description string, amount float64, transactionType string) domain.Draft {
	return domain.Draft{
		Date:            time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
		Description:     description,
		Amount:          amount,
		TransactionType: transactionType,
	}
}

func TestCreateAndGetByID(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, err := s.Create(ctx, draft("Uber Ride", 25.50, domain.TypeIncome))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Nil(t, created.UpdatedAt)
	assert.Nil(t, created.Category)

	got, err := s.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestCreateAssignsUniqueIDs(t *testing.T) {
	s := New()
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		created, err := s.Create(ctx, draft("tx", 1, domain.TypeExpense))
		require.NoError(t, err)
		assert.False(t, seen[created.ID], "duplicate id %s", created.ID)
		seen[created.ID] = true
	}
}

func TestGetByID_Missing(t *testing.T) {
	s := New()

	_, err := s.GetByID(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGetAll_InsertionOrderAndLimit(t *testing.T) {
	s := New()
	ctx := context.Background()

	names := []string{"first", "second", "third"}
	for _, name := range names {
		_, err := s.Create(ctx, draft(name, 1, domain.TypeExpense))
		require.NoError(t, err)
	}

	all, err := s.GetAll(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, name := range names {
		assert.Equal(t, name, all[i].Description)
	}

	limited, err := s.GetAll(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "first", limited[0].Description)
	assert.Equal(t, "second", limited[1].Description)
}

func TestGetByType(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.Create(ctx, draft("salary", 1000, domain.TypeIncome))
	require.NoError(t, err)
	_, err = s.Create(ctx, draft("rent", 800, domain.TypeExpense))
	require.NoError(t, err)
	_, err = s.Create(ctx, draft("bonus", 200, domain.TypeIncome))
	require.NoError(t, err)

	income, err := s.GetByType(ctx, domain.TypeIncome)
	require.NoError(t, err)
	require.Len(t, income, 2)
	assert.Equal(t, "salary", income[0].Description)
	assert.Equal(t, "bonus", income[1].Description)

	none, err := s.GetByType(ctx, "Transfer")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDelete(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, err := s.Create(ctx, draft("to delete", 5, domain.TypeExpense))
	require.NoError(t, err)

	deleted, err := s.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = s.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Deleting again reports false, not an error.
	deleted, err = s.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestStoredRecordsAreImmutableFromOutside(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, err := s.Create(ctx, draft("original", 1, domain.TypeExpense))
	require.NoError(t, err)

	created.Description = "mutated"

	got, err := s.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", got.Description)
}
