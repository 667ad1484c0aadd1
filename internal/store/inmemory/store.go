package inmemory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tsethi/paysplit/internal/domain"
	"github.com/tsethi/paysplit/internal/store"
)

// Store is an in-memory implementation of store.Repository. It keeps
// records in insertion order and is safe for concurrent use. Data is lost on
// restart - it backs tests and local runs without a database.
type Store struct {
	mu      sync.RWMutex
	order   []string
	records map[string]*domain.Transaction
}

// New creates an empty in-memory transaction store.
func New() *Store {
	return &Store{
		records: make(map[string]*domain.Transaction),
	}
}

// Create implements store.Repository. The id is a fresh UUID and CreatedAt
// is the insertion time.
func (s *Store) Create(ctx context.Context, draft domain.Draft) (*domain.Transaction, error) {
	record := &domain.Transaction{
		ID:                 uuid.New().String(),
		Date:               draft.Date,
		Description:        draft.Description,
		Amount:             draft.Amount,
		TransactionType:    draft.TransactionType,
		Category:           draft.Category,
		IsBusiness:         draft.IsBusiness,
		BusinessPercentage: draft.BusinessPercentage,
		CreatedAt:          time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.order = append(s.order, record.ID)
	s.records[record.ID] = record

	// Return a copy to keep the stored record immutable from outside.
	recordCopy := *record
	return &recordCopy, nil
}

// GetAll implements store.Repository. Records come back in insertion order;
// limit <= 0 means no cap.
func (s *Store) GetAll(ctx context.Context, limit int) ([]*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Transaction, 0, len(s.order))
	for _, id := range s.order {
		if limit > 0 && len(result) >= limit {
			break
		}
		recordCopy := *s.records[id]
		result = append(result, &recordCopy)
	}
	return result, nil
}

// GetByID implements store.Repository.
func (s *Store) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, exists := s.records[id]
	if !exists {
		return nil, store.ErrNotFound
	}

	recordCopy := *record
	return &recordCopy, nil
}

// GetByType implements store.Repository.
func (s *Store) GetByType(ctx context.Context, transactionType string) ([]*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Transaction
	for _, id := range s.order {
		record := s.records[id]
		if record.TransactionType != transactionType {
			continue
		}
		recordCopy := *record
		result = append(result, &recordCopy)
	}
	return result, nil
}

// Delete implements store.Repository.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[id]; !exists {
		return false, nil
	}

	delete(s.records, id)
	for i, orderedID := range s.order {
		if orderedID == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true, nil
}

// Ensure Store implements the Repository interface.
var _ store.Repository = (*Store)(nil)
