package prescription

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type InMemoryRepository struct {
	mu      sync.Mutex
	records []Prescription
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (r *InMemoryRepository) FindByUser(ctx context.Context, userID string) ([]Prescription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Insertion order is creation order; newest first.
	var result []Prescription
	for i := len(r.records) - 1; i >= 0; i-- {
		if r.records[i].UserID == userID {
			result = append(result, r.records[i])
		}
	}
	return result, nil
}

func (r *InMemoryRepository) Insert(ctx context.Context, p *Prescription) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	r.records = append(r.records, *p)
	return p.ID, nil
}

func (r *InMemoryRepository) DeleteByID(ctx context.Context, id, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.records {
		if p.ID == id && p.UserID == userID {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// Count is a test helper.
func (r *InMemoryRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}
