package prescription

import "context"

// Repository defines the store contract.
// Service depends ONLY on this interface.
type Repository interface {
	FindByUser(ctx context.Context, userID string) ([]Prescription, error)
	Insert(ctx context.Context, p *Prescription) (string, error)
	// DeleteByID removes the record only when it belongs to userID.
	// Returns false when nothing matched.
	DeleteByID(ctx context.Context, id, userID string) (bool, error)
}
