package prescription

import "time"

// Prescription is the persisted entity. Immutable after intake except
// for deletion, and owned by exactly one user.
type Prescription struct {
	ID        string
	UserID    string
	Name      string
	Dosage    string
	Frequency string
	Quantity  int
	Days      int
	Refills   int
	LastTaken time.Time
	Analysis  string
	CreatedAt time.Time
}
