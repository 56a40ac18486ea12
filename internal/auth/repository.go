package auth

// UserRepository defines the data-access contract.
// Service depends ONLY on this interface.
type UserRepository interface {
	Save(user *User) error
	ExistsByEmail(email string) (bool, error)
	FindByEmail(email string) (*User, error)
	// UpdateMedicalHistory replaces the user's medical history.
	// Returns false when no user matches the email.
	UpdateMedicalHistory(email string, history []string) (bool, error)
}
