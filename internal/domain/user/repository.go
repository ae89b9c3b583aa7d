package user

import "context"

// UserRepository defines data access methods for users.
type UserRepository interface {
	// GetByEmail retrieves a user by email address, used for login
	GetByEmail(ctx context.Context, email string) (User, error)

	// GetByID retrieves a user by id with company isolation
	GetByID(ctx context.Context, id string, companyID string) (User, error)
}
