package userRepo

import (
	"context"

	"kingscogent/models"
)

// UserRepository defines read access to user records. The webhook receiver
// never creates or deletes users.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID. Returns (nil, nil) when no
	// user exists with that ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// FindByEmail retrieves the first user whose email matches exactly.
	// Returns (nil, nil) when no user matches.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}
