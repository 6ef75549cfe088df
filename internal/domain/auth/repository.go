package auth

import (
	"context"

	"petstock/internal/core/id"
)

// Repository defines persistence operations for user accounts.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, userID id.ID) (*User, error)
	Create(ctx context.Context, u *User) error
}
