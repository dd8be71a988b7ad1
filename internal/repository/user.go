package repository

import (
	"context"

	"github.com/ErlanBelekov/vehicle-api/internal/domain"
)

// UserRepository is the credential store. Email uniqueness is enforced by
// the storage layer; Create returns domain.ErrEmailTaken on a duplicate.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
