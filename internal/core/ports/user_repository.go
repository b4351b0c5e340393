package ports

import (
	"context"

	"github.com/storyweave/story-platform/internal/core/domain"
)

// UserRepository defines persistence for user accounts. Uniqueness of
// username and email is enforced by the backing store.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
