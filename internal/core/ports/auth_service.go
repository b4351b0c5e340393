package ports

import (
	"context"

	"github.com/storyweave/story-platform/internal/core/domain"
)

// RegisterInput carries the data needed to create an account.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
}

// AuthService implements registration, login, and per-request principal
// resolution.
type AuthService interface {
	// Register creates an account, storing only a salted hash of the
	// password. Returns domain.ErrUserExists when the username is taken.
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login verifies credentials and issues a token. The identifier may be a
	// username or an email. An unknown identifier and a wrong password both
	// yield domain.ErrInvalidCredentials.
	Login(ctx context.Context, identifier, password string) (string, *domain.User, error)
	// ResolveSubject looks up the account a verified token subject refers to,
	// trying username first and falling back to email.
	ResolveSubject(ctx context.Context, subject string) (*domain.User, error)
	// ResolveFromHeader resolves the principal for a raw Authorization header
	// value. A missing or non-Bearer header, an invalid token, and an unknown
	// subject all yield domain.ErrInvalidToken.
	ResolveFromHeader(ctx context.Context, authHeader string) (*domain.User, error)
}

// LoginThrottle limits repeated failed login attempts per identifier.
// Implementations must fail open: throttling is an extra guard, not a
// correctness dependency.
type LoginThrottle interface {
	Allow(ctx context.Context, identifier string) (bool, error)
	RecordFailure(ctx context.Context, identifier string) error
	Reset(ctx context.Context, identifier string) error
}
