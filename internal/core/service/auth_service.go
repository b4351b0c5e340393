package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/storyweave/story-platform/internal/core/domain"
	"github.com/storyweave/story-platform/internal/core/ports"
)

const bearerPrefix = "Bearer "

// AuthService implements registration, login, and principal resolution.
type AuthService struct {
	users    ports.UserRepository
	tokens   ports.TokenService
	throttle ports.LoginThrottle
	log      zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenService, throttle ports.LoginThrottle, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, throttle: throttle, log: log}
}

// Register creates an account. The plaintext password never leaves this
// function: only the bcrypt hash is handed to the repository.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if _, err := s.users.FindByUsername(ctx, input.Username); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		DisplayName:  input.DisplayName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", created.Username).Msg("user registered")
	return created, nil
}

// Login verifies credentials and issues a token for the identifier as given.
// An unknown identifier and a wrong password produce the same outcome so the
// endpoint cannot be used to enumerate usernames.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (string, *domain.User, error) {
	if identifier == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		allowed, err := s.throttle.Allow(ctx, identifier)
		if err != nil {
			s.log.Warn().Err(err).Msg("login throttle unavailable, allowing attempt")
		} else if !allowed {
			return "", nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.lookupIdentifier(ctx, identifier)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return "", nil, err
	}

	// A missing record and a mismatching password must be indistinguishable
	// to the caller.
	if user == nil || !verifyPassword(password, user.PasswordHash) {
		if s.throttle != nil {
			if err := s.throttle.RecordFailure(ctx, identifier); err != nil {
				s.log.Warn().Err(err).Msg("failed to record login failure")
			}
		}
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(identifier)
	if err != nil {
		return "", nil, err
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, identifier); err != nil {
			s.log.Warn().Err(err).Msg("failed to reset login throttle")
		}
	}

	s.log.Info().Str("username", user.Username).Msg("login succeeded")
	return token, user, nil
}

// ResolveSubject maps a verified token subject to an account. Tokens carry
// whatever string the client logged in with, so the subject may be a
// username or an email; username wins when both exist.
func (s *AuthService) ResolveSubject(ctx context.Context, subject string) (*domain.User, error) {
	return s.lookupIdentifier(ctx, subject)
}

// ResolveFromHeader resolves the principal for a raw Authorization header.
// Every failure edge (missing header, wrong scheme, invalid token, unknown
// subject) collapses into domain.ErrInvalidToken: fail closed, no oracle.
func (s *AuthService) ResolveFromHeader(ctx context.Context, authHeader string) (*domain.User, error) {
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return nil, domain.ErrInvalidToken
	}

	token := strings.TrimPrefix(authHeader, bearerPrefix)
	subject := s.tokens.ExtractSubject(token)
	if subject == "" {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.lookupIdentifier(ctx, subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) lookupIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	user, err := s.users.FindByUsername(ctx, identifier)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	return s.users.FindByEmail(ctx, identifier)
}

// verifyPassword treats a malformed stored hash as a plain mismatch.
func verifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
