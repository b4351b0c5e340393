package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/storyweave/story-platform/internal/core/domain"
	"github.com/storyweave/story-platform/internal/core/ports"
)

// stubAuthService resolves a fixed principal for one accepted header value
// and rejects everything else.
type stubAuthService struct {
	acceptHeader string
	principal    *domain.User
}

func (s *stubAuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	return nil, domain.ErrUserExists
}

func (s *stubAuthService) Login(ctx context.Context, identifier, password string) (string, *domain.User, error) {
	return "", nil, domain.ErrInvalidCredentials
}

func (s *stubAuthService) ResolveSubject(ctx context.Context, subject string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubAuthService) ResolveFromHeader(ctx context.Context, authHeader string) (*domain.User, error) {
	if authHeader == s.acceptHeader {
		return s.principal, nil
	}
	return nil, domain.ErrInvalidToken
}

func TestAuthenticate_ValidToken(t *testing.T) {
	e := echo.New()
	alice := &domain.User{ID: "u1", Username: "alice", Email: "alice@example.com"}
	auth := &stubAuthService{acceptHeader: "Bearer good-token", principal: alice}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Authenticate(auth)(func(c echo.Context) error {
		called = true
		got := Principal(c)
		if got == nil {
			t.Fatalf("principal not set")
		}
		if got.Username != "alice" {
			t.Fatalf("expected alice, got %q", got.Username)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAuthenticate_MissingHeaderIsAnonymous(t *testing.T) {
	e := echo.New()
	auth := &stubAuthService{acceptHeader: "Bearer good-token"}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Authenticate(auth)(func(c echo.Context) error {
		called = true
		if Principal(c) != nil {
			t.Fatalf("anonymous request must carry no principal")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called: anonymous requests must pass through")
	}
}

func TestAuthenticate_InvalidTokenIsAnonymous(t *testing.T) {
	e := echo.New()
	auth := &stubAuthService{acceptHeader: "Bearer good-token"}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer forged-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Authenticate(auth)(func(c echo.Context) error {
		called = true
		if Principal(c) != nil {
			t.Fatalf("invalid token must not resolve a principal")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called: invalid tokens degrade to anonymous")
	}
}

func TestRequireAuth_RejectsAnonymous(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequireAuth()(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	if err == nil {
		t.Fatalf("expected error for anonymous request")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", httpErr.Code)
	}
}

func TestRequireAuth_PassesAuthenticated(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(principalKey, &domain.User{ID: "u1", Username: "alice"})

	called := false
	handler := RequireAuth()(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}
