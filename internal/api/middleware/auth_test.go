package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/marketsquare/storefront-api/internal/core/domain"
)

type stubUsers struct {
	users map[int64]*domain.User
}

func (r *stubUsers) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.users[user.ID] = user
	return user, nil
}

func (r *stubUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUsers) FindByID(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUsers) FindAll(_ context.Context) ([]*domain.User, error) { return nil, nil }

func (r *stubUsers) SetRefreshToken(_ context.Context, _ int64, _ *string) error { return nil }

type stubBlacklist struct {
	revoked map[string]bool
}

func (b *stubBlacklist) Add(_ context.Context, token string, _ time.Duration) error {
	b.revoked[token] = true
	return nil
}

func (b *stubBlacklist) IsBlacklisted(_ context.Context, token string) (bool, error) {
	return b.revoked[token], nil
}

const testSecret = "secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func newFixture() (*stubUsers, *stubBlacklist, echo.MiddlewareFunc) {
	users := &stubUsers{users: map[int64]*domain.User{
		1: {ID: 1, Email: "alice@example.com", Role: domain.RoleAdmin},
	}}
	blacklist := &stubBlacklist{revoked: make(map[string]bool)}
	return users, blacklist, Auth(testSecret, users, blacklist)
}

func invoke(t *testing.T, mw echo.MiddlewareFunc, authHeader string, next echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if next == nil {
		next = func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	}
	if err := mw(next)(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func rejectionMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body.Message
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	_, _, mw := newFixture()
	token := signToken(t, testSecret, jwt.MapClaims{
		"id": int64(1), "role": "ADMIN", "exp": time.Now().Add(time.Hour).Unix(),
	})

	called := false
	rec := invoke(t, mw, "Bearer "+token, func(c echo.Context) error {
		called = true
		id, ok := c.Get("identity").(domain.Identity)
		if !ok || id.UserID != 1 || id.Role != domain.RoleAdmin {
			t.Fatalf("identity not set: %+v", c.Get("identity"))
		}
		if c.Get("auth_token") != token {
			t.Fatalf("raw token not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	_, _, mw := newFixture()

	rec := invoke(t, mw, "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_RevokedToken(t *testing.T) {
	_, blacklist, mw := newFixture()
	token := signToken(t, testSecret, jwt.MapClaims{
		"id": int64(1), "role": "ADMIN", "exp": time.Now().Add(time.Hour).Unix(),
	})
	blacklist.revoked[token] = true

	rec := invoke(t, mw, "Bearer "+token, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if msg := rejectionMessage(t, rec); msg != "Token has been revoked" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	_, _, mw := newFixture()
	token := signToken(t, testSecret, jwt.MapClaims{
		"id": int64(1), "role": "ADMIN", "exp": time.Now().Add(-time.Minute).Unix(),
	})

	rec := invoke(t, mw, "Bearer "+token, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if msg := rejectionMessage(t, rec); msg != "Token expired" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestAuthMiddleware_WrongSignature(t *testing.T) {
	_, _, mw := newFixture()
	token := signToken(t, "other-secret", jwt.MapClaims{
		"id": int64(1), "role": "ADMIN", "exp": time.Now().Add(time.Hour).Unix(),
	})

	rec := invoke(t, mw, "Bearer "+token, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if msg := rejectionMessage(t, rec); msg != "Invalid token" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestAuthMiddleware_UnknownUser(t *testing.T) {
	_, _, mw := newFixture()
	token := signToken(t, testSecret, jwt.MapClaims{
		"id": int64(99), "role": "ADMIN", "exp": time.Now().Add(time.Hour).Unix(),
	})

	rec := invoke(t, mw, "Bearer "+token, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if msg := rejectionMessage(t, rec); msg != "User not found" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestOptionalAuth_AnonymousPassesThrough(t *testing.T) {
	users := &stubUsers{users: map[int64]*domain.User{}}
	blacklist := &stubBlacklist{revoked: make(map[string]bool)}
	mw := OptionalAuth(testSecret, users, blacklist)

	rec := invoke(t, mw, "", func(c echo.Context) error {
		if c.Get("identity") != nil {
			t.Fatalf("identity should be unset for anonymous caller")
		}
		return c.NoContent(http.StatusOK)
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestOptionalAuth_BadTokenPassesThrough(t *testing.T) {
	users := &stubUsers{users: map[int64]*domain.User{}}
	blacklist := &stubBlacklist{revoked: make(map[string]bool)}
	mw := OptionalAuth(testSecret, users, blacklist)

	rec := invoke(t, mw, "Bearer garbage", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for anonymous fallback, got %d", rec.Code)
	}
}
