package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/bankinfo/bank-information-system/internal/core/domain"
	"github.com/bankinfo/bank-information-system/internal/core/service"
)

type stubUserFinder struct {
	users map[string]*domain.User
	calls int
}

func (f *stubUserFinder) FindByID(_ context.Context, id string) (*domain.User, error) {
	f.calls++
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	clone.PasswordHash = ""
	return &clone, nil
}

func newAuthFixture() (*service.TokenService, *stubUserFinder) {
	tokens := service.NewTokenService("secret", time.Hour)
	users := &stubUserFinder{users: map[string]*domain.User{
		"user_1": {ID: "user_1", Username: "alice", Email: "alice@example.com", Role: domain.RoleAdmin},
	}}
	return tokens, users
}

func TestAuthenticate_ValidToken(t *testing.T) {
	tokens, users := newAuthFixture()
	signed, err := tokens.Issue("user_1", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Authenticate(tokens, users)
	handler := mw(func(c echo.Context) error {
		called = true
		identity, ok := IdentityFrom(c)
		if !ok {
			t.Fatalf("identity not set")
		}
		if identity.UserID != "user_1" || identity.Role != domain.RoleAdmin {
			t.Fatalf("unexpected identity: %+v", identity)
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

func TestAuthenticate_MissingHeaderFailsBeforeStorage(t *testing.T) {
	tokens, users := newAuthFixture()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Authenticate(tokens, users)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	assertHTTPError(t, err, http.StatusUnauthorized, "no token")
	if users.calls != 0 {
		t.Fatalf("user store accessed before authentication")
	}
}

func TestAuthenticate_InvalidScheme(t *testing.T) {
	tokens, users := newAuthFixture()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Authenticate(tokens, users)(func(c echo.Context) error { return nil })
	assertHTTPError(t, handler(c), http.StatusUnauthorized, "no token")
}

func TestAuthenticate_ExpiredTokenDistinctMessage(t *testing.T) {
	tokens, users := newAuthFixture()

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   "user_1",
		"role": string(domain.RoleAdmin),
		"exp":  time.Now().Add(-time.Minute).Unix(),
	})
	signed, err := expired.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Authenticate(tokens, users)(func(c echo.Context) error { return nil })
	assertHTTPError(t, handler(c), http.StatusUnauthorized, "token expired")
}

func TestAuthenticate_TamperedToken(t *testing.T) {
	tokens, users := newAuthFixture()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Authenticate(tokens, users)(func(c echo.Context) error { return nil })
	assertHTTPError(t, handler(c), http.StatusUnauthorized, "token failed")
}

func TestAuthenticate_DeletedUserRejected(t *testing.T) {
	tokens, users := newAuthFixture()
	signed, err := tokens.Issue("user_gone", domain.RoleUser)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Authenticate(tokens, users)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})
	assertHTTPError(t, handler(c), http.StatusUnauthorized, "user not found")
}

func assertHTTPError(t *testing.T, err error, wantCode int, wantMsgPart string) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if he.Code != wantCode {
		t.Fatalf("expected status %d, got %d", wantCode, he.Code)
	}
	msg, _ := he.Message.(string)
	if !strings.Contains(msg, wantMsgPart) {
		t.Fatalf("expected message containing %q, got %q", wantMsgPart, msg)
	}
}
