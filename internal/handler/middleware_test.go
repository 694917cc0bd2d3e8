package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"agriassist/internal/handler"
	"agriassist/internal/repository/sqlite"
	"agriassist/internal/service"
)

const testSessionSecret = "test-secret-for-handler-tests"

// fakeGenerator is a canned TextGenerator for handler tests.
type fakeGenerator struct {
	lastPrompt string
	response   string
	err        error
}

func (f *fakeGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func newTestServices(t *testing.T) (*service.AuthService, *service.AdvisorService, *fakeGenerator) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	gen := &fakeGenerator{response: "canned answer"}
	// Bcrypt cost 4 for fast tests.
	auth := service.NewAuthService(db.Users(), testSessionSecret, 4)
	advisor := service.NewAdvisorService(gen, time.Second)
	return auth, advisor, gen
}

func sessionCookie(t *testing.T, auth *service.AuthService, email, name string) *http.Cookie {
	t.Helper()
	ctx := context.Background()
	user, err := auth.Register(ctx, email, name, "password123", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	token, err := auth.IssueToken(user)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	return &http.Cookie{Name: "session_token", Value: token}
}

func TestRequireAuth_ValidToken(t *testing.T) {
	auth, _, _ := newTestServices(t)

	var gotName string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sess := handler.SessionFromContext(r.Context()); sess != nil {
			gotName = sess.DisplayName
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(sessionCookie(t, auth, "valid@example.com", "Valid User"))
	w := httptest.NewRecorder()

	handler.RequireAuth(auth, inner).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if gotName != "Valid User" {
		t.Fatalf("expected session for 'Valid User', got %q", gotName)
	}
}

func TestRequireAuth_Anonymous_RedirectsToLogin(t *testing.T) {
	auth, _, _ := newTestServices(t)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("inner handler should not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	w := httptest.NewRecorder()

	handler.RequireAuth(auth, inner).ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %s", loc)
	}
}

func TestRequireAuth_InvalidToken_RedirectsToLogin(t *testing.T) {
	auth, _, _ := newTestServices(t)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("inner handler should not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "session_token", Value: "invalid.jwt.token"})
	w := httptest.NewRecorder()

	handler.RequireAuth(auth, inner).ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
}

func TestRedirectIfAuthed_Authenticated_RedirectsHome(t *testing.T) {
	auth, _, _ := newTestServices(t)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("inner handler should not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(sessionCookie(t, auth, "authed@example.com", "Authed"))
	w := httptest.NewRecorder()

	handler.RedirectIfAuthed(auth, inner).ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to /, got %s", loc)
	}
}

func TestRedirectIfAuthed_Anonymous_PassesThrough(t *testing.T) {
	auth, _, _ := newTestServices(t)

	called := false
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	w := httptest.NewRecorder()

	handler.RedirectIfAuthed(auth, inner).ServeHTTP(w, req)

	if !called {
		t.Fatal("expected inner handler to be called")
	}
}

func TestOptionalAuth_AttachesSession(t *testing.T) {
	auth, _, _ := newTestServices(t)

	var sessEmail string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sess := handler.SessionFromContext(r.Context()); sess != nil {
			sessEmail = sess.Email
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(sessionCookie(t, auth, "opt@example.com", "Opt"))
	w := httptest.NewRecorder()

	handler.OptionalAuth(auth, inner).ServeHTTP(w, req)

	if sessEmail != "opt@example.com" {
		t.Fatalf("expected session email opt@example.com, got %q", sessEmail)
	}
}

func TestOptionalAuth_AnonymousProceeds(t *testing.T) {
	auth, _, _ := newTestServices(t)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sess := handler.SessionFromContext(r.Context()); sess.Authenticated() {
			t.Fatal("expected anonymous session")
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	handler.OptionalAuth(auth, inner).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	handler.SecurityHeaders(inner).ServeHTTP(w, req)

	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("expected nosniff, got %q", got)
	}
	if got := w.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Fatalf("expected DENY, got %q", got)
	}
}
