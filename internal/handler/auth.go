package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"agriassist/internal/domain"
	"agriassist/internal/service"
	"agriassist/internal/view"
)

const sessionCookieName = "session_token"

// AuthHandler handles signup, login, and logout.
type AuthHandler struct {
	auth         *service.AuthService
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{auth: auth, cookieSecure: cookieSecure}
}

// HandleSignupPage renders the signup form.
// GET /signup
func (h *AuthHandler) HandleSignupPage(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, http.StatusOK, "signup", view.Page{})
}

// HandleSignup processes a signup form submission. On success the new
// user is immediately authenticated and sent home.
// POST /signup  (email, name, password, confirm_password)
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	email := r.PostFormValue("email")
	name := r.PostFormValue("name")
	password := r.PostFormValue("password")
	confirm := r.PostFormValue("confirm_password")

	form := map[string]string{"email": email, "name": name}

	if password != confirm {
		renderPage(w, r, http.StatusUnprocessableEntity, "signup", view.Page{
			Error: "Passwords do not match",
			Form:  form,
		})
		return
	}

	user, err := h.auth.Register(r.Context(), email, name, password, confirm)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateEmail):
			renderPage(w, r, http.StatusConflict, "signup", view.Page{
				Error: "Email already exists",
				Form:  form,
			})
		case errors.Is(err, domain.ErrInvalidInput):
			renderPage(w, r, http.StatusUnprocessableEntity, "signup", view.Page{
				Error: "Please fill in all fields (password must be at least 8 characters).",
				Form:  form,
			})
		default:
			slog.Error("register user", "error", err)
			renderPage(w, r, http.StatusInternalServerError, "signup", view.Page{
				Error: "An unexpected error occurred. Please try again.",
				Form:  form,
			})
		}
		return
	}

	h.establishSession(w, user)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleLoginPage renders the login form.
// GET /login
func (h *AuthHandler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, http.StatusOK, "login", view.Page{})
}

// HandleLogin processes a login form submission. A failed attempt
// re-renders the form with no explanation; whether the email exists is
// deliberately not disclosed.
// POST /login  (email, password)
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	user, err := h.auth.Login(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			renderPage(w, r, http.StatusUnauthorized, "login", view.Page{
				Form: map[string]string{"email": email},
			})
			return
		}
		slog.Error("login user", "error", err)
		renderPage(w, r, http.StatusInternalServerError, "login", view.Page{
			Form: map[string]string{"email": email},
		})
		return
	}

	h.establishSession(w, user)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleLogout clears the session cookie.
// GET /logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) establishSession(w http.ResponseWriter, user *domain.User) {
	token, err := h.auth.IssueToken(user)
	if err != nil {
		slog.Error("issue session token", "error", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400, // 24 hours, matches token expiry
	})
}
