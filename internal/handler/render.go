package handler

import (
	"log/slog"
	"net/http"

	"agriassist/internal/view"
)

// renderPage writes an HTML page. The session flag and display name ride
// along with every response for the navigation bar.
func renderPage(w http.ResponseWriter, r *http.Request, status int, name string, page view.Page) {
	sess := SessionFromContext(r.Context())
	page.Authenticated = sess.Authenticated()
	if sess != nil {
		page.DisplayName = sess.DisplayName
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := view.Render(w, name, page); err != nil {
		slog.Error("render page", "page", name, "error", err)
	}
}
