package handler

import (
	"net/http"

	"agriassist/internal/view"
)

// HandleDashboard renders the dashboard for the authenticated user.
// The page carries no data yet beyond the user's identity.
// GET /dashboard
func HandleDashboard(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, http.StatusOK, "dashboard", view.Page{})
}
