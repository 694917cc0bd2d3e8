package handler

import (
	"net/http"

	"agriassist/internal/view"
)

// HandleHome renders the home page.
// GET /
func HandleHome(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, http.StatusOK, "home", view.Page{})
}
