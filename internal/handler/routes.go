package handler

import (
	"net/http"

	"agriassist/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, auth *service.AuthService, advisor *service.AdvisorService, cookieSecure bool) {
	authHandler := NewAuthHandler(auth, cookieSecure)
	adviceHandler := NewAdviceHandler(advisor)

	optional := func(h http.HandlerFunc) http.Handler {
		return OptionalAuth(auth, h)
	}
	anonymousOnly := func(h http.HandlerFunc) http.Handler {
		return RedirectIfAuthed(auth, h)
	}

	mux.HandleFunc("GET /healthz", HandleHealthz)

	mux.Handle("GET /{$}", optional(HandleHome))

	mux.Handle("GET /signup", anonymousOnly(authHandler.HandleSignupPage))
	mux.Handle("POST /signup", anonymousOnly(authHandler.HandleSignup))
	mux.Handle("GET /login", anonymousOnly(authHandler.HandleLoginPage))
	mux.Handle("POST /login", anonymousOnly(authHandler.HandleLogin))
	mux.HandleFunc("GET /logout", authHandler.HandleLogout)

	mux.Handle("GET /dashboard", RequireAuth(auth, http.HandlerFunc(HandleDashboard)))

	mux.Handle("GET /soil_health", optional(adviceHandler.HandleSoilHealthPage))
	mux.Handle("POST /soil_health", optional(adviceHandler.HandleSoilHealth))
	mux.Handle("GET /faq", optional(adviceHandler.HandleFAQPage))
	mux.Handle("POST /faq", optional(adviceHandler.HandleFAQ))
	mux.Handle("GET /predictor", optional(adviceHandler.HandlePredictorPage))
	mux.Handle("POST /predictor", optional(adviceHandler.HandlePredictor))
}
