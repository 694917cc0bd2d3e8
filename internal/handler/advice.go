package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"agriassist/internal/domain"
	"agriassist/internal/service"
	"agriassist/internal/view"
)

// AdviceHandler handles the three advice pages. They differ only in which
// form fields feed the prompt; the flow is otherwise identical.
type AdviceHandler struct {
	advisor *service.AdvisorService
}

// NewAdviceHandler creates a new AdviceHandler.
func NewAdviceHandler(advisor *service.AdvisorService) *AdviceHandler {
	return &AdviceHandler{advisor: advisor}
}

// HandleSoilHealthPage renders the soil health form.
// GET /soil_health
func (h *AdviceHandler) HandleSoilHealthPage(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, http.StatusOK, "soil_health", view.Page{})
}

// HandleSoilHealth forwards the soil parameters and re-renders the form
// with the answer and the submitted values.
// POST /soil_health  (ph, moisture, nutrients)
func (h *AdviceHandler) HandleSoilHealth(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	form := map[string]string{
		"ph":        r.PostFormValue("ph"),
		"moisture":  r.PostFormValue("moisture"),
		"nutrients": r.PostFormValue("nutrients"),
	}

	answer, err := h.advisor.SoilHealth(r.Context(), form["ph"], form["moisture"], form["nutrients"])
	h.renderResult(w, r, "soil_health", form, answer, err)
}

// HandleFAQPage renders the FAQ form.
// GET /faq
func (h *AdviceHandler) HandleFAQPage(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, http.StatusOK, "faq", view.Page{})
}

// HandleFAQ forwards a free-text question.
// POST /faq  (faq)
func (h *AdviceHandler) HandleFAQ(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	form := map[string]string{"faq": r.PostFormValue("faq")}

	answer, err := h.advisor.AnswerFAQ(r.Context(), form["faq"])
	h.renderResult(w, r, "faq", form, answer, err)
}

// HandlePredictorPage renders the price predictor form.
// GET /predictor
func (h *AdviceHandler) HandlePredictorPage(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, http.StatusOK, "predictor", view.Page{})
}

// HandlePredictor forwards a price outlook query for a city.
// POST /predictor  (city)
func (h *AdviceHandler) HandlePredictor(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	form := map[string]string{"city": r.PostFormValue("city")}

	answer, err := h.advisor.PredictPrices(r.Context(), form["city"])
	h.renderResult(w, r, "predictor", form, answer, err)
}

// renderResult maps an advisor outcome onto the page. A provider failure
// is a recoverable outcome for the user, never a crashed request.
func (h *AdviceHandler) renderResult(w http.ResponseWriter, r *http.Request, page string, form map[string]string, answer string, err error) {
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			renderPage(w, r, http.StatusUnprocessableEntity, page, view.Page{
				Error: "Please fill in all fields.",
				Form:  form,
			})
		case errors.Is(err, domain.ErrProviderFailure):
			logProviderFailure(r.Context(), page, err)
			renderPage(w, r, http.StatusBadGateway, page, view.Page{
				Error: "We could not generate an answer right now. Please try again.",
				Form:  form,
			})
		default:
			slog.Error("advice request", "page", page, "error", err)
			renderPage(w, r, http.StatusInternalServerError, page, view.Page{
				Error: "An unexpected error occurred. Please try again.",
				Form:  form,
			})
		}
		return
	}

	renderPage(w, r, http.StatusOK, page, view.Page{
		Response: answer,
		Form:     form,
	})
}

func logProviderFailure(ctx context.Context, page string, err error) {
	if ctx.Err() != nil {
		slog.Error("provider call aborted", "page", page, "cause", ctx.Err(), "error", err)
		return
	}
	slog.Error("provider call failed", "page", page, "error", err)
}
