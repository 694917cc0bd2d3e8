package service

import (
	"context"
	"fmt"
	"time"

	"agriassist/internal/domain"
)

// TextGenerator produces a free-text answer for a natural-language prompt.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// AdvisorService assembles domain prompts and forwards them to a text
// generation provider. Each call is a single stateless round trip; no
// conversation state is kept and no answer is persisted.
type AdvisorService struct {
	generator TextGenerator
	timeout   time.Duration
}

// NewAdvisorService creates a new AdvisorService. Every outbound call is
// bounded by the given timeout.
func NewAdvisorService(generator TextGenerator, timeout time.Duration) *AdvisorService {
	return &AdvisorService{generator: generator, timeout: timeout}
}

// SoilHealth asks the provider to assess soil quality from the submitted
// parameters. Values are forwarded verbatim; only presence is checked.
func (s *AdvisorService) SoilHealth(ctx context.Context, ph, moisture, nutrients string) (string, error) {
	if ph == "" || moisture == "" || nutrients == "" {
		return "", fmt.Errorf("%w: ph, moisture, and nutrients are required", domain.ErrInvalidInput)
	}
	prompt := fmt.Sprintf(
		"What is the soil quality for pH: %s, Moisture: %s, Nutrients: %s, and if it is bad then what should i add to make it good, explain in simple langauge",
		ph, moisture, nutrients,
	)
	return s.forward(ctx, prompt)
}

// AnswerFAQ forwards a free-text question.
func (s *AdvisorService) AnswerFAQ(ctx context.Context, question string) (string, error) {
	if question == "" {
		return "", fmt.Errorf("%w: question is required", domain.ErrInvalidInput)
	}
	return s.forward(ctx, fmt.Sprintf("answer this question in detail %s", question))
}

// PredictPrices asks for a produce price outlook for the given city.
func (s *AdvisorService) PredictPrices(ctx context.Context, city string) (string, error) {
	if city == "" {
		return "", fmt.Errorf("%w: city is required", domain.ErrInvalidInput)
	}
	prompt := fmt.Sprintf(
		"are prices of any fruit, vegetable going to get high according to predictions in %s, if so then make a list of them",
		city,
	)
	return s.forward(ctx, prompt)
}

// forward performs the single blocking provider call under a timeout.
// Any transport or provider error becomes ErrProviderFailure so callers
// can render a recoverable outcome instead of crashing the request.
func (s *AdvisorService) forward(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	answer, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrProviderFailure, err)
	}
	return answer, nil
}
