package provider

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Options holds the fixed generation configuration for the Gemini provider.
// Model and credentials are always injected; nothing is hard-coded.
type Options struct {
	Model           string
	Temperature     float32
	TopK            float32
	TopP            float32
	MaxOutputTokens int32
	CandidateCount  int32
	SafetySettings  []*genai.SafetySetting
}

// DefaultOptions returns the sampling and safety configuration used for
// agricultural advice prompts. Speech-harm categories block at low
// severity, the remaining categories at medium.
func DefaultOptions(model string) Options {
	return Options{
		Model:           model,
		Temperature:     0.7,
		TopK:            40,
		TopP:            0.95,
		MaxOutputTokens: 1024,
		CandidateCount:  1,
		SafetySettings: []*genai.SafetySetting{
			{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockLowAndAbove},
			{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockLowAndAbove},
			{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
			{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
			{Category: genai.HarmCategoryCivicIntegrity, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
		},
	}
}

// Gemini generates text using Google's Gemini API.
type Gemini struct {
	client *genai.Client
	opts   Options
}

// NewGemini creates a Gemini-backed text generator.
func NewGemini(ctx context.Context, apiKey string, opts Options) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if opts.Model == "" {
		return nil, fmt.Errorf("gemini model is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Gemini{client: client, opts: opts}, nil
}

// GenerateText sends the prompt and returns the first candidate's text.
func (g *Gemini) GenerateText(ctx context.Context, prompt string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(g.opts.Temperature),
		TopK:            genai.Ptr(g.opts.TopK),
		TopP:            genai.Ptr(g.opts.TopP),
		MaxOutputTokens: g.opts.MaxOutputTokens,
		CandidateCount:  g.opts.CandidateCount,
		SafetySettings:  g.opts.SafetySettings,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.opts.Model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates returned")
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("candidate contained no text")
	}
	return text, nil
}
