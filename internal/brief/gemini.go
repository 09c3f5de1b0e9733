package brief

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/genai"
)

// Gemini narrates briefs via the Google AI API.
type Gemini struct {
	apiKey  string
	model   string
	timeout time.Duration
}

// NewGemini creates a narrator. An empty apiKey is allowed at
// construction; Narrate reports it as the collaborator failure.
func NewGemini(apiKey, model string, timeout time.Duration) *Gemini {
	return &Gemini{apiKey: apiKey, model: model, timeout: timeout}
}

// Narrate sends the prompt and returns the response text.
func (g *Gemini) Narrate(ctx context.Context, prompt string) (string, error) {
	if g.apiKey == "" {
		return "", errors.New("missing Gemini API key: set ai.api_key or GEMINI_API_KEY")
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("gemini client: %w", err)
	}

	resp, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", errors.New("gemini returned an empty response")
	}
	return text, nil
}
