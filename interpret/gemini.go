package interpret

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiConfig configures the Gemini provider.
type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature float64

	// BaseURL overrides the API endpoint.
	BaseURL string
}

// GeminiProvider streams completions from Google's Gemini API.
type GeminiProvider struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewGeminiProvider creates a Gemini client.
func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiProvider{
		client:      client,
		model:       cfg.Model,
		temperature: float32(cfg.Temperature),
	}, nil
}

// Name returns "Gemini".
func (g *GeminiProvider) Name() string { return "Gemini" }

// Stream forwards the text of each streamed candidate.
func (g *GeminiProvider) Stream(ctx context.Context, system, user string) (<-chan string, <-chan error) {
	out := make(chan string, 64)
	errc := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errc)

		config := &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
			Temperature:       genai.Ptr(g.temperature),
		}
		for resp, err := range g.client.Models.GenerateContentStream(ctx, g.model, genai.Text(user), config) {
			if err != nil {
				errc <- fmt.Errorf("GenAI stream failed: %w", err)
				return
			}
			text := resp.Text()
			if text == "" {
				continue
			}
			select {
			case out <- text:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
	}()

	return out, errc
}
