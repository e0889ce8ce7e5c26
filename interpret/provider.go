// Package interpret relays a chart to a language model and streams back a
// plain-English interpretation.
//
// Providers share one contract: Stream returns a channel of text deltas,
// closed when the answer is complete, and an error channel that receives at
// most one error and is then closed. Both channels are closed before the
// producing goroutine exits, and cancelling ctx stops it.
package interpret

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Provider streams a completion for a system and user prompt.
type Provider interface {
	// Name is the label shown to users as the source of the text.
	Name() string
	Stream(ctx context.Context, system, user string) (<-chan string, <-chan error)
}

// Settings selects and configures a Provider.
type Settings struct {
	Provider    string // deepseek, openai, gemini
	APIKey      string
	BaseURL     string
	Model       string
	Label       string
	Temperature float64
	Timeout     time.Duration

	GeminiAPIKey string
	GeminiModel  string
}

// New returns the provider named by s.Provider. A provider without an API
// key is replaced by a Notice that tells the user which key is missing.
func New(ctx context.Context, s Settings) (Provider, error) {
	switch strings.ToLower(s.Provider) {
	case "", "deepseek", "openai":
		if s.APIKey == "" {
			return Notice{Label: labelOr(s.Label, "DeepSeek"), Text: "[Missing DEEPSEEK_API_KEY]\n"}, nil
		}
		return NewOpenAIProvider(OpenAIConfig{
			APIKey:      s.APIKey,
			BaseURL:     s.BaseURL,
			Model:       s.Model,
			Label:       s.Label,
			Temperature: s.Temperature,
			Timeout:     s.Timeout,
		}), nil
	case "gemini":
		if s.GeminiAPIKey == "" {
			return Notice{Label: "Gemini", Text: "[Missing GEMINI_API_KEY]\n"}, nil
		}
		return NewGeminiProvider(ctx, GeminiConfig{
			APIKey:      s.GeminiAPIKey,
			Model:       s.GeminiModel,
			Temperature: s.Temperature,
		})
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", s.Provider)
	}
}

func labelOr(label, def string) string {
	if label == "" {
		return def
	}
	return label
}

// Notice is a Provider that streams a fixed text. It stands in for a
// provider whose credentials are not configured.
type Notice struct {
	Label string
	Text  string
}

// Name returns the notice label.
func (n Notice) Name() string { return n.Label }

// Stream emits Text as a single delta.
func (n Notice) Stream(ctx context.Context, _, _ string) (<-chan string, <-chan error) {
	out := make(chan string, 1)
	errc := make(chan error, 1)
	out <- n.Text
	close(out)
	close(errc)
	return out, errc
}

// Collect drains a stream into a string. It returns the text received so
// far together with the stream's error, if any.
func Collect(out <-chan string, errc <-chan error) (string, error) {
	var b strings.Builder
	for d := range out {
		b.WriteString(d)
	}
	return b.String(), <-errc
}
