package interpret

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// OpenAIConfig configures an OpenAI-compatible chat completions endpoint
// such as DeepSeek.
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Label       string
	Temperature float64
	Timeout     time.Duration
}

// DefaultOpenAIConfig returns the DeepSeek defaults.
func DefaultOpenAIConfig(apiKey string) OpenAIConfig {
	return OpenAIConfig{
		APIKey:      apiKey,
		BaseURL:     "https://api.deepseek.com",
		Model:       "deepseek-chat",
		Label:       "DeepSeek",
		Temperature: 0.7,
		Timeout:     300 * time.Second,
	}
}

// OpenAIProvider streams chat completions over server-sent events.
type OpenAIProvider struct {
	apiKey      string
	endpoint    string
	model       string
	label       string
	temperature float64
	httpClient  *http.Client

	maxRetries   int
	retryBackoff time.Duration
}

// NewOpenAIProvider returns a provider for cfg. Empty fields take the
// DeepSeek defaults.
func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	def := DefaultOpenAIConfig(cfg.APIKey)
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.Model == "" {
		cfg.Model = def.Model
	}
	if cfg.Label == "" {
		cfg.Label = def.Label
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	return &OpenAIProvider{
		apiKey:       cfg.APIKey,
		endpoint:     chatEndpoint(cfg.BaseURL),
		model:        cfg.Model,
		label:        cfg.Label,
		temperature:  cfg.Temperature,
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		maxRetries:   2,
		retryBackoff: time.Second,
	}
}

// chatEndpoint accepts both "https://host" and "https://host/v1".
func chatEndpoint(base string) string {
	base = strings.TrimRight(base, "/")
	if strings.HasSuffix(base, "/v1") {
		return base + "/chat/completions"
	}
	return base + "/v1/chat/completions"
}

// Name returns the source label.
func (p *OpenAIProvider) Name() string { return p.label }

// Model returns the model name sent upstream.
func (p *OpenAIProvider) Model() string { return p.model }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	Stream      bool          `json:"stream"`
}

type chatChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Stream posts the prompts with stream=true and forwards content deltas.
// Rate-limited requests are retried before any output is produced.
func (p *OpenAIProvider) Stream(ctx context.Context, system, user string) (<-chan string, <-chan error) {
	out := make(chan string, 64)
	errc := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errc)

		body, err := json.Marshal(chatRequest{
			Model: p.model,
			Messages: []chatMessage{
				{Role: "system", Content: system},
				{Role: "user", Content: user},
			},
			Temperature: p.temperature,
			Stream:      true,
		})
		if err != nil {
			errc <- fmt.Errorf("failed to marshal request: %w", err)
			return
		}

		resp, err := p.open(ctx, body)
		if err != nil {
			errc <- err
			return
		}
		defer resp.Body.Close()

		if err := readEvents(ctx, resp.Body, out); err != nil {
			errc <- err
		}
	}()

	return out, errc
}

// open sends the request, retrying on 429 and transport errors.
func (p *OpenAIProvider) open(ctx context.Context, body []byte) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		if attempt > 0 {
			t := time.NewTimer(p.retryBackoff << (attempt - 1))
			select {
			case <-t.C:
			case <-ctx.Done():
				t.Stop()
				return nil, ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
		req.Header.Set("Accept", "text/event-stream")

		resp, err := p.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = fmt.Errorf("request failed: %w", err)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			resp.Body.Close()
			lastErr = fmt.Errorf("rate limit exceeded (429): %s", strings.TrimSpace(string(msg)))
			continue
		}
		if resp.StatusCode != http.StatusOK {
			msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			resp.Body.Close()
			return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
		}
		return resp, nil
	}
	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// readEvents scans "data:" lines until [DONE] or EOF.
func readEvents(ctx context.Context, r io.Reader, out chan<- string) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "" {
			continue
		}
		if data == "[DONE]" {
			return nil
		}

		var chunk chatChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			continue
		}
		if chunk.Error != nil {
			return fmt.Errorf("API error: %s", chunk.Error.Message)
		}
		if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
			continue
		}
		select {
		case out <- chunk.Choices[0].Delta.Content:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if err := scanner.Err(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("stream error: %w", err)
	}
	return nil
}
