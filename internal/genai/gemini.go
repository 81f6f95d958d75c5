package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"greenverify/internal/common/logger"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

// geminiModelCandidates are tried in order at startup; the first one that
// answers a probe request is kept for the life of the process.
var geminiModelCandidates = []string{
	"gemini-2.5-flash",
	"gemini-1.5-flash",
	"gemini-pro",
}

// GeminiClient talks to the Google Generative Language REST API.
type GeminiClient struct {
	client      *http.Client
	baseURL     string
	apiKey      string
	model       string
	maxRetries  int
	temperature float64
	maxTokens   int
	logger      logger.Logger
}

type GeminiOptions struct {
	APIKey      string
	Model       string
	BaseURL     string
	MaxRetries  int
	Temperature float64
	MaxTokens   int
}

func NewGemini(opts GeminiOptions, log logger.Logger) (*GeminiClient, error) {
	if opts.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}
	return &GeminiClient{
		// No client timeout: the per-call context bounds every request.
		client:      &http.Client{},
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      opts.APIKey,
		model:       opts.Model,
		maxRetries:  opts.MaxRetries,
		temperature: opts.Temperature,
		maxTokens:   opts.MaxTokens,
		logger:      log.WithFields(map[string]interface{}{"provider": "gemini"}),
	}, nil
}

func (c *GeminiClient) Provider() string { return "gemini" }

// ResolveModel probes the candidate model list and keeps the first one that
// answers. When a model was configured explicitly only that one is probed.
// Returns the chosen model name, or an error when none is reachable.
func (c *GeminiClient) ResolveModel(ctx context.Context) (string, error) {
	candidates := geminiModelCandidates
	if c.model != "" {
		candidates = []string{c.model}
	}

	var lastErr error
	for _, model := range candidates {
		probe := &GeminiClient{
			client:      c.client,
			baseURL:     c.baseURL,
			apiKey:      c.apiKey,
			model:       model,
			temperature: c.temperature,
			maxTokens:   c.maxTokens,
			logger:      c.logger,
		}
		if _, err := probe.GenerateText(ctx, "Test"); err != nil {
			c.logger.Warn("model probe failed", map[string]interface{}{
				"model": model,
				"error": err.Error(),
			})
			lastErr = err
			continue
		}
		c.model = model
		c.logger.Info("model resolved", map[string]interface{}{"model": model})
		return model, nil
	}
	return "", fmt.Errorf("no usable model: %w", lastErr)
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig geminiGenConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (c *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: geminiGenConfig{
			Temperature:     c.temperature,
			MaxOutputTokens: c.maxTokens,
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCallFailed, err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ErrTimeout
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrCallFailed, err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, lastErr = c.client.Do(req)
		if lastErr == nil {
			if resp.StatusCode == http.StatusOK {
				break
			}
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			resp = nil
		}

		if ctx.Err() != nil {
			return "", ErrTimeout
		}
	}

	if lastErr != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", ErrTimeout
		}
		return "", fmt.Errorf("%w: %v", ErrCallFailed, lastErr)
	}
	if resp == nil {
		return "", fmt.Errorf("%w: no successful response after retries", ErrCallFailed)
	}
	defer resp.Body.Close()

	var apiResponse geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return "", fmt.Errorf("%w: decode error: %v", ErrCallFailed, err)
	}

	text := collectText(&apiResponse)
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func collectText(resp *geminiResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	return b.String()
}
