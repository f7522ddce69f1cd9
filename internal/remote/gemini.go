package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// GeminiConfig configures the Gemini-shaped completion endpoint. In
// production the base URL points at the site's proxy, which forwards to
// the real API.
type GeminiConfig struct {
	BaseURL       string
	APIKey        string
	Model         string
	FallbackModel string
	// Timeout is the wall-clock budget per user turn. After it the call
	// is treated as a failure and the local path answers.
	Timeout time.Duration
}

// DefaultGeminiConfig returns the production defaults.
func DefaultGeminiConfig(apiKey string) GeminiConfig {
	return GeminiConfig{
		BaseURL:       "https://generativelanguage.googleapis.com/v1beta",
		APIKey:        apiKey,
		Model:         "gemini-2.0-flash",
		FallbackModel: "gemini-2.0-flash-lite",
		Timeout:       12 * time.Second,
	}
}

// GeminiClient implements CompletionProvider against a
// generateContent-style HTTP endpoint.
type GeminiClient struct {
	cfg        GeminiConfig
	httpClient *http.Client
	log        *zap.Logger
}

// NewGeminiClient creates a client. log may be nil.
func NewGeminiClient(cfg GeminiConfig, log *zap.Logger) *GeminiClient {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 12 * time.Second
	}
	return &GeminiClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        log,
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends one generation request within the configured budget.
// When the failure looks model-related (404 or "model"/"not found" in the
// error text) a single retry against the fallback model is attempted.
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	text, err := c.generate(ctx, c.cfg.Model, prompt)
	if err == nil {
		return text, nil
	}

	if c.cfg.FallbackModel != "" && isModelFailure(err) {
		c.log.Info("retrying with fallback model",
			zap.String("model", c.cfg.FallbackModel), zap.Error(err))
		return c.generate(ctx, c.cfg.FallbackModel, prompt)
	}
	return "", err
}

func (c *GeminiClient) generate(ctx context.Context, model, prompt string) (string, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("remote: failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.cfg.BaseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("remote: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("x-goog-api-key", c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("remote: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("remote: failed to read response: %w", err)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("remote: malformed response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := ""
		if parsed.Error != nil {
			msg = parsed.Error.Message
		}
		return "", &httpError{status: resp.StatusCode, message: msg}
	}

	var sb strings.Builder
	for _, cand := range parsed.Candidates {
		for _, part := range cand.Content.Parts {
			sb.WriteString(part.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		// Empty text is indistinguishable from a hard failure for callers.
		return "", fmt.Errorf("remote: empty completion")
	}
	return text, nil
}

type geminiEmbedRequest struct {
	Content geminiContent `json:"content"`
}

type geminiEmbedResponse struct {
	Embedding struct {
		Values []float32 `json:"values"`
	} `json:"embedding"`
}

// embedModel serves the optional semantic-retrieval path.
const embedModel = "text-embedding-004"

// Embed computes an embedding for text. Implements EmbeddingProvider.
func (c *GeminiClient) Embed(ctx context.Context, text string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	body, err := json.Marshal(geminiEmbedRequest{
		Content: geminiContent{Parts: []geminiPart{{Text: text}}},
	})
	if err != nil {
		return nil, fmt.Errorf("remote: failed to encode embed request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:embedContent", c.cfg.BaseURL, embedModel)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("remote: failed to build embed request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("x-goog-api-key", c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote: embed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("remote: embed http %d", resp.StatusCode)
	}

	var parsed geminiEmbedResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("remote: malformed embed response: %w", err)
	}
	if len(parsed.Embedding.Values) == 0 {
		return nil, fmt.Errorf("remote: empty embedding")
	}
	return parsed.Embedding.Values, nil
}

type httpError struct {
	status  int
	message string
}

func (e *httpError) Error() string {
	return fmt.Sprintf("remote: http %d: %s", e.status, e.message)
}

// isModelFailure reports whether the error is worth a fallback-model
// retry: HTTP 404, or an error message naming the model.
func isModelFailure(err error) bool {
	he, ok := err.(*httpError)
	if !ok {
		return false
	}
	if he.status == http.StatusNotFound {
		return true
	}
	msg := strings.ToLower(he.message)
	return strings.Contains(msg, "model") || strings.Contains(msg, "not found")
}
