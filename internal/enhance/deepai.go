package enhance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
)

const (
	DeepAIName    = "deepai"
	DeepAIBaseURL = "https://api.deepai.org/api/text2img"
)

// DeepAIConfig holds configuration for the DeepAI text2img client.
type DeepAIConfig struct {
	APIKey            string
	BaseURL           string
	RequestsPerMinute int
	MaxRetries        int
	RetryDelay        time.Duration // Base retry delay for backoff
	Timeout           time.Duration
	HTTPClient        *http.Client // Optional (tests)
}

// DeepAIClient implements ImageProvider against the DeepAI text2img API.
type DeepAIClient struct {
	apiKey     string
	baseURL    string
	maxRetries int
	retryDelay time.Duration
	limiter    *RateLimiter
	client     *http.Client
}

// NewDeepAIClient creates a new DeepAI client.
func NewDeepAIClient(cfg DeepAIConfig) *DeepAIClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DeepAIBaseURL
	}
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = 30
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = 2 * time.Second
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &DeepAIClient{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		limiter:    NewRateLimiter(cfg.RequestsPerMinute),
		client:     httpClient,
	}
}

// Name returns the provider identifier.
func (c *DeepAIClient) Name() string {
	return DeepAIName
}

// Validate checks the configured credential without a network call.
func (c *DeepAIClient) Validate() error {
	return ValidateAPIKey(c.apiKey)
}

type deepAIRequest struct {
	Text string `json:"text"`
}

type deepAIResponse struct {
	ID        string `json:"id"`
	OutputURL string `json:"output_url"`
}

// Generate requests an image for the prompt and returns the output URL.
// Retries transient failures with backoff; a 429 drains the local rate
// limiter before the next attempt.
func (c *DeepAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	var outputURL string

	err := retry.Do(
		func() error {
			if err := c.limiter.Wait(ctx); err != nil {
				return retry.Unrecoverable(err)
			}
			url, err := c.generateOnce(ctx, prompt)
			if err != nil {
				return err
			}
			outputURL = url
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(c.maxRetries)),
		retry.Delay(c.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return "", err
	}
	return outputURL, nil
}

func (c *DeepAIClient) generateOnce(ctx context.Context, prompt string) (string, error) {
	bodyBytes, err := json.Marshal(deepAIRequest{Text: prompt})
	if err != nil {
		return "", retry.Unrecoverable(fmt.Errorf("failed to marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", retry.Unrecoverable(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		c.limiter.Record429()
		return "", fmt.Errorf("rate limited (status 429)")
	case resp.StatusCode == http.StatusUnauthorized:
		return "", retry.Unrecoverable(fmt.Errorf("%w: rejected by service", ErrInvalidCredentials))
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("DeepAI error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var parsed deepAIResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if parsed.OutputURL == "" {
		return "", fmt.Errorf("no output_url in response")
	}
	return parsed.OutputURL, nil
}

// Verify interface
var _ ImageProvider = (*DeepAIClient)(nil)
