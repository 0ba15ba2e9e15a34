package enhance

import (
	"context"
	"fmt"
	"net/http"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	OpenAIName         = "openai"
	openAIDefaultModel = openai.ImageModelDallE3
)

// OpenAIConfig holds configuration for the OpenAI image client.
type OpenAIConfig struct {
	APIKey     string
	Model      string        // "dall-e-3" (default) or "dall-e-2"
	Size       string        // "1024x1024" (default)
	MaxRetries int           // Retry attempts for SDK transport
	Timeout    time.Duration // HTTP timeout
	BaseURL    string        // Optional (tests)
	HTTPClient *http.Client  // Optional (tests)
}

// OpenAIClient implements ImageProvider using the official OpenAI SDK.
type OpenAIClient struct {
	apiKey string
	model  string
	size   string
	client openai.Client
}

// NewOpenAIClient creates a new OpenAI image client.
func NewOpenAIClient(cfg OpenAIConfig) *OpenAIClient {
	if cfg.Model == "" {
		cfg.Model = openAIDefaultModel
	}
	if cfg.Size == "" {
		cfg.Size = "1024x1024"
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	client := openai.NewClient(opts...)

	return &OpenAIClient{
		apiKey: cfg.APIKey,
		model:  cfg.Model,
		size:   cfg.Size,
		client: client,
	}
}

// Name returns the provider identifier.
func (c *OpenAIClient) Name() string {
	return OpenAIName
}

// Validate checks the configured credential without a network call.
func (c *OpenAIClient) Validate() error {
	return ValidateAPIKey(c.apiKey)
}

// Generate requests an image for the prompt and returns the hosted URL.
func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt:         prompt,
		Model:          openai.ImageModel(c.model),
		Size:           openai.ImageGenerateParamsSize(c.size),
		ResponseFormat: openai.ImageGenerateParamsResponseFormatURL,
		N:              openai.Int(1),
	})
	if err != nil {
		return "", fmt.Errorf("openai image generation failed: %w", err)
	}
	if resp == nil || len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", fmt.Errorf("openai image generation returned no image")
	}
	return resp.Data[0].URL, nil
}

// Verify interface
var _ ImageProvider = (*OpenAIClient)(nil)
