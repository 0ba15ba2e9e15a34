package enhance

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/liturgica/lectern/internal/deck"
)

// maxImageBytes caps a downloaded image; generated assets are far
// smaller, so anything larger is treated as a provider error.
const maxImageBytes = 20 << 20

// Progress reports enhancement advancement. Percent is monotonically
// non-decreasing from 0 to 100 across a single Apply call.
type Progress struct {
	Step        string `json:"step"`
	Percent     int    `json:"percent"`
	SlideIndex  int    `json:"slide_index,omitempty"`
	TotalSlides int    `json:"total_slides"`
}

// ProgressFunc receives progress updates during enhancement. May be nil.
type ProgressFunc func(Progress)

// Result summarizes one enhancement run.
type Result struct {
	Enhanced int      `json:"enhanced"`
	Failed   int      `json:"failed"`
	Warnings []string `json:"warnings,omitempty"`
}

// Enhancer decorates slides with generated images. Failures on
// individual slides are collected as warnings, never surfaced as errors;
// only invalid credentials abort the run up front.
type Enhancer struct {
	provider ImageProvider
	client   *http.Client
	logger   *slog.Logger
}

// EnhancerConfig configures an Enhancer.
type EnhancerConfig struct {
	Provider   ImageProvider
	HTTPClient *http.Client // Optional (tests)
	Logger     *slog.Logger
}

// NewEnhancer creates an enhancer backed by the given provider.
func NewEnhancer(cfg EnhancerConfig) *Enhancer {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Enhancer{
		provider: cfg.Provider,
		client:   client,
		logger:   logger,
	}
}

// Apply enhances the slides in place, sequentially in slide order. It
// validates credentials first and returns ErrInvalidCredentials without
// touching any slide if they fail. Per-slide failures leave the slide
// unmodified and continue.
func (e *Enhancer) Apply(ctx context.Context, slides []deck.SlideRecord, progress ProgressFunc) (Result, error) {
	var res Result

	if e.provider == nil {
		return res, fmt.Errorf("no image provider configured")
	}
	if err := e.provider.Validate(); err != nil {
		return res, err
	}

	total := len(slides)
	report := func(step string, percent, idx int) {
		if progress != nil {
			progress(Progress{Step: step, Percent: percent, SlideIndex: idx, TotalSlides: total})
		}
	}

	report("starting", 0, 0)

	for i := range slides {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		slide := &slides[i]
		prompt := PromptFor(slide.Title, slide.Kind)

		// Progress reserves 100% for completion; per-slide steps land
		// just below it.
		percent := (i * 100) / total
		report("generating", percent, slide.Index)

		url, err := e.provider.Generate(ctx, prompt)
		if err != nil {
			res.Failed++
			res.Warnings = append(res.Warnings, fmt.Sprintf("slide %d: %v", slide.Index, err))
			e.logger.Warn("image generation failed", "slide", slide.Index, "error", err)
			continue
		}

		img, err := e.download(ctx, url)
		if err != nil {
			res.Failed++
			res.Warnings = append(res.Warnings, fmt.Sprintf("slide %d: %v", slide.Index, err))
			e.logger.Warn("image download failed", "slide", slide.Index, "error", err)
			continue
		}

		slide.Image = img
		res.Enhanced++
	}

	report("done", 100, 0)

	e.logger.Info("enhancement finished",
		"provider", e.provider.Name(),
		"enhanced", res.Enhanced,
		"failed", res.Failed)
	return res, nil
}

// download fetches the generated image and sniffs its content type.
func (e *Enhancer) download(ctx context.Context, url string) (*deck.SlideImage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create download request: %w", err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image download failed (status %d)", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("image download returned no data")
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("image exceeds %d bytes", maxImageBytes)
	}

	contentType := sniffImageType(data)
	if contentType == "" {
		return nil, fmt.Errorf("downloaded data is not a supported image format")
	}

	return &deck.SlideImage{
		URL:         url,
		ContentType: contentType,
		Data:        data,
	}, nil
}

var (
	jpegMagic = []byte{0xFF, 0xD8, 0xFF}
	pngMagic  = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}
)

// sniffImageType identifies JPEG and PNG payloads by magic bytes.
// Other formats are rejected; the deck embeds only these two.
func sniffImageType(data []byte) string {
	switch {
	case bytes.HasPrefix(data, jpegMagic):
		return "image/jpeg"
	case bytes.HasPrefix(data, pngMagic):
		return "image/png"
	default:
		return ""
	}
}
