// Package export turns a presentation into a finished .pptx file:
// assemble slide records, optionally generate images for them, and write
// the archive into the exports directory.
package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/liturgica/lectern/internal/deck"
	"github.com/liturgica/lectern/internal/enhance"
	"github.com/liturgica/lectern/internal/home"
	"github.com/liturgica/lectern/internal/pptx"
)

// Options controls one export run.
type Options struct {
	// Enhance requests image generation for every slide.
	Enhance bool
	// Provider names the image provider; empty uses the configured default.
	Provider string
	// OutputPath overrides the default exports-dir location.
	OutputPath string
	// Progress receives advancement updates. May be nil.
	Progress enhance.ProgressFunc
}

// Result describes a finished export.
type Result struct {
	Path       string   `json:"path"`
	Filename   string   `json:"filename"`
	SlideCount int      `json:"slide_count"`
	Enhanced   int      `json:"enhanced"`
	Warnings   []string `json:"warnings,omitempty"`
}

// Exporter builds pptx files from presentations.
type Exporter struct {
	home            *home.Dir
	providers       *enhance.Registry
	defaultProvider func() string
	logger          *slog.Logger
}

// ExporterConfig configures an Exporter.
type ExporterConfig struct {
	Home      *home.Dir
	Providers *enhance.Registry
	// DefaultProvider returns the configured default image provider name.
	// Read per export so config hot-reload takes effect.
	DefaultProvider func() string
	Logger          *slog.Logger
}

// NewExporter creates an exporter.
func NewExporter(cfg ExporterConfig) *Exporter {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	defaultProvider := cfg.DefaultProvider
	if defaultProvider == nil {
		defaultProvider = func() string { return "" }
	}
	return &Exporter{
		home:            cfg.Home,
		providers:       cfg.Providers,
		defaultProvider: defaultProvider,
		logger:          logger,
	}
}

// Export assembles the presentation and writes the deck file.
func (e *Exporter) Export(ctx context.Context, p *deck.Presentation, opts Options) (*Result, error) {
	slides := deck.Assemble(p)

	res := &Result{SlideCount: len(slides)}

	if opts.Enhance {
		enhanceRes, err := e.enhanceSlides(ctx, slides, opts)
		if err != nil {
			if errors.Is(err, enhance.ErrInvalidCredentials) {
				return nil, err
			}
			// Enhancement is best-effort: any other failure degrades to a
			// plain deck.
			res.Warnings = append(res.Warnings, fmt.Sprintf("enhancement skipped: %v", err))
			e.logger.Warn("enhancement skipped", "error", err)
		} else {
			res.Enhanced = enhanceRes.Enhanced
			res.Warnings = append(res.Warnings, enhanceRes.Warnings...)
		}
	}

	res.Filename = Filename(p.Title, res.Enhanced > 0)
	outputPath := opts.OutputPath
	if outputPath == "" {
		outputPath = e.home.ExportPath(res.Filename)
	}

	builder := pptx.NewBuilder(p.Title, slides)
	if err := builder.Build(outputPath); err != nil {
		return nil, fmt.Errorf("failed to write deck: %w", err)
	}
	res.Path = outputPath

	e.logger.Info("deck exported",
		"presentation", p.ID,
		"path", outputPath,
		"slides", res.SlideCount,
		"enhanced", res.Enhanced)
	return res, nil
}

func (e *Exporter) enhanceSlides(ctx context.Context, slides []deck.SlideRecord, opts Options) (enhance.Result, error) {
	name := opts.Provider
	if name == "" {
		name = e.defaultProvider()
	}
	if e.providers == nil || name == "" {
		return enhance.Result{}, fmt.Errorf("no image provider configured")
	}
	provider := e.providers.Get(name)
	if provider == nil {
		return enhance.Result{}, fmt.Errorf("image provider %q not configured", name)
	}

	enhancer := enhance.NewEnhancer(enhance.EnhancerConfig{
		Provider: provider,
		Logger:   e.logger,
	})
	return enhancer.Apply(ctx, slides, opts.Progress)
}

// Filename builds the deck file name from the presentation title.
func Filename(title string, enhanced bool) string {
	safe := sanitizeFilename(title)
	if safe == "" {
		safe = "presentation"
	}
	if enhanced {
		return safe + "_enhanced.pptx"
	}
	return safe + ".pptx"
}

func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
	)
	name = replacer.Replace(name)
	name = strings.Trim(name, " .")
	if len(name) > 100 {
		name = name[:100]
	}
	return name
}
