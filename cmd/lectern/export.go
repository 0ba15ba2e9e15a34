package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/liturgica/lectern/internal/config"
	"github.com/liturgica/lectern/internal/deck"
	"github.com/liturgica/lectern/internal/enhance"
	"github.com/liturgica/lectern/internal/export"
	"github.com/liturgica/lectern/internal/home"
	"github.com/liturgica/lectern/internal/schema"
)

var (
	exportEnhance  bool
	exportProvider string
	exportOutput   string
)

var exportCmd = &cobra.Command{
	Use:   "export <presentation.json>",
	Short: "Export a presentation file to .pptx without a server",
	Long: `Export reads a presentation document from a JSON file, assembles the
slide deck and writes a .pptx file. No running server is needed.

The document is validated against the presentation schema before export.
With --enhance, background images are generated through the configured
image provider; generation failures degrade to a plain deck.

Examples:
  lectern export messe.json
  lectern export messe.json --enhance --provider openai
  lectern export messe.json -O /tmp/messe.pptx`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading presentation file: %w", err)
		}

		validator, err := schema.NewValidator()
		if err != nil {
			return err
		}
		if err := validator.ValidateDocument(data); err != nil {
			return fmt.Errorf("invalid presentation document: %w", err)
		}

		var p deck.Presentation
		if err := json.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("parsing presentation file: %w", err)
		}

		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}

		mgr, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}

		registry := enhance.NewRegistry()
		registry.SetLogger(logger)
		registry.Reload(mgr.Get().ToProviderRegistryConfig())

		exporter := export.NewExporter(export.ExporterConfig{
			Home:      h,
			Providers: registry,
			DefaultProvider: func() string {
				return mgr.Get().Export.DefaultProvider
			},
			Logger: logger,
		})

		res, err := exporter.Export(cmd.Context(), &p, export.Options{
			Enhance:    exportEnhance,
			Provider:   exportProvider,
			OutputPath: exportOutput,
			Progress: func(pr enhance.Progress) {
				logger.Info("export progress", "step", pr.Step, "percent", pr.Percent)
			},
		})
		if err != nil {
			return err
		}

		fmt.Printf("Exported %d slides to %s\n", res.SlideCount, res.Path)
		for _, warning := range res.Warnings {
			fmt.Println("warning:", warning)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().BoolVar(&exportEnhance, "enhance", false, "Generate background images for slides")
	exportCmd.Flags().StringVar(&exportProvider, "provider", "", "Image provider to use (default from config)")
	exportCmd.Flags().StringVarP(&exportOutput, "output-file", "O", "", "Path for the .pptx file (default: exports dir)")

	rootCmd.AddCommand(exportCmd)
}
