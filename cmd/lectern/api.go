package main

import (
	"github.com/spf13/cobra"

	"github.com/liturgica/lectern/internal/server/endpoints"
)

var serverURL string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Commands that call the running server",
	Long: `API commands call the running Lectern server via HTTP.

These commands require a running server (lectern serve).
Use --server to specify a custom server URL.

Examples:
  lectern api health                         # Check server health
  lectern api presentations list             # List presentations
  lectern api presentations export <id>      # Export a deck to .pptx`,
}

var presentationsCmd = &cobra.Command{
	Use:   "presentations",
	Short: "Presentation management commands",
}

var exportsCmd = &cobra.Command{
	Use:   "exports",
	Short: "Export job commands",
}

// getServerURL returns the server URL at runtime (after flag parsing).
func getServerURL() string {
	return serverURL
}

func init() {
	// Add --server flag to api command (persistent so all subcommands inherit it)
	apiCmd.PersistentFlags().StringVar(
		&serverURL, "server", "http://localhost:8666", "Server URL",
	)

	// Health endpoints at top level of api
	apiCmd.AddCommand((&endpoints.HealthEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.StatusEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.LibrarySongsEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.SwaggerEndpoint{}).Command(getServerURL))

	// Presentations as subcommand group
	presentationsCmd.AddCommand((&endpoints.CreatePresentationEndpoint{}).Command(getServerURL))
	presentationsCmd.AddCommand((&endpoints.ListPresentationsEndpoint{}).Command(getServerURL))
	presentationsCmd.AddCommand((&endpoints.GetPresentationEndpoint{}).Command(getServerURL))
	presentationsCmd.AddCommand((&endpoints.UpdatePresentationEndpoint{}).Command(getServerURL))
	presentationsCmd.AddCommand((&endpoints.DeletePresentationEndpoint{}).Command(getServerURL))
	presentationsCmd.AddCommand((&endpoints.ImportPresentationEndpoint{}).Command(getServerURL))
	presentationsCmd.AddCommand((&endpoints.AddReadingEndpoint{}).Command(getServerURL))
	presentationsCmd.AddCommand((&endpoints.UpdateReadingEndpoint{}).Command(getServerURL))
	presentationsCmd.AddCommand((&endpoints.DeleteReadingEndpoint{}).Command(getServerURL))
	presentationsCmd.AddCommand((&endpoints.FetchReadingsEndpoint{}).Command(getServerURL))
	presentationsCmd.AddCommand((&endpoints.AddSongEndpoint{}).Command(getServerURL))
	presentationsCmd.AddCommand((&endpoints.UpdateSongEndpoint{}).Command(getServerURL))
	presentationsCmd.AddCommand((&endpoints.DeleteSongEndpoint{}).Command(getServerURL))
	presentationsCmd.AddCommand((&endpoints.SetOrderEndpoint{}).Command(getServerURL))
	presentationsCmd.AddCommand((&endpoints.SlidesEndpoint{}).Command(getServerURL))
	presentationsCmd.AddCommand((&endpoints.StartExportEndpoint{}).Command(getServerURL))

	// Export jobs as subcommand group
	exportsCmd.AddCommand((&endpoints.ListExportsEndpoint{}).Command(getServerURL))
	exportsCmd.AddCommand((&endpoints.GetExportEndpoint{}).Command(getServerURL))
	exportsCmd.AddCommand((&endpoints.DownloadExportEndpoint{}).Command(getServerURL))

	apiCmd.AddCommand(presentationsCmd)
	apiCmd.AddCommand(exportsCmd)
	rootCmd.AddCommand(apiCmd)
}
