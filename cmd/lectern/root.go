package main

import (
	"github.com/spf13/cobra"

	"github.com/liturgica/lectern/internal/api"
	"github.com/liturgica/lectern/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "lectern",
	Short: "Slide deck editor for Catholic mass celebrations",
	Long: `Lectern builds projection slide decks for Catholic mass celebrations.

It fetches the readings of the day from the liturgical calendar, manages
songs and their lyrics, assembles everything into ordered slides themed
by liturgical season, and exports the deck as a PowerPoint file.`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.lectern/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "lectern home directory (default: ~/.lectern)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}
