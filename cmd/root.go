package cmd

import (
	"github.com/spf13/cobra"
)

// Version is overridden at startup from the embedded VERSION file.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "narsil",
	Short: "Narsil media organizer",
	Long: `Narsil sorts photos and videos into a date-based library.

Each file's snap date is reconciled from embedded metadata and filename
patterns, then the file is copied to <library>/<year>/<month> under a
canonical, collision-free name.`,
}

func Execute() error {
	return rootCmd.Execute()
}

// ApplyVersion pushes the current Version onto the root command.
func ApplyVersion() {
	rootCmd.Version = Version
}
