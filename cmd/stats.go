package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"narsil/internal"
)

var (
	formatFlag     string
	statsExifTool  bool
	statsMtimeFlag bool
)

var statsCmd = &cobra.Command{
	Use:   "stats [folder]",
	Short: "Analyze how a folder's media files would reconcile",
	Long: `Scan a folder and report, without copying anything, how each media
file's snap date would be determined: which evidence source decides,
how files spread across years, and which files cannot be resolved.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		folder := args[0]

		info, err := os.Stat(folder)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("folder does not exist or is not a directory: %s", folder)
		}

		conf, err := internal.LoadConfig()
		if err != nil {
			return err
		}
		if statsExifTool {
			conf.UseExifTool = true
		}
		if statsMtimeFlag {
			conf.MtimeFallback = true
		}

		resolver, err := internal.NewResolver(conf, nil)
		if err != nil {
			return err
		}
		defer resolver.Close()

		results, err := internal.AnalyzeFolder(folder, conf, resolver)
		if err != nil {
			return fmt.Errorf("failed to analyze folder: %w", err)
		}

		return internal.DisplayStats(results, &internal.StatsOptions{Format: formatFlag})
	},
}

func init() {
	statsCmd.Flags().StringVar(&formatFlag, "format", "table", "Output format: table, json")
	statsCmd.Flags().BoolVar(&statsExifTool, "exiftool", false, "Force use of the exiftool binary for metadata")
	statsCmd.Flags().BoolVar(&statsMtimeFlag, "mtime-fallback", false, "Count mtime fallback as a source")

	rootCmd.AddCommand(statsCmd)
}
