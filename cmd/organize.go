package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"narsil/internal"
)

var (
	libraryFlag    string
	dryRunFlag     bool
	onConflictFlag string
	mtimeFlag      bool
	useExifTool    bool
	verboseFlag    bool
)

var organizeCmd = &cobra.Command{
	Use:   "organize [folder]",
	Short: "Organize media files from folder into the library",
	Args:  cobra.ExactArgs(1),
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

		// Flags override config.
		if libraryFlag != "" {
			conf.Library = libraryFlag
		}
		if onConflictFlag != "" {
			conf.OnConflict = onConflictFlag
		}
		if mtimeFlag {
			conf.MtimeFallback = true
		}
		if useExifTool {
			conf.UseExifTool = true
		}

		if conf.Library == "" {
			return fmt.Errorf("missing --library and no default set")
		}

		logger, err := internal.NewLogger("narsil.log")
		if err != nil {
			return err
		}
		logger.Verbose = verboseFlag
		defer logger.Close()

		files, err := internal.ScanMediaFiles(folder, conf)
		if err != nil {
			return err
		}

		fmt.Printf("Found %d media files\n", len(files))
		if dryRunFlag {
			fmt.Println("Dry run mode: no files will be copied")
		}

		return processFiles(files, conf, folder, dryRunFlag, logger)
	},
}

// processFiles runs the reconcile → assign → copy pipeline over files,
// with session tracking and abort heuristics. One file at a time flows
// through; a failing file is reported and skipped, never fatal on its
// own.
func processFiles(files []internal.Media, conf *internal.Config, inputDir string, dryRun bool, logger *internal.Logger) error {
	var sess *internal.Session
	if !dryRun {
		var err error
		sess, err = internal.NewSession(conf.Library, inputDir)
		if err != nil {
			return err
		}
		defer sess.Close()

		if err := sess.LogSessionStart(len(files)); err != nil {
			return err
		}
	}

	resolver, err := internal.NewResolver(conf, logger)
	if err != nil {
		return err
	}
	defer resolver.Close()

	stats := internal.NewErrorStats()

	for src, rel := range internal.AssignPaths(internal.ResolveAll(files, resolver, sess)) {
		if err := internal.PlaceFile(src, rel, conf, dryRun, sess, logger); err != nil {
			procErr := internal.CategorizeError(src, err)
			fmt.Printf("Error processing %s: %v\n", src, err)
			logger.Warnf("%v", procErr)
			if sess != nil {
				sess.LogDetailedError(src, procErr)
			}
			stats.Add(procErr)
			if abort, reason := stats.ShouldAbort(); abort {
				if sess != nil {
					sess.LogSessionEnd()
				}
				return fmt.Errorf("aborting: %s", reason)
			}
			continue
		}
		stats.ResetConsecutive()
	}

	if sess != nil {
		if err := sess.LogSessionEnd(); err != nil {
			return err
		}
		s := sess.Stats()
		fmt.Printf("Copied %d, skipped %d duplicates, %d without a date, %d conflicts\n",
			s.Copied, s.SkippedDuplicate, s.NoDate, s.Conflicts)
	}

	if stats.Total > 0 {
		fmt.Print(stats.GenerateReport())
	}

	return nil
}

func init() {
	organizeCmd.Flags().StringVar(&libraryFlag, "library", "", "Root library folder")
	organizeCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Show destinations without copying")
	organizeCmd.Flags().StringVar(&onConflictFlag, "on-conflict", "", "When metadata and filename dates disagree: fail or metadata")
	organizeCmd.Flags().BoolVar(&mtimeFlag, "mtime-fallback", false, "Use file modification time when no other date is found")
	organizeCmd.Flags().BoolVar(&useExifTool, "exiftool", false, "Force use of the exiftool binary for metadata")
	organizeCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Verbose logging")

	rootCmd.AddCommand(organizeCmd)
}
