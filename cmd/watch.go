package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"narsil/internal"
)

var watchLibraryFlag string

var watchCmd = &cobra.Command{
	Use:   "watch [folder]",
	Short: "Watch an inbox folder and organize media files as they arrive",
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
		if watchLibraryFlag != "" {
			conf.Library = watchLibraryFlag
		}

		logger, err := internal.NewLogger("narsil.log")
		if err != nil {
			return err
		}
		defer logger.Close()

		resolver, err := internal.NewResolver(conf, logger)
		if err != nil {
			return err
		}
		defer resolver.Close()

		watcher, err := internal.NewWatcher(folder, conf)
		if err != nil {
			return err
		}
		defer watcher.Close()

		// One assigner for the lifetime of the watch: names handed out
		// stay reserved until the process exits.
		assigner := internal.NewAssigner()

		fmt.Printf("Watching %s, organizing into %s\n", folder, conf.Library)

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

		for {
			select {
			case ev := <-watcher.Events():
				if ev.Type != internal.EventCreate {
					continue
				}
				// Give the writer a moment to finish the file.
				time.Sleep(500 * time.Millisecond)

				m := internal.NewMedia(ev.Path, conf)
				snap, err := resolver.Resolve(m)
				if err != nil {
					logger.Warnf("skipping %v", err)
					continue
				}

				rel := assigner.Assign(m, snap)
				if err := internal.PlaceFile(ev.Path, rel, conf, false, nil, logger); err != nil {
					logger.Warnf("failed to organize %s: %v", ev.Path, err)
				}

			case err := <-watcher.Errors():
				logger.Warnf("watcher error: %v", err)

			case <-sigs:
				fmt.Println("Stopping watcher")
				return nil
			}
		}
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchLibraryFlag, "library", "", "Root library folder")

	rootCmd.AddCommand(watchCmd)
}
