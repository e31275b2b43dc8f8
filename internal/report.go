package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"
)

// StatsOptions contains configuration for folder analysis
type StatsOptions struct {
	Format string // table or json
}

// StatsResults summarizes how a folder's media would reconcile, without
// copying anything.
type StatsResults struct {
	FolderPath string `json:"folder_path"`
	TotalFiles int    `json:"total_files"`
	Images     int    `json:"images"`
	Videos     int    `json:"videos"`

	ByOutcome map[Outcome]int `json:"by_outcome"`
	ByYear    map[int]int     `json:"by_year"`

	Failures []FailureInfo `json:"failures,omitempty"`

	ScanDuration time.Duration `json:"scan_duration"`
}

// FailureInfo records one file that could not be reconciled
type FailureInfo struct {
	Path   string  `json:"path"`
	Reason Outcome `json:"reason"`
	Error  string  `json:"error"`
}

// AnalyzeFolder scans folder and runs the resolver over every media file,
// recording outcome and per-year distributions. It performs no writes.
func AnalyzeFolder(folder string, cfg *Config, r *Resolver) (*StatsResults, error) {
	start := time.Now()

	files, err := ScanMediaFiles(folder, cfg)
	if err != nil {
		return nil, err
	}

	results := &StatsResults{
		FolderPath: folder,
		TotalFiles: len(files),
		ByOutcome:  make(map[Outcome]int),
		ByYear:     make(map[int]int),
	}

	for _, m := range files {
		switch m.Kind {
		case KindImage:
			results.Images++
		case KindVideo:
			results.Videos++
		}

		res := r.ResolveDetailed(m)
		results.ByOutcome[res.Outcome]++
		if res.Err != nil {
			results.Failures = append(results.Failures, FailureInfo{
				Path:   m.SourcePath,
				Reason: res.Outcome,
				Error:  res.Err.Error(),
			})
			continue
		}
		results.ByYear[res.Snap.Year()]++
	}

	results.ScanDuration = time.Since(start)
	return results, nil
}

// DisplayStats prints results in the requested format
func DisplayStats(results *StatsResults, opts *StatsOptions) error {
	if opts.Format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	fmt.Printf("Folder: %s\n", results.FolderPath)
	fmt.Printf("Media files: %d (%d images, %d videos)\n\n", results.TotalFiles, results.Images, results.Videos)

	fmt.Println("Reconciliation outcomes:")
	for _, outcome := range []Outcome{
		OutcomeMetadataOnly, OutcomeFilenameOnly, OutcomeAgreement,
		OutcomeLooseMatch, OutcomeFallback, OutcomeConflict, OutcomeNoDate,
	} {
		if count := results.ByOutcome[outcome]; count > 0 {
			fmt.Printf("  %-14s %d\n", outcome, count)
		}
	}

	if len(results.ByYear) > 0 {
		years := make([]int, 0, len(results.ByYear))
		for y := range results.ByYear {
			years = append(years, y)
		}
		sort.Ints(years)

		fmt.Println("\nFiles per year:")
		for _, y := range years {
			fmt.Printf("  %d  %d\n", y, results.ByYear[y])
		}
	}

	if len(results.Failures) > 0 {
		fmt.Printf("\nUnresolvable files (%d):\n", len(results.Failures))
		for _, f := range results.Failures {
			fmt.Printf("  %s (%s)\n", f.Path, f.Reason)
		}
	}

	fmt.Printf("\nScan took %s\n", results.ScanDuration.Round(time.Millisecond))
	return nil
}
