package internal

import (
	"os"
	"time"
)

// MtimeSource falls back to the file's modification time. It is only
// consulted when every other source came up empty, and only when enabled
// in the config: an mtime says when a file was last copied around, not
// when the shot was taken.
type MtimeSource struct{}

func (MtimeSource) Name() string { return "mtime" }

func (MtimeSource) Extract(m Media) (time.Time, bool) {
	fi, err := os.Stat(m.SourcePath)
	if err != nil {
		return time.Time{}, false
	}
	return fi.ModTime(), true
}
