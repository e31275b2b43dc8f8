package internal

import (
	"fmt"
	"time"

	exiftool "github.com/barasher/go-exiftool"
)

// exifToolDateTags is the tag preference order when extracting through
// exiftool.
var exifToolDateTags = []string{"DateTimeOriginal", "CreateDate", "ModifyDate"}

// ExifToolSource extracts capture dates through a long-lived exiftool
// process. It handles both images and videos, at the cost of requiring
// the exiftool binary on PATH.
type ExifToolSource struct {
	et  *exiftool.Exiftool
	Log *Logger
}

func NewExifToolSource(log *Logger) (*ExifToolSource, error) {
	et, err := exiftool.NewExiftool()
	if err != nil {
		return nil, fmt.Errorf("failed to start exiftool: %w", err)
	}
	return &ExifToolSource{et: et, Log: log}, nil
}

func (s *ExifToolSource) Name() string { return "exiftool" }

func (s *ExifToolSource) Extract(m Media) (time.Time, bool) {
	metas := s.et.ExtractMetadata(m.SourcePath)
	if len(metas) == 0 {
		return time.Time{}, false
	}
	meta := metas[0]
	if meta.Err != nil {
		s.Log.Debugf("%s: exiftool failed: %v", m.SourcePath, meta.Err)
		return time.Time{}, false
	}

	for _, tag := range exifToolDateTags {
		val, err := meta.GetString(tag)
		if err != nil {
			continue
		}
		// exiftool may append a timezone offset; the bare datetime is
		// always the first 19 characters.
		if len(val) > len(exifTimeLayout) {
			val = val[:len(exifTimeLayout)]
		}
		t, ok := parseExifTime(val)
		if !ok {
			s.Log.Warnf("%s: invalid date in %s tag (%q), ignoring", m.SourcePath, tag, val)
			return time.Time{}, false
		}
		return t, true
	}
	return time.Time{}, false
}

// Close shuts down the exiftool child process.
func (s *ExifToolSource) Close() error {
	return s.et.Close()
}
