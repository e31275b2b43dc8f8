package internal

import (
	"os"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// exifTimeLayout is the EXIF ASCII datetime format.
const exifTimeLayout = "2006:01:02 15:04:05"

// exifDateTags is the lookup order for capture timestamps, by ascending
// tag id. The first tag present wins; a malformed value in it means no
// evidence, not a fall-through to the next tag.
var exifDateTags = []exif.FieldName{
	exif.DateTime,
	exif.DateTimeOriginal,
	exif.DateTimeDigitized,
}

// ExifSource reads the capture date from embedded EXIF metadata.
type ExifSource struct {
	Log *Logger
}

func (s *ExifSource) Name() string { return "exif" }

func (s *ExifSource) Extract(m Media) (time.Time, bool) {
	f, err := os.Open(m.SourcePath)
	if err != nil {
		s.Log.Debugf("%s: cannot open for EXIF: %v", m.SourcePath, err)
		return time.Time{}, false
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return time.Time{}, false
	}

	for _, tagName := range exifDateTags {
		tag, err := x.Get(tagName)
		if err != nil {
			continue
		}
		val, err := tag.StringVal()
		if err != nil {
			continue
		}
		t, ok := parseExifTime(val)
		if !ok {
			s.Log.Warnf("%s: invalid date in EXIF data (%q), ignoring", m.SourcePath, val)
			return time.Time{}, false
		}
		return t, true
	}
	return time.Time{}, false
}

// parseExifTime parses an EXIF datetime string. EXIF timestamps carry no
// timezone; they are interpreted as local time so they compare cleanly
// against filename-derived dates.
func parseExifTime(val string) (time.Time, bool) {
	t, err := time.ParseInLocation(exifTimeLayout, val, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
