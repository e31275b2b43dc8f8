package internal

import (
	"path/filepath"
	"regexp"
	"strconv"
	"time"
)

// DefaultPatterns is the ordered list of filename patterns tried by
// FilenameSource. The first pattern that matches wins, however little it
// captures, so the more specific patterns come first. Patterns use the
// named groups year, month, day, hour, minute and second; groups a
// pattern does not define simply stay unset.
var DefaultPatterns = []*regexp.Regexp{
	// IMG_20240305_143000, VID-20240305-143000, PXL_20240305_143000123
	regexp.MustCompile(`(?i)(?:IMG|VID|PXL)[-_](?P<year>\d{4})(?P<month>\d{2})(?P<day>\d{2})[-_](?P<hour>\d{2})(?P<minute>\d{2})(?P<second>\d{2})`),
	// Screenshot_2024-03-05-14-30-00
	regexp.MustCompile(`(?i)Screenshot[-_](?P<year>\d{4})-(?P<month>\d{2})-(?P<day>\d{2})-(?P<hour>\d{2})-(?P<minute>\d{2})-(?P<second>\d{2})`),
	// 2024-03-05 14.30.00, 2024-03-05_14.30.00
	regexp.MustCompile(`(?P<year>\d{4})-(?P<month>\d{2})-(?P<day>\d{2})[ _](?P<hour>\d{2})\.(?P<minute>\d{2})\.(?P<second>\d{2})`),
	// 20240305_143000, 20240305-143000
	regexp.MustCompile(`(?P<year>\d{4})(?P<month>\d{2})(?P<day>\d{2})[-_](?P<hour>\d{2})(?P<minute>\d{2})(?P<second>\d{2})`),
	// WhatsApp: IMG-20240305-WA0012 (date only)
	regexp.MustCompile(`(?i)(?:IMG|VID)-(?P<year>\d{4})(?P<month>\d{2})(?P<day>\d{2})-WA`),
	// Bare date: 2024-03-05
	regexp.MustCompile(`(?P<year>\d{4})-(?P<month>\d{2})-(?P<day>\d{2})`),
}

// FilenameSource derives a snap date from date-like patterns in the
// file's basename.
type FilenameSource struct {
	Patterns []*regexp.Regexp
	Log      *Logger
}

func (s *FilenameSource) Name() string { return "filename" }

func (s *FilenameSource) Extract(m Media) (time.Time, bool) {
	name := filepath.Base(m.SourcePath)

	for _, re := range s.Patterns {
		match := re.FindStringSubmatch(name)
		if match == nil {
			continue
		}

		parts := make(map[string]int)
		for i, group := range re.SubexpNames() {
			if group == "" || match[i] == "" {
				continue
			}
			n, err := strconv.Atoi(match[i])
			if err != nil {
				return time.Time{}, false
			}
			parts[group] = n
		}

		t, ok := buildDate(parts)
		if !ok {
			s.Log.Warnf("%s: matched a date pattern but the components are not a valid date, ignoring", name)
			return time.Time{}, false
		}
		return t, true
	}
	return time.Time{}, false
}

// buildDate assembles a timestamp from matched components. Year, month
// and day are required; time-of-day components default to zero.
// Out-of-range values fail instead of normalizing into a neighboring
// date: time.Date would happily turn month 13 into January of the next
// year.
func buildDate(parts map[string]int) (time.Time, bool) {
	year, okY := parts["year"]
	month, okM := parts["month"]
	day, okD := parts["day"]
	if !okY || !okM || !okD {
		return time.Time{}, false
	}

	hour := parts["hour"]
	minute := parts["minute"]
	second := parts["second"]

	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.Local)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day ||
		t.Hour() != hour || t.Minute() != minute || t.Second() != second {
		return time.Time{}, false
	}
	return t, true
}
