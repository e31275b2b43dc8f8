package internal

import (
	"encoding/json"
	"os/exec"
	"strings"
	"time"
)

// creationTimeLayout is the ISO-like format ffprobe reports for the
// creation_time tag, minus the fractional-second suffix.
const creationTimeLayout = "2006-01-02T15:04:05"

// ffprobeOutput is the subset of ffprobe's -show_streams JSON we care
// about.
type ffprobeOutput struct {
	Streams []struct {
		Tags struct {
			CreationTime string `json:"creation_time"`
		} `json:"tags"`
	} `json:"streams"`
}

// FFprobeSource reads a video's creation time from its container
// metadata via the ffprobe binary.
type FFprobeSource struct {
	Binary string // defaults to "ffprobe"
	Log    *Logger
}

func (s *FFprobeSource) Name() string { return "ffprobe" }

func (s *FFprobeSource) Extract(m Media) (time.Time, bool) {
	binary := s.Binary
	if binary == "" {
		binary = "ffprobe"
	}

	out, err := exec.Command(binary,
		"-v", "quiet",
		"-print_format", "json",
		"-show_streams",
		m.SourcePath).Output()
	if err != nil {
		s.Log.Debugf("%s: ffprobe failed: %v", m.SourcePath, err)
		return time.Time{}, false
	}

	val, ok := firstStreamCreationTime(out)
	if !ok {
		return time.Time{}, false
	}

	t, ok := parseCreationTime(val)
	if !ok {
		s.Log.Warnf("%s: invalid date in video metadata (%q), ignoring", m.SourcePath, val)
		return time.Time{}, false
	}
	return t, true
}

// firstStreamCreationTime pulls the first stream's creation_time tag out
// of raw ffprobe JSON.
func firstStreamCreationTime(raw []byte) (string, bool) {
	var probe ffprobeOutput
	if err := json.Unmarshal(raw, &probe); err != nil {
		return "", false
	}
	if len(probe.Streams) == 0 {
		return "", false
	}
	val := probe.Streams[0].Tags.CreationTime
	return val, val != ""
}

// parseCreationTime parses a creation_time value such as
// 2024-03-05T14:30:00.000000Z. Everything from the fractional dot on is
// discarded before parsing.
func parseCreationTime(val string) (time.Time, bool) {
	val, _, _ = strings.Cut(val, ".")
	t, err := time.ParseInLocation(creationTimeLayout, val, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
