package internal

import (
	"testing"
	"time"
)

func TestFirstStreamCreationTime(t *testing.T) {
	cases := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{
			"fractional suffix",
			`{"streams":[{"tags":{"creation_time":"2024-03-05T14:30:00.000000Z"}}]}`,
			"2024-03-05T14:30:00.000000Z",
			true,
		},
		{
			"multiple streams uses first",
			`{"streams":[{"tags":{"creation_time":"2024-03-05T14:30:00.000000Z"}},{"tags":{"creation_time":"1999-01-01T00:00:00.000000Z"}}]}`,
			"2024-03-05T14:30:00.000000Z",
			true,
		},
		{"no streams", `{"streams":[]}`, "", false},
		{"stream without tag", `{"streams":[{"tags":{}}]}`, "", false},
		{"not json", `ffprobe blew up`, "", false},
	}

	for _, tc := range cases {
		got, ok := firstStreamCreationTime([]byte(tc.raw))
		if ok != tc.wantOK {
			t.Errorf("%s: expected ok=%v, got %v", tc.name, tc.wantOK, ok)
			continue
		}
		if got != tc.want {
			t.Errorf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestParseCreationTime(t *testing.T) {
	want := time.Date(2024, 3, 5, 14, 30, 0, 0, time.Local)

	cases := []struct {
		val    string
		want   time.Time
		wantOK bool
	}{
		{"2024-03-05T14:30:00.000000Z", want, true},
		{"2024-03-05T14:30:00.123456789Z", want, true},
		{"2024-03-05T14:30:00", want, true},
		// No fractional dot to cut, trailing zone designator survives
		// and the value is rejected rather than guessed at.
		{"2024-03-05T14:30:00Z", time.Time{}, false},
		{"2024-03-05 14:30:00", time.Time{}, false},
		{"garbage", time.Time{}, false},
		{"", time.Time{}, false},
	}

	for _, tc := range cases {
		got, ok := parseCreationTime(tc.val)
		if ok != tc.wantOK {
			t.Errorf("%q: expected ok=%v, got %v", tc.val, tc.wantOK, ok)
			continue
		}
		if ok && !got.Equal(tc.want) {
			t.Errorf("%q: expected %v, got %v", tc.val, tc.want, got)
		}
	}
}

func TestFFprobeSource_MissingBinary(t *testing.T) {
	logger, _ := testLogger(t)
	src := &FFprobeSource{Binary: "/nonexistent/ffprobe", Log: logger}

	_, ok := src.Extract(Media{SourcePath: "/in/a.mp4", Kind: KindVideo})
	if ok {
		t.Error("Expected no evidence when the probe binary is missing")
	}
}
