package internal

import (
	"testing"
	"time"
)

func TestFilenameSource_Patterns(t *testing.T) {
	logger, _ := testLogger(t)
	src := &FilenameSource{Patterns: DefaultPatterns, Log: logger}

	date := func(y int, mo time.Month, d, h, mi, s int) time.Time {
		return time.Date(y, mo, d, h, mi, s, 0, time.Local)
	}

	cases := []struct {
		filename string
		want     time.Time
		wantOK   bool
	}{
		{"IMG_20240305_143000.jpg", date(2024, 3, 5, 14, 30, 0), true},
		{"VID-20240305-143000.mp4", date(2024, 3, 5, 14, 30, 0), true},
		{"PXL_20240305_143000123.jpg", date(2024, 3, 5, 14, 30, 0), true},
		{"Screenshot_2024-03-05-14-30-00.png", date(2024, 3, 5, 14, 30, 0), true},
		{"screenshot-2024-03-05-14-30-00.png", date(2024, 3, 5, 14, 30, 0), true},
		{"2024-03-05 14.30.45.jpg", date(2024, 3, 5, 14, 30, 45), true},
		{"party_2024-03-05_14.30.45.jpg", date(2024, 3, 5, 14, 30, 45), true},
		{"20240305_143000.jpg", date(2024, 3, 5, 14, 30, 0), true},
		// Date-only patterns: time-of-day components default to zero.
		{"IMG-20240305-WA0012.jpg", date(2024, 3, 5, 0, 0, 0), true},
		{"telegram_2024-03-05.jpg", date(2024, 3, 5, 0, 0, 0), true},
		// Matched but invalid: month 13 must not normalize into 2025.
		{"IMG_20241305_143000.jpg", time.Time{}, false},
		// Matched but invalid: February 31st.
		{"IMG_20240231_143000.jpg", time.Time{}, false},
		// No pattern at all.
		{"holiday.jpg", time.Time{}, false},
		{"IMG_0001.jpg", time.Time{}, false},
	}

	for _, tc := range cases {
		m := Media{SourcePath: "/photos/" + tc.filename, Kind: KindImage}
		got, ok := src.Extract(m)
		if ok != tc.wantOK {
			t.Errorf("%s: expected ok=%v, got %v", tc.filename, tc.wantOK, ok)
			continue
		}
		if ok && !got.Equal(tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.filename, tc.want, got)
		}
	}
}

func TestFilenameSource_FirstMatchWins(t *testing.T) {
	logger, _ := testLogger(t)
	src := &FilenameSource{Patterns: DefaultPatterns, Log: logger}

	// Carries both a full timestamp and a bare date; the more specific
	// pattern comes first in the list, so the time-of-day must survive.
	m := Media{SourcePath: "IMG_20240305_143000 2024-03-05.jpg", Kind: KindImage}
	got, ok := src.Extract(m)
	if !ok {
		t.Fatal("Expected a match")
	}
	if got.Hour() != 14 || got.Minute() != 30 {
		t.Errorf("Expected 14:30 from the specific pattern, got %v", got)
	}
}

func TestBuildDate_MissingRequiredComponents(t *testing.T) {
	cases := []map[string]int{
		{},
		{"year": 2024},
		{"year": 2024, "month": 3},
		{"month": 3, "day": 5},
		{"hour": 14, "minute": 30, "second": 0},
	}

	for i, parts := range cases {
		if _, ok := buildDate(parts); ok {
			t.Errorf("case %d: expected failure for parts %v", i, parts)
		}
	}
}

func TestBuildDate_DefaultsTimeToMidnight(t *testing.T) {
	got, ok := buildDate(map[string]int{"year": 2024, "month": 3, "day": 5})
	if !ok {
		t.Fatal("Expected success")
	}
	want := time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}
