package internal

import (
	"os"
	"path/filepath"
	"testing"
)

func testConfig(library string) *Config {
	return &Config{
		Library:    library,
		ImageExt:   []string{".jpg", ".jpeg", ".png", ".tif", ".tiff"},
		VideoExt:   []string{".mp4", ".mov"},
		OnConflict: "fail",
	}
}

func TestMedia_CanonicalExtension(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"photo.JPEG", "jpg"},
		{"photo.jpeg", "jpg"},
		{"clip.TIFF", "tif"},
		{"scan.tiff", "tif"},
		{"photo.JPG", "jpg"},
		{"shot.PNG", "png"},
		{"clip.MOV", "mov"},
		{"clip.mp4", "mp4"},
	}

	for _, tc := range cases {
		m := Media{SourcePath: "/in/" + tc.path}
		if got := m.Ext(); got != tc.want {
			t.Errorf("%s: expected %q, got %q", tc.path, tc.want, got)
		}
	}
}

func TestKindForPath(t *testing.T) {
	cfg := testConfig("")

	cases := []struct {
		path string
		want Kind
	}{
		{"/in/a.jpg", KindImage},
		{"/in/a.JPG", KindImage},
		{"/in/b.mp4", KindVideo},
		{"/in/b.MOV", KindVideo},
		{"/in/c.txt", KindUnknown},
		{"/in/noext", KindUnknown},
	}

	for _, tc := range cases {
		if got := KindForPath(tc.path, cfg); got != tc.want {
			t.Errorf("%s: expected kind %d, got %d", tc.path, tc.want, got)
		}
	}
}

func TestMedia_TypeTag(t *testing.T) {
	if got := (Media{Kind: KindImage}).TypeTag(); got != "IMG" {
		t.Errorf("Expected IMG, got %s", got)
	}
	if got := (Media{Kind: KindVideo}).TypeTag(); got != "VID" {
		t.Errorf("Expected VID, got %s", got)
	}
}

func TestScanMediaFiles(t *testing.T) {
	tempDir := t.TempDir()
	cfg := testConfig("")

	paths := []string{
		"a.jpg",
		"sub/b.mp4",
		"sub/readme.txt",
		"c.PNG",
		"notes.md",
	}
	for _, p := range paths {
		full := filepath.Join(tempDir, p)
		os.MkdirAll(filepath.Dir(full), 0755)
		if err := os.WriteFile(full, []byte("x"), 0644); err != nil {
			t.Fatalf("Failed to create %s: %v", p, err)
		}
	}

	files, err := ScanMediaFiles(tempDir, cfg)
	if err != nil {
		t.Fatalf("ScanMediaFiles failed: %v", err)
	}

	if len(files) != 3 {
		t.Fatalf("Expected 3 media files, got %d", len(files))
	}

	// Walk order is lexical: a.jpg, c.PNG, sub/b.mp4
	if filepath.Base(files[0].SourcePath) != "a.jpg" {
		t.Errorf("Expected a.jpg first, got %s", files[0].SourcePath)
	}
	if filepath.Base(files[1].SourcePath) != "c.PNG" {
		t.Errorf("Expected c.PNG second, got %s", files[1].SourcePath)
	}
	if files[2].Kind != KindVideo {
		t.Errorf("Expected b.mp4 classified as video")
	}
}
