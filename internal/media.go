package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Kind classifies a media file by its extension.
type Kind int

const (
	KindUnknown Kind = iota
	KindImage
	KindVideo
)

// Media represents one file under consideration for organizing. It is
// transient: built per discovered file, dropped once its destination has
// been decided.
type Media struct {
	SourcePath string
	Kind       Kind
}

// NewMedia builds a Media for path, classifying it against the configured
// extension lists.
func NewMedia(path string, cfg *Config) Media {
	return Media{SourcePath: path, Kind: KindForPath(path, cfg)}
}

// KindForPath classifies a path by extension. Unlisted extensions map to
// KindUnknown.
func KindForPath(path string, cfg *Config) Kind {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range cfg.ImageExt {
		if ext == e {
			return KindImage
		}
	}
	for _, e := range cfg.VideoExt {
		if ext == e {
			return KindVideo
		}
	}
	return KindUnknown
}

// Ext returns the canonical extension without the leading dot: jpeg and
// tiff collapse to their three-letter forms, everything else is lowercased
// unchanged.
func (m Media) Ext() string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(m.SourcePath), "."))
	switch ext {
	case "jpeg":
		return "jpg"
	case "tiff":
		return "tif"
	}
	return ext
}

// TypeTag returns the tag embedded in organized filenames.
func (m Media) TypeTag() string {
	if m.Kind == KindVideo {
		return "VID"
	}
	return "IMG"
}

func (m Media) String() string {
	return m.SourcePath
}

// ScanMediaFiles scans input directory recursively for media files based
// on the configured extensions. filepath.Walk visits entries in lexical
// order, so the result is deterministic for a given tree.
func ScanMediaFiles(inputDir string, cfg *Config) ([]Media, error) {
	var files []Media
	err := filepath.Walk(inputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if kind := KindForPath(path, cfg); kind != KindUnknown {
			files = append(files, Media{SourcePath: path, Kind: kind})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning files: %w", err)
	}
	return files, nil
}
