package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Session manages one organize run: a session directory under the
// library, a JSONL manifest of everything that happened, running
// statistics and optional browse hardlinks. Nothing here survives into
// the next run; a fresh session starts empty.
type Session struct {
	ID            string   // Session ID (timestamp: 2025-01-15-103045)
	LibraryPath   string   // Library root path
	SessionDir    string   // Full path to session directory
	ManifestFile  *os.File // Open file handle for manifest.jsonl
	InputDir      string   // Original input directory
	usedFilenames map[string]int
	stats         SessionStats
}

// SessionStats tracks statistics for one organize run
type SessionStats struct {
	TotalScanned     int
	Copied           int
	SkippedDuplicate int
	NoDate           int
	Conflicts        int
	Errors           int
}

// ManifestEvent represents a single event in the manifest log
type ManifestEvent struct {
	Event    string `json:"event"`
	Ts       string `json:"ts"`
	Src      string `json:"src,omitempty"`
	Dest     string `json:"dest,omitempty"`
	Hash     string `json:"hash,omitempty"`
	Browse   string `json:"browse,omitempty"`
	Size     int64  `json:"size,omitempty"`
	Existing string `json:"existing,omitempty"`
	Error    string `json:"error,omitempty"`

	// Error details (for categorized errors)
	ErrorCategory   string `json:"error_category,omitempty"`
	ErrorSeverity   string `json:"error_severity,omitempty"`
	ErrorSuggestion string `json:"error_suggestion,omitempty"`

	// Session start/end fields
	InputDir         string `json:"input_dir,omitempty"`
	TotalFiles       int    `json:"total_files,omitempty"`
	TotalScanned     int    `json:"total_scanned,omitempty"`
	Copied           int    `json:"copied,omitempty"`
	SkippedDuplicate int    `json:"skipped_duplicate,omitempty"`
	NoDate           int    `json:"no_date,omitempty"`
	Conflicts        int    `json:"conflicts,omitempty"`
	ErrorCount       int    `json:"errors,omitempty"`
}

// NewSession creates a new organize session under <library>/sessions.
func NewSession(libraryPath, inputDir string) (*Session, error) {
	sessionID := time.Now().Format("2006-01-02-150405")

	sessionsDir := filepath.Join(libraryPath, "sessions")
	sessionDir := filepath.Join(sessionsDir, sessionID)

	if err := os.MkdirAll(sessionDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	manifestPath := filepath.Join(sessionDir, "manifest.jsonl")
	manifestFile, err := os.OpenFile(manifestPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create manifest file: %w", err)
	}

	return &Session{
		ID:            sessionID,
		LibraryPath:   libraryPath,
		SessionDir:    sessionDir,
		ManifestFile:  manifestFile,
		InputDir:      inputDir,
		usedFilenames: make(map[string]int),
	}, nil
}

// LogSessionStart writes the session start event to the manifest
func (s *Session) LogSessionStart(totalFiles int) error {
	s.stats.TotalScanned = totalFiles

	event := ManifestEvent{
		Event:      "session_start",
		Ts:         time.Now().UTC().Format(time.RFC3339),
		InputDir:   s.InputDir,
		TotalFiles: totalFiles,
	}

	return s.writeEvent(event)
}

// LogCopied logs a successful file copy
func (s *Session) LogCopied(src, dest, hash string, size int64, browsePath string) error {
	s.stats.Copied++

	event := ManifestEvent{
		Event:  "copied",
		Ts:     time.Now().UTC().Format(time.RFC3339),
		Src:    src,
		Dest:   dest,
		Hash:   hash,
		Browse: browsePath,
		Size:   size,
	}

	return s.writeEvent(event)
}

// LogSkippedDuplicate logs a file skipped because the library already
// holds identical content
func (s *Session) LogSkippedDuplicate(src, existing, hash string) error {
	s.stats.SkippedDuplicate++

	event := ManifestEvent{
		Event:    "skipped_duplicate",
		Ts:       time.Now().UTC().Format(time.RFC3339),
		Src:      src,
		Existing: existing,
		Hash:     hash,
	}

	return s.writeEvent(event)
}

// LogNoDate logs a file skipped because no snap date could be determined
func (s *Session) LogNoDate(src string, err error) error {
	s.stats.NoDate++

	event := ManifestEvent{
		Event: "no_date",
		Ts:    time.Now().UTC().Format(time.RFC3339),
		Src:   src,
		Error: err.Error(),
	}

	return s.writeEvent(event)
}

// LogConflict logs a file skipped because its date sources disagree
func (s *Session) LogConflict(src string, err error) error {
	s.stats.Conflicts++

	event := ManifestEvent{
		Event: "conflict",
		Ts:    time.Now().UTC().Format(time.RFC3339),
		Src:   src,
		Error: err.Error(),
	}

	return s.writeEvent(event)
}

// LogDetailedError logs a categorized error with full details
func (s *Session) LogDetailedError(src string, procErr *ProcessError) error {
	s.stats.Errors++

	event := ManifestEvent{
		Event:           "error",
		Ts:              time.Now().UTC().Format(time.RFC3339),
		Src:             src,
		Error:           procErr.OriginalErr.Error(),
		ErrorCategory:   string(procErr.Category),
		ErrorSeverity:   string(procErr.Severity),
		ErrorSuggestion: procErr.Suggestion,
	}

	if dest, ok := procErr.Context["dest"]; ok {
		event.Dest = dest
	}
	if hash, ok := procErr.Context["hash"]; ok {
		event.Hash = hash
	}

	return s.writeEvent(event)
}

// LogSessionEnd writes the session end event with final statistics
func (s *Session) LogSessionEnd() error {
	event := ManifestEvent{
		Event:            "session_end",
		Ts:               time.Now().UTC().Format(time.RFC3339),
		TotalScanned:     s.stats.TotalScanned,
		Copied:           s.stats.Copied,
		SkippedDuplicate: s.stats.SkippedDuplicate,
		NoDate:           s.stats.NoDate,
		Conflicts:        s.stats.Conflicts,
		ErrorCount:       s.stats.Errors,
	}

	return s.writeEvent(event)
}

// CreateHardlink creates a hardlink in the session directory for
// browsing this run's files in one flat folder. It returns the basename
// used, with a collision suffix when two organized files share a name.
func (s *Session) CreateHardlink(libraryFilePath string) (string, error) {
	basename := filepath.Base(libraryFilePath)

	count, exists := s.usedFilenames[basename]
	finalBasename := basename

	if exists {
		ext := filepath.Ext(basename)
		nameNoExt := strings.TrimSuffix(basename, ext)
		finalBasename = fmt.Sprintf("%s_%d%s", nameNoExt, count+1, ext)
	}

	s.usedFilenames[basename] = count + 1

	browsePath := filepath.Join(s.SessionDir, finalBasename)
	if err := os.Link(libraryFilePath, browsePath); err != nil {
		return "", fmt.Errorf("hardlink failed: %w", err)
	}

	return finalBasename, nil
}

// Stats returns the current session statistics
func (s *Session) Stats() SessionStats {
	return s.stats
}

// Close closes the manifest file and session
func (s *Session) Close() error {
	if s.ManifestFile != nil {
		return s.ManifestFile.Close()
	}
	return nil
}

// writeEvent writes a manifest event as a JSON line
func (s *Session) writeEvent(event ManifestEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if _, err := s.ManifestFile.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write to manifest: %w", err)
	}

	// Flush to ensure data is written
	return s.ManifestFile.Sync()
}
