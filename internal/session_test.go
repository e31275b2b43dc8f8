package internal

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestNewSession(t *testing.T) {
	tempDir := t.TempDir()

	session, err := NewSession(tempDir, "/input/photos")
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	defer session.Close()

	// Verify session directory created
	if _, err := os.Stat(session.SessionDir); os.IsNotExist(err) {
		t.Errorf("Session directory not created: %s", session.SessionDir)
	}

	// Verify manifest file created
	manifestPath := filepath.Join(session.SessionDir, "manifest.jsonl")
	if _, err := os.Stat(manifestPath); os.IsNotExist(err) {
		t.Errorf("Manifest file not created: %s", manifestPath)
	}

	if session.InputDir != "/input/photos" {
		t.Errorf("Expected inputDir '/input/photos', got '%s'", session.InputDir)
	}
}

func TestSession_ManifestJSONL(t *testing.T) {
	tempDir := t.TempDir()

	session, err := NewSession(tempDir, "/input/photos")
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	defer session.Close()

	// Log one event of each kind
	if err := session.LogSessionStart(5); err != nil {
		t.Fatalf("LogSessionStart failed: %v", err)
	}
	if err := session.LogCopied("/input/a.jpg", "2024/3/2024-3-5-14h30_IMG1.jpg", "hash123", 1024, ""); err != nil {
		t.Fatalf("LogCopied failed: %v", err)
	}
	if err := session.LogSkippedDuplicate("/input/b.jpg", "2024/3/2024-3-5-14h30_IMG1.jpg", "hash123"); err != nil {
		t.Fatalf("LogSkippedDuplicate failed: %v", err)
	}
	if err := session.LogNoDate("/input/c.jpg", fmt.Errorf("%s: %w", "/input/c.jpg", ErrNoSnapDate)); err != nil {
		t.Fatalf("LogNoDate failed: %v", err)
	}
	if err := session.LogConflict("/input/d.jpg", fmt.Errorf("%s: %w", "/input/d.jpg", ErrDateConflict)); err != nil {
		t.Fatalf("LogConflict failed: %v", err)
	}
	if err := session.LogDetailedError("/input/e.jpg", CategorizeError("/input/e.jpg", errors.New("input/output error"))); err != nil {
		t.Fatalf("LogDetailedError failed: %v", err)
	}
	if err := session.LogSessionEnd(); err != nil {
		t.Fatalf("LogSessionEnd failed: %v", err)
	}

	// Close to flush
	session.Close()

	// Read and verify manifest
	manifestPath := filepath.Join(session.SessionDir, "manifest.jsonl")
	file, err := os.Open(manifestPath)
	if err != nil {
		t.Fatalf("Failed to open manifest: %v", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineCount := 0
	eventTypes := []string{}
	var end ManifestEvent

	for scanner.Scan() {
		lineCount++
		var event ManifestEvent
		if err := json.Unmarshal(scanner.Bytes(), &event); err != nil {
			t.Errorf("Failed to parse JSON line %d: %v", lineCount, err)
			continue
		}
		eventTypes = append(eventTypes, event.Event)
		if event.Event == "session_end" {
			end = event
		}
	}

	expectedEvents := []string{"session_start", "copied", "skipped_duplicate", "no_date", "conflict", "error", "session_end"}
	if lineCount != len(expectedEvents) {
		t.Errorf("Expected %d events, got %d", len(expectedEvents), lineCount)
	}
	for i, expected := range expectedEvents {
		if i >= len(eventTypes) || eventTypes[i] != expected {
			t.Errorf("Event %d: expected '%s', got '%s'", i, expected, eventTypes[i])
		}
	}

	// session_end carries the accumulated statistics
	if end.TotalScanned != 5 {
		t.Errorf("Expected total_scanned 5, got %d", end.TotalScanned)
	}
	if end.Copied != 1 || end.SkippedDuplicate != 1 || end.NoDate != 1 || end.Conflicts != 1 || end.ErrorCount != 1 {
		t.Errorf("Unexpected end stats: %+v", end)
	}
}

func TestSession_Stats(t *testing.T) {
	tempDir := t.TempDir()

	session, err := NewSession(tempDir, "/input")
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	defer session.Close()

	session.LogCopied("/a", "b", "hash1", 100, "")
	session.LogCopied("/c", "d", "hash2", 200, "")
	session.LogSkippedDuplicate("/e", "f", "hash3")
	session.LogNoDate("/g", ErrNoSnapDate)

	stats := session.Stats()

	if stats.Copied != 2 {
		t.Errorf("Expected 2 copied, got %d", stats.Copied)
	}
	if stats.SkippedDuplicate != 1 {
		t.Errorf("Expected 1 skipped, got %d", stats.SkippedDuplicate)
	}
	if stats.NoDate != 1 {
		t.Errorf("Expected 1 no_date, got %d", stats.NoDate)
	}
}

func TestSession_CreateHardlink_NoCollision(t *testing.T) {
	tempDir := t.TempDir()

	session, err := NewSession(tempDir, "/input")
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	defer session.Close()

	testFile := filepath.Join(tempDir, "2024-3-5-14h30_IMG1.jpg")
	if err := os.WriteFile(testFile, []byte("test data"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	browseName, err := session.CreateHardlink(testFile)
	if err != nil {
		t.Fatalf("CreateHardlink failed: %v", err)
	}

	if browseName != "2024-3-5-14h30_IMG1.jpg" {
		t.Errorf("Expected unchanged basename, got '%s'", browseName)
	}

	browsePath := filepath.Join(session.SessionDir, browseName)
	srcInfo, _ := os.Stat(testFile)
	destInfo, err := os.Stat(browsePath)
	if err != nil {
		t.Fatalf("Hardlink not created: %v", err)
	}
	if !os.SameFile(srcInfo, destInfo) {
		t.Errorf("Not a hardlink - different inodes")
	}
}

func TestSession_CreateHardlink_WithCollision(t *testing.T) {
	tempDir := t.TempDir()

	session, err := NewSession(tempDir, "/input")
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	defer session.Close()

	// Same basename out of different library months
	file1 := filepath.Join(tempDir, "2024", "3", "photo.jpg")
	file2 := filepath.Join(tempDir, "2024", "4", "photo.jpg")
	os.MkdirAll(filepath.Dir(file1), 0755)
	os.MkdirAll(filepath.Dir(file2), 0755)
	os.WriteFile(file1, []byte("march"), 0644)
	os.WriteFile(file2, []byte("april"), 0644)

	b1, err := session.CreateHardlink(file1)
	if err != nil {
		t.Fatalf("CreateHardlink 1 failed: %v", err)
	}
	b2, err := session.CreateHardlink(file2)
	if err != nil {
		t.Fatalf("CreateHardlink 2 failed: %v", err)
	}

	if b1 != "photo.jpg" {
		t.Errorf("Expected 'photo.jpg', got '%s'", b1)
	}
	if b2 != "photo_2.jpg" {
		t.Errorf("Expected 'photo_2.jpg', got '%s'", b2)
	}
}
