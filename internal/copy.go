package internal

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// fileHash computes SHA256 hash of a file content
func fileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// safeDestPath generates a safe new path if dest exists by appending _2, _3...
func safeDestPath(dest string) string {
	ext := filepath.Ext(dest)
	base := dest[:len(dest)-len(ext)]
	for i := 2; ; i++ {
		try := fmt.Sprintf("%s_%d%s", base, i, ext)
		if _, err := os.Stat(try); os.IsNotExist(err) {
			return try
		}
	}
}

// copyFileAtomic copies a file atomically (copy temp → rename)
func copyFileAtomic(src, dest string) error {
	tmp := dest + ".tmp"
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	out.Close()

	return os.Rename(tmp, dest)
}

// PlaceFile copies src into the library at relPath, as computed by the
// assigner, creating directories as needed.
//
// The assigner's used-path set guarantees uniqueness within a run, but
// the library may already hold files from earlier runs: an on-disk
// collision with identical content is skipped as a duplicate, different
// content gets a _2-style suffix.
func PlaceFile(src, relPath string, cfg *Config, dryRun bool, sess *Session, log *Logger) error {
	destPath := filepath.Join(cfg.Library, relPath)

	if dryRun {
		fmt.Printf("[dry-run] would copy %s → %s\n", src, destPath)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", filepath.Dir(destPath), err)
	}

	srcHash, err := fileHash(src)
	if err != nil {
		return fmt.Errorf("failed to hash src file %s: %w", src, err)
	}

	if _, err := os.Stat(destPath); err == nil {
		destHash, err := fileHash(destPath)
		if err != nil {
			return fmt.Errorf("failed to hash dest file %s: %w", destPath, err)
		}
		if srcHash == destHash {
			log.Infof("skipping duplicate file: %s", src)
			if sess != nil {
				sess.LogSkippedDuplicate(src, destPath, srcHash)
			}
			return nil
		}
		destPath = safeDestPath(destPath)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to stat %s: %w", destPath, err)
	}

	if err := copyFileAtomic(src, destPath); err != nil {
		return fmt.Errorf("failed to copy file %s to %s: %w", src, destPath, err)
	}

	destHash, err := fileHash(destPath)
	if err != nil {
		return fmt.Errorf("failed to hash copied file %s: %w", destPath, err)
	}
	if destHash != srcHash {
		return fmt.Errorf("hash verification failed after copying %s to %s", src, destPath)
	}

	log.Infof("copied %s → %s", src, destPath)

	if sess != nil {
		var size int64
		if fi, err := os.Stat(destPath); err == nil {
			size = fi.Size()
		}

		browse := ""
		if cfg.UseHardlinks {
			name, err := sess.CreateHardlink(destPath)
			if err != nil {
				log.Warnf("browse hardlink for %s: %v", destPath, err)
			} else {
				browse = name
			}
		}
		sess.LogCopied(src, destPath, srcHash, size, browse)
	}

	return nil
}
