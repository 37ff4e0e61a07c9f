package cache

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ClearDir removes the directory and all contents, then recreates it empty.
func ClearDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return errors.New("empty dir")
	}
	if err := os.RemoveAll(dir); err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}

// PurgeByAge removes cache entries older than maxAge and returns how many
// were removed. Pages expire by the SavedAt in their meta file (meta and body
// go together); summaries expire by file modification time. A non-positive
// maxAge disables purging.
func PurgeByAge(dir string, maxAge time.Duration) (int, error) {
	if maxAge <= 0 {
		return 0, nil
	}
	now := time.Now().UTC()
	removed := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		switch {
		case strings.HasSuffix(name, metaSuffix):
			b, err := os.ReadFile(path)
			if err != nil {
				return nil // skip unreadable
			}
			var e PageEntry
			if err := json.Unmarshal(b, &e); err != nil {
				return nil // skip malformed
			}
			if now.Sub(e.SavedAt) <= maxAge {
				return nil
			}
			removed++
			_ = os.Remove(path)
			_ = os.Remove(strings.TrimSuffix(path, metaSuffix) + bodySuffix)
		case strings.HasSuffix(name, summarySuffix):
			info, err := d.Info()
			if err != nil {
				return nil
			}
			if now.Sub(info.ModTime().UTC()) <= maxAge {
				return nil
			}
			removed++
			_ = os.Remove(path)
		}
		return nil
	})
	return removed, err
}
