package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// SummaryCache stores rendered summaries keyed by a digest of the settings
// and the input text, so unchanged inputs skip the ranking pass.
type SummaryCache struct {
	Dir         string
	StrictPerms bool
}

// KeyFrom builds a cache key from a settings fingerprint and the text.
func KeyFrom(settings string, text string) string {
	h := sha256.Sum256([]byte(settings + "\n\n" + text))
	return hex.EncodeToString(h[:])
}

func (c *SummaryCache) ensureDir() error {
	if c == nil || c.Dir == "" {
		return errors.New("cache dir not configured")
	}
	return mkdir(c.Dir, c.StrictPerms)
}

func (c *SummaryCache) pathFor(key string) string {
	return filepath.Join(c.Dir, key+summarySuffix)
}

// Get returns cached bytes if present. A hit refreshes the file mtime so
// PurgeByAge keeps summaries that are still in use.
func (c *SummaryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	if err := c.ensureDir(); err != nil {
		return nil, false, err
	}
	p := c.pathFor(key)
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, false, nil
	}
	now := time.Now()
	_ = os.Chtimes(p, now, now)
	return b, true, nil
}

// Save writes bytes to the cache.
func (c *SummaryCache) Save(_ context.Context, key string, data []byte) error {
	if err := c.ensureDir(); err != nil {
		return err
	}
	return os.WriteFile(c.pathFor(key), data, fileMode(c.StrictPerms))
}
