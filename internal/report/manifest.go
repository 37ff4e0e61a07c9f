package report

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"
)

// ManifestEntry is a compact record of one summarized input.
type ManifestEntry struct {
	Index  int    `json:"index"`
	Source string `json:"source"`
	Title  string `json:"title"`
	SHA256 string `json:"sha256"`
	Chars  int    `json:"chars"`
}

// ManifestMeta captures run details that aid reproducibility.
type ManifestMeta struct {
	Settings    Settings  `json:"settings"`
	EntryCount  int       `json:"entry_count"`
	GeneratedAt time.Time `json:"generated_at"`
}

// SHA256Hex returns the lowercase hex SHA-256 of text.
func SHA256Hex(text string) string {
	h := sha256.Sum256([]byte(text))
	return hex.EncodeToString(h[:])
}

// BuildManifest lists every entry with the digest and length of the exact
// text that was summarized. Indexes start at 1.
func BuildManifest(r Report) (ManifestMeta, []ManifestEntry) {
	entries := make([]ManifestEntry, 0, len(r.Entries))
	for i, e := range r.Entries {
		content := strings.TrimSpace(e.Text)
		entries = append(entries, ManifestEntry{
			Index:  i + 1,
			Source: strings.TrimSpace(e.Source),
			Title:  strings.TrimSpace(e.Title),
			SHA256: SHA256Hex(content),
			Chars:  utf8.RuneCountInString(content),
		})
	}
	meta := ManifestMeta{Settings: r.Settings, EntryCount: len(entries), GeneratedAt: r.GeneratedAt.UTC()}
	return meta, entries
}

// MarshalManifest encodes the machine-readable sidecar.
func MarshalManifest(meta ManifestMeta, entries []ManifestEntry) ([]byte, error) {
	payload := struct {
		Meta    ManifestMeta    `json:"meta"`
		Entries []ManifestEntry `json:"entries"`
	}{Meta: meta, Entries: entries}
	return json.MarshalIndent(payload, "", "  ")
}

// SidecarPath returns the manifest path next to an output file.
func SidecarPath(outputPath string) string {
	return outputPath + ".manifest.json"
}

// WriteManifest writes the sidecar for a report saved at outputPath. Stdout
// outputs have no sidecar.
func WriteManifest(r Report, outputPath string) error {
	if outputPath == "" || outputPath == "-" {
		return nil
	}
	data, err := MarshalManifest(BuildManifest(r))
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := os.WriteFile(SidecarPath(outputPath), data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}
