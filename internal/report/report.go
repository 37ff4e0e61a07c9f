// Package report renders summaries as Markdown, JSON or PDF and writes the
// sidecar manifest that records what was summarized.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hyperifyio/goskim/internal/textrank"
)

// Formats accepted by Write.
const (
	FormatMarkdown = "md"
	FormatJSON     = "json"
	FormatPDF      = "pdf"
)

// Entry is one summarized input.
type Entry struct {
	Source  string   `json:"source"`
	Title   string   `json:"title,omitempty"`
	Byline  string   `json:"byline,omitempty"`
	Summary string   `json:"summary"`
	Tags    []string `json:"tags"`
	// Sentences is how many sentences the input had after filtering.
	Sentences int  `json:"sentences"`
	Article   bool `json:"article"`
	// Score is the search relevance when the entry came from a bookmark search.
	Score float64 `json:"score,omitempty"`
	// Text is the summarized body; it only feeds the manifest digest.
	Text string `json:"-"`
}

// Settings records how the report was produced.
type Settings struct {
	Engine       textrank.Config `json:"engine"`
	Extractor    string          `json:"extractor"`
	PageCache    bool            `json:"page_cache"`
	SummaryCache bool            `json:"summary_cache"`
}

// Report is a rendered run.
type Report struct {
	Entries     []Entry   `json:"entries"`
	Settings    Settings  `json:"settings"`
	GeneratedAt time.Time `json:"generated_at"`
}

// ValidFormat reports whether f is a known output format.
func ValidFormat(f string) bool {
	switch f {
	case FormatMarkdown, FormatJSON, FormatPDF:
		return true
	}
	return false
}

// Markdown renders r as Markdown with a settings footer.
func Markdown(r Report) string {
	var b strings.Builder
	for i, e := range r.Entries {
		if i > 0 {
			b.WriteString("\n")
		}
		title := strings.TrimSpace(e.Title)
		if title == "" {
			title = e.Source
		}
		b.WriteString("## ")
		b.WriteString(title)
		b.WriteString("\n\n")
		if e.Source != "" && e.Source != title {
			b.WriteString("Source: ")
			b.WriteString(markdownSource(e.Source))
			b.WriteString("\n")
		}
		if e.Byline != "" {
			b.WriteString("By: ")
			b.WriteString(e.Byline)
			b.WriteString("\n")
		}
		if e.Score > 0 {
			b.WriteString("Score: ")
			b.WriteString(strconv.FormatFloat(e.Score, 'f', 2, 64))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		summary := strings.TrimSpace(e.Summary)
		if summary == "" {
			summary = "_No summary available._"
		}
		b.WriteString(summary)
		b.WriteString("\n")
		if len(e.Tags) > 0 {
			b.WriteString("\nTags: ")
			b.WriteString(strings.Join(e.Tags, ", "))
			b.WriteString("\n")
		}
	}
	return appendSettingsFooter(b.String(), r.Settings, len(r.Entries))
}

func markdownSource(src string) string {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return "[" + src + "](" + src + ")"
	}
	return src
}

// JSON encodes r with indentation.
func JSON(r Report) ([]byte, error) {
	if r.Entries == nil {
		r.Entries = []Entry{}
	}
	for i := range r.Entries {
		if r.Entries[i].Tags == nil {
			r.Entries[i].Tags = []string{}
		}
	}
	return json.MarshalIndent(r, "", "  ")
}

// Write renders r in format to path, or to stdout when path is "" or "-".
// PDF needs a real path. For file outputs a manifest sidecar is written next
// to the report.
func Write(r Report, format string, path string, stdout io.Writer) error {
	toStdout := path == "" || path == "-"
	switch format {
	case FormatPDF:
		if toStdout {
			return fmt.Errorf("pdf output requires -output path")
		}
		if err := WritePDF(r, path); err != nil {
			return fmt.Errorf("write pdf: %w", err)
		}
	case FormatJSON, FormatMarkdown, "":
		var data []byte
		if format == FormatJSON {
			b, err := JSON(r)
			if err != nil {
				return fmt.Errorf("encode json: %w", err)
			}
			data = append(b, '\n')
		} else {
			data = []byte(Markdown(r))
		}
		if toStdout {
			_, err := stdout.Write(data)
			return err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	return WriteManifest(r, path)
}
