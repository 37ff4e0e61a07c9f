package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hyperifyio/goskim/internal/textrank"
)

func sampleReport() Report {
	return Report{
		Entries: []Entry{
			{
				Source:    "https://example.com/news/solar",
				Title:     "Solar keeps growing",
				Byline:    "Jane Reporter",
				Summary:   "Solar panels are cheaper than ever.",
				Tags:      []string{"solar", "energy"},
				Sentences: 6,
				Article:   true,
				Text:      "hello",
			},
			{Source: "notes.txt", Summary: "", Text: "world\n"},
		},
		Settings:    Settings{Engine: textrank.DefaultConfig(), Extractor: "readability", PageCache: true},
		GeneratedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestMarkdown_RendersEntriesAndFooter(t *testing.T) {
	out := Markdown(sampleReport())
	for _, want := range []string{
		"## Solar keeps growing\n",
		"Source: [https://example.com/news/solar](https://example.com/news/solar)\n",
		"By: Jane Reporter\n",
		"Solar panels are cheaper than ever.\n",
		"Tags: solar, energy\n",
		"## notes.txt\n",
		"_No summary available._",
		"Settings: entries=2; sentences=3; min_sentence_length=10; similarity_threshold=0; damping=0.85; max_iter=100; tolerance=1e-06; extractor=readability; page_cache=true; summary_cache=false\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Source: notes.txt") {
		t.Fatalf("source line should be omitted when it is the heading:\n%s", out)
	}
}

func TestMarkdown_RatioFooterAndScore(t *testing.T) {
	r := Report{
		Entries:  []Entry{{Source: "s", Title: "T", Summary: "x", Score: 0.5}},
		Settings: Settings{Engine: textrank.Config{Ratio: 0.25}},
	}
	out := Markdown(r)
	if !strings.Contains(out, "; ratio=0.25;") || strings.Contains(out, "sentences=") {
		t.Fatalf("expected ratio in footer:\n%s", out)
	}
	if !strings.Contains(out, "Score: 0.50\n") {
		t.Fatalf("expected score line:\n%s", out)
	}
}

func TestJSON_EmptyTagsAreArrays(t *testing.T) {
	b, err := JSON(sampleReport())
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	var decoded struct {
		Entries []map[string]any `json:"entries"`
	}
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(decoded.Entries))
	}
	if tags, ok := decoded.Entries[1]["tags"].([]any); !ok || len(tags) != 0 {
		t.Fatalf("expected empty tags array, got %#v", decoded.Entries[1]["tags"])
	}
	if _, ok := decoded.Entries[0]["Text"]; ok {
		t.Fatalf("text must not be serialized")
	}
}

func TestBuildManifest_ComputesSHA256AndChars(t *testing.T) {
	meta, entries := BuildManifest(sampleReport())
	if meta.EntryCount != 2 || len(entries) != 2 {
		t.Fatalf("unexpected manifest: %+v %+v", meta, entries)
	}
	if entries[0].Chars != 5 || entries[1].Chars != 5 {
		t.Fatalf("unexpected char counts: %+v", entries)
	}
	if entries[0].SHA256 != SHA256Hex("hello") || entries[1].Index != 2 {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestWrite_MarkdownFileWithSidecar(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.md")
	if err := Write(sampleReport(), FormatMarkdown, out, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("report missing: %v", err)
	}
	data, err := os.ReadFile(SidecarPath(out))
	if err != nil {
		t.Fatalf("sidecar missing: %v", err)
	}
	if !bytes.Contains(data, []byte(`"sha256": "`+SHA256Hex("hello")+`"`)) {
		t.Fatalf("sidecar lacks digest:\n%s", data)
	}
}

func TestWrite_StdoutHasNoSidecar(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(sampleReport(), FormatJSON, "-", &buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !json.Valid(buf.Bytes()) {
		t.Fatalf("expected valid json, got %s", buf.String())
	}
	if err := Write(sampleReport(), FormatPDF, "-", &buf); err == nil {
		t.Fatalf("expected pdf to stdout to fail")
	}
	if err := Write(sampleReport(), "html", "-", &buf); err == nil {
		t.Fatalf("expected unknown format to fail")
	}
}

func TestWritePDF_CreatesFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.pdf")
	r := sampleReport()
	r.Entries[0].Summary = "Café owners like solar."
	if err := Write(r, FormatPDF, out, nil); err != nil {
		t.Fatalf("write pdf: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("expected PDF header")
	}
	if _, err := os.Stat(SidecarPath(out)); err != nil {
		t.Fatalf("expected sidecar: %v", err)
	}
}

func TestValidFormat(t *testing.T) {
	for _, f := range []string{"md", "json", "pdf"} {
		if !ValidFormat(f) {
			t.Fatalf("%s should be valid", f)
		}
	}
	if ValidFormat("html") {
		t.Fatalf("html should not be valid")
	}
}
