package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/hyperifyio/goskim/internal/app"
)

// Smoke test: run writes a Markdown report for a text file.
func TestRun_WritesOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	out := filepath.Join(dir, "out.md")
	text := "Solar panels convert sunlight into electricity. Homes with solar panels save on electricity. The bakery opens early."
	if err := os.WriteFile(in, []byte(text), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	cfg, err := parseConfig([]string{"-output", out, "-cache.dir", filepath.Join(dir, "cache"), "-sentences", "1", in}, io.Discard)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := run(context.Background(), cfg); err != nil {
		t.Fatalf("run error: %v", err)
	}
	b, err := os.ReadFile(out)
	if err != nil || !strings.Contains(string(b), "Settings: entries=1; sentences=1") {
		t.Fatalf("expected report, err=%v\n%s", err, b)
	}
}

// The exit code policy distinguishes "nothing to summarize" from other failures.
func TestRun_NoUsableInput_ExitCode(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(in, []byte("  "), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	cfg, err := parseConfig([]string{"-cache.dir", "", "-output", filepath.Join(dir, "o.md"), in}, io.Discard)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	err = run(context.Background(), cfg)
	if !errors.Is(err, app.ErrNoUsableInput) {
		t.Fatalf("expected ErrNoUsableInput, got %v", err)
	}
	if code := exitCode(err); code != 2 {
		t.Fatalf("exit code=%d want 2", code)
	}
	if exitCode(nil) != 0 || exitCode(fmt.Errorf("boom")) != 1 {
		t.Fatalf("unexpected exit codes")
	}
}

func TestParseConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "goskim.yaml")
	yaml := "format: json\nsummary:\n  numSentences: 7\n  damping: 0.7\nconcurrency: 6\n"
	if err := os.WriteFile(cfgPath, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("GOSKIM_SENTENCES=4\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(app.EnvSentences, "")
	t.Setenv(app.EnvConcurrency, "")

	cfg, err := parseConfig([]string{"-config", cfgPath, "-env", envPath, "-damping", "0.5", "-keywords", " Go, ,nlp ", "a.txt", "b.txt"}, io.Discard)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Format != "json" || cfg.Concurrency != 6 {
		t.Fatalf("file values missing: %+v", cfg)
	}
	if cfg.Engine.NumSentences != 4 {
		t.Fatalf("env should beat file, got %d", cfg.Engine.NumSentences)
	}
	if cfg.Engine.Damping != 0.5 {
		t.Fatalf("flag should beat file, got %v", cfg.Engine.Damping)
	}
	if !reflect.DeepEqual(cfg.Keywords, []string{"Go", "nlp"}) {
		t.Fatalf("keywords=%q", cfg.Keywords)
	}
	if !reflect.DeepEqual(cfg.Inputs, []string{"a.txt", "b.txt"}) {
		t.Fatalf("inputs=%q", cfg.Inputs)
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	if _, err := parseConfig([]string{"-format", "docx"}, io.Discard); err == nil {
		t.Fatalf("expected invalid format error")
	}
	if _, err := parseConfig([]string{"-config", filepath.Join(t.TempDir(), "missing.yaml")}, io.Discard); err == nil {
		t.Fatalf("expected missing config error")
	}
	if _, err := parseConfig([]string{"-no-such-flag"}, io.Discard); err == nil {
		t.Fatalf("expected unknown flag error")
	}
}
