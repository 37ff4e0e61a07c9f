package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/hyperifyio/goskim/internal/report"
	"github.com/hyperifyio/goskim/internal/textrank"
)

// FileConfig represents the single-file configuration schema. Unknown keys
// are ignored.
type FileConfig struct {
	Inputs []string `yaml:"inputs" json:"inputs"`
	Output string   `yaml:"output" json:"output"`
	Format string   `yaml:"format" json:"format"`

	Summary  textrank.Config `yaml:"summary" json:"summary"`
	Keywords []string        `yaml:"keywords" json:"keywords"`

	Extract struct {
		Mode           string `yaml:"mode" json:"mode"`
		RequireArticle bool   `yaml:"requireArticle" json:"requireArticle"`
	} `yaml:"extract" json:"extract"`

	Concurrency int `yaml:"concurrency" json:"concurrency"`

	Cache struct {
		Dir         string   `yaml:"dir" json:"dir"`
		MaxAge      Duration `yaml:"maxAge" json:"maxAge"`
		Clear       bool     `yaml:"clear" json:"clear"`
		StrictPerms bool     `yaml:"strictPerms" json:"strictPerms"`
	} `yaml:"cache" json:"cache"`

	HTTP struct {
		Timeout Duration `yaml:"timeout" json:"timeout"`
		Rate    float64  `yaml:"rate" json:"rate"`
		UA      string   `yaml:"ua" json:"ua"`
	} `yaml:"http" json:"http"`

	Bookmarks struct {
		DB   string `yaml:"db" json:"db"`
		Save bool   `yaml:"save" json:"save"`
	} `yaml:"bookmarks" json:"bookmarks"`

	Verbose bool `yaml:"verbose" json:"verbose"`
}

// Duration accepts Go duration strings ("90s", "24h") in YAML and JSON.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(n *yaml.Node) error {
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	return d.parse(s)
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	return d.parse(s)
}

func (d *Duration) parse(s string) error {
	if strings.TrimSpace(s) == "" {
		*d = 0
		return nil
	}
	v, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from fc into cfg for any fields that still
// hold their zero or default value, so explicit flags win over the file.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	def := DefaultConfig()

	if len(cfg.Inputs) == 0 && len(fc.Inputs) > 0 {
		cfg.Inputs = append([]string{}, fc.Inputs...)
	}
	if (cfg.OutputPath == "" || cfg.OutputPath == def.OutputPath) && fc.Output != "" {
		cfg.OutputPath = fc.Output
	}
	if (cfg.Format == "" || cfg.Format == def.Format) && fc.Format != "" {
		cfg.Format = fc.Format
	}

	e, fe := &cfg.Engine, fc.Summary
	if (e.NumSentences == 0 || e.NumSentences == def.Engine.NumSentences) && fe.NumSentences != 0 {
		e.NumSentences = fe.NumSentences
	}
	if e.Ratio == 0 && fe.Ratio != 0 {
		e.Ratio = fe.Ratio
	}
	if (e.MinSentenceLength == 0 || e.MinSentenceLength == def.Engine.MinSentenceLength) && fe.MinSentenceLength != 0 {
		e.MinSentenceLength = fe.MinSentenceLength
	}
	if e.SimilarityThreshold == 0 && fe.SimilarityThreshold != 0 {
		e.SimilarityThreshold = fe.SimilarityThreshold
	}
	if (e.Damping == 0 || e.Damping == def.Engine.Damping) && fe.Damping != 0 {
		e.Damping = fe.Damping
	}
	if (e.MaxIter == 0 || e.MaxIter == def.Engine.MaxIter) && fe.MaxIter != 0 {
		e.MaxIter = fe.MaxIter
	}
	if (e.Tolerance == 0 || e.Tolerance == def.Engine.Tolerance) && fe.Tolerance != 0 {
		e.Tolerance = fe.Tolerance
	}
	if len(cfg.Keywords) == 0 && len(fc.Keywords) > 0 {
		cfg.Keywords = append([]string{}, fc.Keywords...)
	}

	if (cfg.Extractor == "" || cfg.Extractor == def.Extractor) && fc.Extract.Mode != "" {
		cfg.Extractor = fc.Extract.Mode
	}
	if !cfg.RequireArticle && fc.Extract.RequireArticle {
		cfg.RequireArticle = true
	}
	if (cfg.Concurrency == 0 || cfg.Concurrency == def.Concurrency) && fc.Concurrency > 0 {
		cfg.Concurrency = fc.Concurrency
	}

	if (cfg.CacheDir == "" || cfg.CacheDir == def.CacheDir) && fc.Cache.Dir != "" {
		cfg.CacheDir = fc.Cache.Dir
	}
	if cfg.CacheMaxAge == 0 && fc.Cache.MaxAge > 0 {
		cfg.CacheMaxAge = time.Duration(fc.Cache.MaxAge)
	}
	if !cfg.CacheClear && fc.Cache.Clear {
		cfg.CacheClear = true
	}
	if !cfg.CacheStrictPerms && fc.Cache.StrictPerms {
		cfg.CacheStrictPerms = true
	}

	if (cfg.HTTPTimeout == 0 || cfg.HTTPTimeout == def.HTTPTimeout) && fc.HTTP.Timeout > 0 {
		cfg.HTTPTimeout = time.Duration(fc.HTTP.Timeout)
	}
	if cfg.HTTPRate == 0 && fc.HTTP.Rate > 0 {
		cfg.HTTPRate = fc.HTTP.Rate
	}
	if (cfg.UserAgent == "" || cfg.UserAgent == def.UserAgent) && fc.HTTP.UA != "" {
		cfg.UserAgent = fc.HTTP.UA
	}

	if (cfg.BookmarksDB == "" || cfg.BookmarksDB == def.BookmarksDB) && fc.Bookmarks.DB != "" {
		cfg.BookmarksDB = fc.Bookmarks.DB
	}
	if !cfg.Save && fc.Bookmarks.Save {
		cfg.Save = true
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}

// ValidateConfig rejects settings the run cannot honor. Engine values are
// not checked here because the engine clamps them.
func ValidateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.OutputPath) == "" {
		return errors.New("config: output path is required")
	}
	if !report.ValidFormat(cfg.Format) {
		return fmt.Errorf("config: unknown format %q (want md, json or pdf)", cfg.Format)
	}
	if cfg.Format == report.FormatPDF && (cfg.OutputPath == "-" || cfg.OutputPath == "") {
		return errors.New("config: pdf output requires -output path")
	}
	if cfg.Extractor != "" && cfg.Extractor != "readability" && cfg.Extractor != "heuristic" {
		return fmt.Errorf("config: unknown extractor %q (want readability or heuristic)", cfg.Extractor)
	}
	if cfg.Concurrency < 0 || cfg.HTTPRate < 0 || cfg.HTTPTimeout < 0 || cfg.CacheMaxAge < 0 {
		return errors.New("config: negative limits are not allowed")
	}
	if (cfg.Save || strings.TrimSpace(cfg.Search) != "") && strings.TrimSpace(cfg.BookmarksDB) == "" {
		return errors.New("config: bookmarks database path is required for -save and -search")
	}
	return nil
}
