package app

import (
	"time"

	"github.com/hyperifyio/goskim/internal/textrank"
)

// Defaults shared by the CLI flags and the config overlays.
const (
	DefaultOutput      = "-"
	DefaultFormat      = "md"
	DefaultExtractor   = "readability"
	DefaultConcurrency = 4
	DefaultCacheDir    = ".goskim-cache"
	DefaultHTTPTimeout = 15 * time.Second
	DefaultUserAgent   = "goskim/1.0 (+https://github.com/hyperifyio/goskim)"
	DefaultBookmarksDB = ".goskim/bookmarks.db"
)

// Config holds runtime configuration for the application.
type Config struct {
	// Inputs are file paths, "-" for stdin, or http(s) URLs.
	Inputs     []string
	OutputPath string
	Format     string

	// Summarization
	Engine         textrank.Config
	Keywords       []string
	RequireArticle bool
	Extractor      string

	Concurrency int

	// Cache
	CacheDir         string
	CacheMaxAge      time.Duration
	CacheClear       bool
	CacheStrictPerms bool

	// HTTP
	HTTPTimeout time.Duration
	HTTPRate    float64
	UserAgent   string

	// Bookmarks
	BookmarksDB string
	Save        bool
	Search      string

	Verbose bool
}

// DefaultConfig returns the configuration the CLI starts from.
func DefaultConfig() Config {
	return Config{
		OutputPath:  DefaultOutput,
		Format:      DefaultFormat,
		Engine:      textrank.DefaultConfig(),
		Extractor:   DefaultExtractor,
		Concurrency: DefaultConcurrency,
		CacheDir:    DefaultCacheDir,
		HTTPTimeout: DefaultHTTPTimeout,
		UserAgent:   DefaultUserAgent,
		BookmarksDB: DefaultBookmarksDB,
	}
}
