package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment variable names.
const (
	EnvSentences      = "GOSKIM_SENTENCES"
	EnvRatio          = "GOSKIM_RATIO"
	EnvFormat         = "GOSKIM_FORMAT"
	EnvCacheDir       = "GOSKIM_CACHE_DIR"
	EnvCacheMaxAge    = "GOSKIM_CACHE_MAX_AGE"
	EnvBookmarksDB    = "GOSKIM_BOOKMARKS_DB"
	EnvConcurrency    = "GOSKIM_CONCURRENCY"
	EnvUserAgent      = "GOSKIM_USER_AGENT"
	EnvVerbose        = "GOSKIM_VERBOSE"
	EnvRequireArticle = "GOSKIM_REQUIRE_ARTICLE"
)

// ApplyEnvToConfig populates unset fields of cfg from environment variables.
// Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.Engine.NumSentences == 0 {
		if n, ok := envInt(EnvSentences); ok {
			cfg.Engine.NumSentences = n
		}
	}
	if cfg.Engine.Ratio == 0 {
		if f, ok := envFloat(EnvRatio); ok {
			cfg.Engine.Ratio = f
		}
	}
	if cfg.Format == "" {
		cfg.Format = os.Getenv(EnvFormat)
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = os.Getenv(EnvCacheDir)
	}
	if cfg.CacheMaxAge == 0 {
		if d, ok := envDuration(EnvCacheMaxAge); ok {
			cfg.CacheMaxAge = d
		}
	}
	if cfg.BookmarksDB == "" {
		cfg.BookmarksDB = os.Getenv(EnvBookmarksDB)
	}
	if cfg.Concurrency == 0 {
		if n, ok := envInt(EnvConcurrency); ok && n > 0 {
			cfg.Concurrency = n
		}
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = os.Getenv(EnvUserAgent)
	}

	setBool := func(dst *bool, envKey string) {
		if *dst {
			return
		}
		if v, ok := envBool(envKey); ok && v {
			*dst = true
		}
	}
	setBool(&cfg.Verbose, EnvVerbose)
	setBool(&cfg.RequireArticle, EnvRequireArticle)
}

// ApplyEnvOverrides overrides cfg fields with environment variables that are
// set. It runs after the config file so env beats the file while flags,
// applied last, stay highest.
func ApplyEnvOverrides(cfg *Config) {
	if cfg == nil {
		return
	}
	if n, ok := envInt(EnvSentences); ok {
		cfg.Engine.NumSentences = n
	}
	if f, ok := envFloat(EnvRatio); ok {
		cfg.Engine.Ratio = f
	}
	if v := os.Getenv(EnvFormat); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv(EnvCacheDir); v != "" {
		cfg.CacheDir = v
	}
	if d, ok := envDuration(EnvCacheMaxAge); ok {
		cfg.CacheMaxAge = d
	}
	if v := os.Getenv(EnvBookmarksDB); v != "" {
		cfg.BookmarksDB = v
	}
	if n, ok := envInt(EnvConcurrency); ok && n > 0 {
		cfg.Concurrency = n
	}
	if v := os.Getenv(EnvUserAgent); v != "" {
		cfg.UserAgent = v
	}
	if v, ok := envBool(EnvVerbose); ok {
		cfg.Verbose = v
	}
	if v, ok := envBool(EnvRequireArticle); ok {
		cfg.RequireArticle = v
	}
}

func envInt(key string) (int, bool) {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

func envFloat(key string) (float64, bool) {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}

func envDuration(key string) (time.Duration, bool) {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return 0, false
	}
	d, err := time.ParseDuration(s)
	return d, err == nil
}

// envBool accepts 1/true/yes/on and 0/false/no/off; anything else is unset.
func envBool(key string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	}
	return false, false
}
