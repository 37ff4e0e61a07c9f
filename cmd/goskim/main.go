// Command goskim summarizes text files, HTML pages and URLs with TextRank
// and tags them with keywords.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/goskim/internal/app"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := parseConfig(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Error().Err(err).Msg("invalid configuration")
		os.Exit(1)
	}
	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = run(ctx, cfg)
	stop()
	if err != nil {
		log.Error().Err(err).Msg("run failed")
	}
	os.Exit(exitCode(err))
}

// exitCode maps run errors to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, app.ErrNoUsableInput):
		return 2
	default:
		return 1
	}
}

// parseConfig layers defaults, the config file, environment and explicitly
// set flags, in increasing precedence. Dotenv files named by -env are loaded
// before the environment is read.
func parseConfig(args []string, stderr io.Writer) (app.Config, error) {
	fs := flag.NewFlagSet("goskim", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: goskim [flags] [input ...]")
		fmt.Fprintln(fs.Output(), "input: file path, \"-\" for stdin, or http(s) URL (default: stdin)")
		fs.PrintDefaults()
	}

	fl := app.DefaultConfig()
	var (
		keywords   string
		configPath string
		envFiles   string
	)
	fs.StringVar(&fl.OutputPath, "output", fl.OutputPath, "Write the report here (\"-\" for stdout)")
	fs.StringVar(&fl.Format, "format", fl.Format, "Report format: md, json or pdf")
	fs.IntVar(&fl.Engine.NumSentences, "sentences", fl.Engine.NumSentences, "Number of summary sentences")
	fs.Float64Var(&fl.Engine.Ratio, "ratio", 0, "Summary length as a fraction of sentences; overrides -sentences when in (0,1)")
	fs.IntVar(&fl.Engine.MinSentenceLength, "min.sentenceLength", fl.Engine.MinSentenceLength, "Drop sentences shorter than this many characters")
	fs.Float64Var(&fl.Engine.SimilarityThreshold, "similarity.threshold", 0, "Ignore sentence similarities below this value")
	fs.Float64Var(&fl.Engine.Damping, "damping", fl.Engine.Damping, "PageRank damping factor")
	fs.IntVar(&fl.Engine.MaxIter, "max.iter", fl.Engine.MaxIter, "Maximum PageRank iterations")
	fs.Float64Var(&fl.Engine.Tolerance, "tolerance", fl.Engine.Tolerance, "PageRank convergence tolerance")
	fs.StringVar(&keywords, "keywords", "", "Comma-separated keywords placed ahead of extracted ones")
	fs.BoolVar(&fl.RequireArticle, "require.article", false, "Skip HTML inputs that do not look like articles")
	fs.StringVar(&fl.Extractor, "extractor", fl.Extractor, "HTML text extractor: readability or heuristic")
	fs.IntVar(&fl.Concurrency, "concurrency", fl.Concurrency, "Inputs processed in parallel")
	fs.StringVar(&fl.CacheDir, "cache.dir", fl.CacheDir, "Cache directory path (empty disables caching)")
	fs.DurationVar(&fl.CacheMaxAge, "cache.maxAge", 0, "Purge cache entries older than this before the run; 0 disables")
	fs.BoolVar(&fl.CacheClear, "cache.clear", false, "Clear the cache directory before the run")
	fs.BoolVar(&fl.CacheStrictPerms, "cache.strictPerms", false, "Restrict cache permissions (0700 dirs, 0600 files)")
	fs.DurationVar(&fl.HTTPTimeout, "http.timeout", fl.HTTPTimeout, "Per-request timeout for URL inputs")
	fs.Float64Var(&fl.HTTPRate, "http.rate", 0, "Maximum requests per second; 0 disables the limit")
	fs.StringVar(&fl.UserAgent, "http.ua", fl.UserAgent, "User-Agent for URL inputs")
	fs.StringVar(&fl.BookmarksDB, "bookmarks.db", fl.BookmarksDB, "SQLite bookmarks database")
	fs.BoolVar(&fl.Save, "save", false, "Store each summary as a bookmark")
	fs.StringVar(&fl.Search, "search", "", "Search bookmarks instead of summarizing")
	fs.StringVar(&configPath, "config", "", "YAML or JSON config file")
	fs.StringVar(&envFiles, "env", "", "Comma-separated dotenv files to load first")
	fs.BoolVar(&fl.Verbose, "v", false, "Verbose logging")
	if err := fs.Parse(args); err != nil {
		return app.Config{}, err
	}

	if envFiles != "" {
		if err := app.LoadEnvFiles(strings.Split(envFiles, ",")...); err != nil {
			return app.Config{}, err
		}
	}
	cfg := app.DefaultConfig()
	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			return app.Config{}, fmt.Errorf("config file: %w", err)
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	app.ApplyEnvOverrides(&cfg)

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "output":
			cfg.OutputPath = fl.OutputPath
		case "format":
			cfg.Format = fl.Format
		case "sentences":
			cfg.Engine.NumSentences = fl.Engine.NumSentences
		case "ratio":
			cfg.Engine.Ratio = fl.Engine.Ratio
		case "min.sentenceLength":
			cfg.Engine.MinSentenceLength = fl.Engine.MinSentenceLength
		case "similarity.threshold":
			cfg.Engine.SimilarityThreshold = fl.Engine.SimilarityThreshold
		case "damping":
			cfg.Engine.Damping = fl.Engine.Damping
		case "max.iter":
			cfg.Engine.MaxIter = fl.Engine.MaxIter
		case "tolerance":
			cfg.Engine.Tolerance = fl.Engine.Tolerance
		case "keywords":
			cfg.Keywords = splitList(keywords)
		case "require.article":
			cfg.RequireArticle = fl.RequireArticle
		case "extractor":
			cfg.Extractor = fl.Extractor
		case "concurrency":
			cfg.Concurrency = fl.Concurrency
		case "cache.dir":
			cfg.CacheDir = fl.CacheDir
		case "cache.maxAge":
			cfg.CacheMaxAge = fl.CacheMaxAge
		case "cache.clear":
			cfg.CacheClear = fl.CacheClear
		case "cache.strictPerms":
			cfg.CacheStrictPerms = fl.CacheStrictPerms
		case "http.timeout":
			cfg.HTTPTimeout = fl.HTTPTimeout
		case "http.rate":
			cfg.HTTPRate = fl.HTTPRate
		case "http.ua":
			cfg.UserAgent = fl.UserAgent
		case "bookmarks.db":
			cfg.BookmarksDB = fl.BookmarksDB
		case "save":
			cfg.Save = fl.Save
		case "search":
			cfg.Search = fl.Search
		case "v":
			cfg.Verbose = fl.Verbose
		}
	})
	if fs.NArg() > 0 {
		cfg.Inputs = fs.Args()
	}
	if err := app.ValidateConfig(cfg); err != nil {
		return app.Config{}, err
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func run(ctx context.Context, cfg app.Config) error {
	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer a.Close()

	return a.Run(ctx)
}
