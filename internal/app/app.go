package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/hyperifyio/goskim/internal/bookmarks"
	"github.com/hyperifyio/goskim/internal/cache"
	"github.com/hyperifyio/goskim/internal/extract"
	"github.com/hyperifyio/goskim/internal/fetch"
	"github.com/hyperifyio/goskim/internal/inputs"
	"github.com/hyperifyio/goskim/internal/keywords"
	"github.com/hyperifyio/goskim/internal/report"
	"github.com/hyperifyio/goskim/internal/textrank"
)

// ErrNoUsableInput is returned when no input produced any text to summarize.
// The CLI maps it to exit code 2.
var ErrNoUsableInput = errors.New("no usable input")

// pageGetter is the slice of fetch.Client the app needs; tests swap it.
type pageGetter interface {
	Get(ctx context.Context, url string) ([]byte, string, error)
}

type App struct {
	cfg       Config
	fetcher   pageGetter
	extractor extract.Extractor
	pages     *cache.PageCache
	summaries *cache.SummaryCache
	store     *bookmarks.Store

	stdin  io.Reader
	stdout io.Writer
}

// New prepares caches, the fetch client and, when saving or searching, the
// bookmark store.
func New(ctx context.Context, cfg Config) (*App, error) {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	if cfg.Format == "" {
		cfg.Format = DefaultFormat
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = DefaultOutput
	}
	if cfg.Extractor == "" {
		cfg.Extractor = DefaultExtractor
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = DefaultHTTPTimeout
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	a := &App{
		cfg:       cfg,
		extractor: extract.ForMode(cfg.Extractor),
		stdin:     os.Stdin,
		stdout:    os.Stdout,
	}
	if cfg.CacheDir != "" {
		if cfg.CacheClear {
			if err := cache.ClearDir(cfg.CacheDir); err != nil {
				log.Warn().Err(err).Str("dir", cfg.CacheDir).Msg("cache clear failed")
			}
		}
		if cfg.CacheMaxAge > 0 {
			n, err := cache.PurgeByAge(cfg.CacheDir, cfg.CacheMaxAge)
			if err != nil {
				log.Warn().Err(err).Str("dir", cfg.CacheDir).Msg("cache purge failed")
			} else if n > 0 {
				log.Debug().Int("removed", n).Msg("purged expired cache entries")
			}
		}
		a.pages = &cache.PageCache{Dir: cfg.CacheDir, StrictPerms: cfg.CacheStrictPerms}
		a.summaries = &cache.SummaryCache{Dir: cfg.CacheDir, StrictPerms: cfg.CacheStrictPerms}
	}
	a.fetcher = &fetch.Client{
		HTTPClient:        newHTTPClient(cfg.HTTPTimeout),
		UserAgent:         cfg.UserAgent,
		MaxAttempts:       2,
		PerRequestTimeout: cfg.HTTPTimeout,
		Cache:             a.pages,
		MaxConcurrent:     cfg.Concurrency,
		RatePerSecond:     cfg.HTTPRate,
	}
	if cfg.Save || strings.TrimSpace(cfg.Search) != "" {
		store, err := bookmarks.Open(ctx, cfg.BookmarksDB)
		if err != nil {
			return nil, err
		}
		a.store = store
	}
	return a, nil
}

func (a *App) Close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			log.Warn().Err(err).Msg("close bookmarks")
		}
	}
}

// Run summarizes every input, or lists matching bookmarks in search mode, and
// writes the report.
func (a *App) Run(ctx context.Context) error {
	if q := strings.TrimSpace(a.cfg.Search); q != "" {
		return a.runSearch(ctx, q)
	}
	sources := dedupeInputs(a.cfg.Inputs)
	if len(sources) == 0 {
		sources = []string{"-"}
	}
	entries, err := a.processInputs(ctx, sources)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return ErrNoUsableInput
	}
	if a.cfg.Save {
		a.saveBookmarks(ctx, entries)
	}
	if err := report.Write(a.newReport(entries), a.cfg.Format, a.cfg.OutputPath, a.stdout); err != nil {
		return err
	}
	log.Info().Int("inputs", len(sources)).Int("summarized", len(entries)).Str("output", a.cfg.OutputPath).Msg("report written")
	return nil
}

// dedupeInputs drops repeated sources so each is fetched and summarized once.
func dedupeInputs(list []string) []string {
	out := inputs.Dedupe(list)
	if n := len(list) - len(out); n > 0 {
		log.Debug().Int("dropped", n).Msg("duplicate inputs skipped")
	}
	return out
}

// processInputs summarizes inputs concurrently. A failing input is logged and
// skipped; the returned entries keep input order.
func (a *App) processInputs(ctx context.Context, sources []string) ([]report.Entry, error) {
	results := make([]*report.Entry, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Concurrency)
	for i, in := range sources {
		g.Go(func() error {
			entry, err := a.summarizeInput(gctx, in)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				log.Warn().Err(err).Str("input", in).Msg("skipping input")
				return nil
			}
			results[i] = &entry
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	out := make([]report.Entry, 0, len(results))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, nil
}

// source is one loaded input before extraction.
type source struct {
	name string
	body []byte
	html bool
	url  *url.URL
}

func (a *App) load(ctx context.Context, input string) (source, error) {
	switch {
	case input == "-":
		b, err := io.ReadAll(a.stdin)
		if err != nil {
			return source{}, fmt.Errorf("read stdin: %w", err)
		}
		return source{name: "stdin", body: b, html: looksLikeHTML(b)}, nil
	case fetch.IsURL(input):
		u, err := url.Parse(strings.TrimSpace(input))
		if err != nil {
			return source{}, fmt.Errorf("parse url: %w", err)
		}
		b, _, err := a.fetcher.Get(ctx, u.String())
		if err != nil {
			return source{}, fmt.Errorf("fetch: %w", err)
		}
		return source{name: u.String(), body: b, html: true, url: u}, nil
	default:
		b, err := os.ReadFile(input)
		if err != nil {
			return source{}, fmt.Errorf("read file: %w", err)
		}
		return source{name: input, body: b, html: looksLikeHTML(b)}, nil
	}
}

func looksLikeHTML(b []byte) bool {
	return strings.HasPrefix(http.DetectContentType(b), "text/html")
}

func (a *App) summarizeInput(ctx context.Context, input string) (report.Entry, error) {
	src, err := a.load(ctx, input)
	if err != nil {
		return report.Entry{}, err
	}
	doc := extract.Document{Text: strings.TrimSpace(string(src.body))}
	if src.html {
		doc = a.extractor.Extract(src.body, src.url)
		if a.cfg.RequireArticle && !doc.LooksLikeArticle() {
			return report.Entry{}, fmt.Errorf("%w (%d of %d signals)", extract.ErrNotArticle, doc.Signals.Count(), extract.RequiredSignals)
		}
	}
	if strings.TrimSpace(doc.Text) == "" {
		return report.Entry{}, errors.New("no text to summarize")
	}

	sum := a.summarize(ctx, doc.Text)
	summary := sum.Text
	if summary == "" {
		summary = doc.Excerpt
	}
	explicit := append(append([]string{}, a.cfg.Keywords...), doc.Keywords...)
	log.Debug().Str("input", src.name).Int("sentences", sum.Sentences).Bool("html", src.html).Msg("summarized")
	return report.Entry{
		Source:    src.name,
		Title:     doc.Title,
		Byline:    doc.Byline,
		Summary:   summary,
		Tags:      keywords.Extract(doc.Text, explicit),
		Sentences: sum.Sentences,
		Article:   src.html && doc.LooksLikeArticle(),
		Text:      doc.Text,
	}, nil
}

// cachedSummary is what the summary cache stores per text and settings.
type cachedSummary struct {
	Text      string `json:"text"`
	Sentences int    `json:"sentences"`
}

func (a *App) summarize(ctx context.Context, text string) cachedSummary {
	var key string
	if a.summaries != nil {
		key = cache.KeyFrom(settingsFingerprint(a.cfg.Engine), text)
		if b, ok, err := a.summaries.Get(ctx, key); err == nil && ok {
			var cs cachedSummary
			if json.Unmarshal(b, &cs) == nil {
				return cs
			}
		}
	}
	an := textrank.Analyze(text, a.cfg.Engine)
	cs := cachedSummary{Text: an.Text, Sentences: len(an.Sentences)}
	if a.summaries != nil {
		if b, err := json.Marshal(cs); err == nil {
			if err := a.summaries.Save(ctx, key, b); err != nil {
				log.Debug().Err(err).Msg("summary cache save failed")
			}
		}
	}
	return cs
}

func settingsFingerprint(cfg textrank.Config) string {
	n := cfg.Normalize()
	if n.HasRatio() {
		n.NumSentences = 0
	} else {
		n.Ratio = 0
	}
	return fmt.Sprintf("%+v", n)
}

func (a *App) saveBookmarks(ctx context.Context, entries []report.Entry) {
	for _, e := range entries {
		b, err := a.store.Save(ctx, bookmarks.Bookmark{
			Title:   e.Title,
			URL:     e.Source,
			Summary: e.Summary,
			Tags:    e.Tags,
		})
		if err != nil {
			log.Warn().Err(err).Str("input", e.Source).Msg("bookmark save failed")
			continue
		}
		log.Info().Str("id", b.ID).Str("input", e.Source).Msg("bookmark saved")
	}
}

func (a *App) runSearch(ctx context.Context, query string) error {
	results, err := a.store.Search(ctx, query)
	if err != nil {
		return fmt.Errorf("search bookmarks: %w", err)
	}
	entries := make([]report.Entry, 0, len(results))
	for _, r := range results {
		entries = append(entries, report.Entry{
			Source:  r.URL,
			Title:   r.Title,
			Summary: r.Summary,
			Tags:    r.Tags,
			Score:   r.Score,
			Text:    r.Summary,
		})
	}
	log.Info().Str("query", query).Int("matches", len(entries)).Msg("bookmark search")
	return report.Write(a.newReport(entries), a.cfg.Format, a.cfg.OutputPath, a.stdout)
}

func (a *App) newReport(entries []report.Entry) report.Report {
	return report.Report{
		Entries: entries,
		Settings: report.Settings{
			Engine:       a.cfg.Engine,
			Extractor:    a.cfg.Extractor,
			PageCache:    a.pages != nil,
			SummaryCache: a.summaries != nil,
		},
		GeneratedAt: time.Now().UTC(),
	}
}
