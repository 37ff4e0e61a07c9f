// Package fetch downloads HTML pages politely: bounded retries, conditional
// revalidation against the page cache, a redirect cap, an optional rate limit
// and UTF-8 decoding of legacy charsets.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"

	"github.com/hyperifyio/goskim/internal/cache"
)

// DefaultMaxBodyBytes caps a page body when Client.MaxBodyBytes is zero.
const DefaultMaxBodyBytes = 5 << 20

var (
	// ErrServer marks 5xx responses, which are retried.
	ErrServer = errors.New("server error")
	// ErrTooLarge is returned when a body exceeds the configured cap.
	ErrTooLarge = errors.New("response body too large")
)

// Client wraps http.Client and provides timeouts and limited retry on transient errors.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string
	// MaxAttempts includes the initial attempt. Minimum 1.
	MaxAttempts int
	// PerRequestTimeout bounds each request.
	PerRequestTimeout time.Duration
	// Optional on-disk cache for page bodies and validators.
	Cache *cache.PageCache
	// BypassCache fetches fresh without conditional headers but still saves
	// the latest response.
	BypassCache bool

	// RedirectMaxHops caps redirect following. Zero means 5.
	RedirectMaxHops int
	// MaxConcurrent limits in-flight requests per client. Zero means unlimited.
	MaxConcurrent int
	// RatePerSecond spaces out request starts. Zero disables the limit.
	RatePerSecond float64
	// MaxBodyBytes caps the decoded body. Zero means DefaultMaxBodyBytes.
	MaxBodyBytes int64

	limiter     chan struct{}
	limiterOnce sync.Once
	pacer       *rate.Limiter
	pacerOnce   sync.Once
}

func (c *Client) getHTTPClient() *http.Client {
	if c.HTTPClient != nil {
		// Clone to attach our redirect policy without mutating the caller's client.
		base := *c.HTTPClient
		base.CheckRedirect = c.checkRedirectFunc()
		return &base
	}
	return &http.Client{Timeout: c.PerRequestTimeout, CheckRedirect: c.checkRedirectFunc()}
}

// Get issues a GET with context, user-agent, and bounded retry for transient
// errors. It returns the UTF-8 body and the response content type.
func (c *Client) Get(ctx context.Context, url string) ([]byte, string, error) {
	var etag, lastMod string
	if c.Cache != nil && !c.BypassCache {
		if meta, err := c.Cache.LoadMeta(ctx, url); err == nil && meta != nil {
			etag = meta.ETag
			lastMod = meta.LastModified
		}
	}
	attempts := c.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		res, err := c.tryOnce(ctx, url, etag, lastMod)
		if err == nil {
			if c.Cache != nil && res.status == http.StatusOK {
				if err := c.Cache.Save(ctx, url, res.contentType, res.etag, res.lastModified, res.body); err != nil {
					log.Debug().Err(err).Str("url", url).Msg("page cache save failed")
				}
			}
			if res.status == http.StatusNotModified && c.Cache != nil {
				cached, err := c.Cache.LoadBody(ctx, url)
				if err != nil {
					return nil, "", fmt.Errorf("load cached body: %w", err)
				}
				ct := res.contentType
				if meta, err := c.Cache.LoadMeta(ctx, url); err == nil && meta.ContentType != "" {
					ct = meta.ContentType
				}
				log.Debug().Str("url", url).Msg("not modified; served from cache")
				return cached, ct, nil
			}
			return res.body, res.contentType, nil
		}
		lastErr = err
		if !isTransient(err) || i == attempts-1 {
			return nil, "", err
		}
		log.Debug().Err(err).Str("url", url).Int("attempt", i+1).Msg("retrying fetch")
		select {
		case <-ctx.Done():
			return nil, "", ctx.Err()
		case <-time.After(time.Duration(i+1) * 200 * time.Millisecond):
		}
	}
	if lastErr == nil {
		lastErr = errors.New("unknown error")
	}
	return nil, "", lastErr
}

type response struct {
	body         []byte
	contentType  string
	etag         string
	lastModified string
	status       int
}

func (c *Client) tryOnce(ctx context.Context, rawURL string, etag string, lastMod string) (response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return response{}, fmt.Errorf("new request: %w", err)
	}
	if !isHTTPScheme(req.URL) {
		return response{}, fmt.Errorf("unsupported URL scheme: %q", req.URL.String())
	}
	if err := c.pace(ctx); err != nil {
		return response{}, err
	}
	c.acquire()
	defer c.release()

	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if etag != "" {
		req.Header.Set("If-None-Match", etag)
	}
	if lastMod != "" {
		req.Header.Set("If-Modified-Since", lastMod)
	}
	if c.PerRequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(req.Context(), c.PerRequestTimeout)
		defer cancel()
		req = req.WithContext(ctx)
	}

	resp, err := c.getHTTPClient().Do(req)
	if err != nil {
		return response{}, err
	}
	defer resp.Body.Close()

	out := response{
		contentType:  resp.Header.Get("Content-Type"),
		etag:         resp.Header.Get("ETag"),
		lastModified: resp.Header.Get("Last-Modified"),
		status:       resp.StatusCode,
	}
	switch {
	case resp.StatusCode >= 500 && resp.StatusCode <= 599:
		return out, fmt.Errorf("%w: %d", ErrServer, resp.StatusCode)
	case resp.StatusCode == http.StatusNotModified:
		return out, nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return out, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	if !isAllowedHTMLContentType(out.contentType) {
		return out, fmt.Errorf("unsupported content type: %s", out.contentType)
	}
	out.body, err = c.readBody(resp.Body, out.contentType)
	return out, err
}

// readBody decodes the declared or sniffed charset to UTF-8 and enforces the
// size cap.
func (c *Client) readBody(body io.Reader, contentType string) ([]byte, error) {
	limit := c.MaxBodyBytes
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	r, err := charset.NewReader(body, contentType)
	if err != nil {
		return nil, fmt.Errorf("decode charset: %w", err)
	}
	b, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(b)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, limit)
	}
	return b, nil
}

func isTransient(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, ErrServer)
}

func (c *Client) checkRedirectFunc() func(req *http.Request, via []*http.Request) error {
	max := c.RedirectMaxHops
	if max <= 0 {
		max = 5
	}
	return func(req *http.Request, via []*http.Request) error {
		if len(via) >= max {
			return errors.New("too many redirects")
		}
		if !isHTTPScheme(req.URL) {
			return errors.New("redirect to unsupported scheme")
		}
		return nil
	}
}

func isHTTPScheme(u *url.URL) bool {
	if u == nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}

// IsURL reports whether s is an absolute http(s) URL.
func IsURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	return err == nil && u.Host != "" && isHTTPScheme(u)
}

func isAllowedHTMLContentType(ct string) bool {
	ct = strings.ToLower(strings.TrimSpace(ct))
	return strings.HasPrefix(ct, "text/html") || strings.HasPrefix(ct, "application/xhtml+xml")
}

func (c *Client) pace(ctx context.Context) error {
	c.pacerOnce.Do(func() {
		if c.RatePerSecond > 0 {
			c.pacer = rate.NewLimiter(rate.Limit(c.RatePerSecond), 1)
		}
	})
	if c.pacer == nil {
		return nil
	}
	return c.pacer.Wait(ctx)
}

func (c *Client) acquire() {
	if c.MaxConcurrent <= 0 {
		return
	}
	c.limiterOnce.Do(func() {
		c.limiter = make(chan struct{}, c.MaxConcurrent)
	})
	c.limiter <- struct{}{}
}

func (c *Client) release() {
	if c.MaxConcurrent <= 0 || c.limiter == nil {
		return
	}
	select {
	case <-c.limiter:
	default:
	}
}
