// Package inputs canonicalizes and de-duplicates the sources given on the
// command line.
package inputs

import (
	"net/url"
	"path/filepath"
	"strings"
)

// trackingParams are query parameters dropped from URL inputs.
var trackingParams = []string{"utm_source", "utm_medium", "utm_campaign", "utm_term", "utm_content", "utm_id", "gclid", "fbclid"}

// Normalize returns the canonical form of one input. URLs lose their fragment
// and tracking parameters and get a lowercase host; file paths are cleaned.
// Stdin ("-") is returned unchanged.
func Normalize(in string) string {
	in = strings.TrimSpace(in)
	if in == "" || in == "-" {
		return in
	}
	lower := strings.ToLower(in)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		u, err := url.Parse(in)
		if err != nil {
			return in
		}
		normalizeURL(u)
		return u.String()
	}
	return filepath.Clean(in)
}

// Dedupe normalizes inputs and keeps the first occurrence of each, in order.
// Blank entries are dropped.
func Dedupe(list []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(list))
	for _, in := range list {
		key := Normalize(in)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}

func normalizeURL(u *url.URL) {
	u.Fragment = ""
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	if u.RawQuery == "" {
		return
	}
	q := u.Query()
	for _, p := range trackingParams {
		q.Del(p)
	}
	u.RawQuery = q.Encode()
}
