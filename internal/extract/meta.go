package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// pageMeta is what the head and structural markup say about a page.
type pageMeta struct {
	// tags maps "name:<name>" and "property:<property>" to the first content
	// value seen, keys lowercased.
	tags       map[string]string
	titleText  string
	hasArticle bool
	jsonLD     []string
}

func collectMeta(root *html.Node) pageMeta {
	m := pageMeta{tags: map[string]string{}}
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "meta":
				m.addMetaTag(n)
			case "title":
				if m.titleText == "" {
					m.titleText = strings.TrimSpace(nodeText(n))
				}
			case "article":
				m.hasArticle = true
			case "script":
				if strings.EqualFold(attr(n, "type"), "application/ld+json") {
					m.jsonLD = append(m.jsonLD, nodeText(n))
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(root)
	return m
}

func (m *pageMeta) addMetaTag(n *html.Node) {
	content := strings.TrimSpace(attr(n, "content"))
	for _, key := range []string{"name", "property"} {
		v := strings.ToLower(strings.TrimSpace(attr(n, key)))
		if v == "" {
			continue
		}
		k := key + ":" + v
		if _, ok := m.tags[k]; !ok {
			m.tags[k] = content
		}
	}
}

// first returns the first non-empty value among keys.
func (m pageMeta) first(keys ...string) string {
	for _, k := range keys {
		if v := m.tags[k]; v != "" {
			return v
		}
	}
	return ""
}

func (m pageMeta) title() string {
	if m.titleText != "" {
		return m.titleText
	}
	return m.first("property:og:title", "name:twitter:title")
}

func (m pageMeta) keywords() []string {
	return SplitKeywords(m.first("name:keywords", "name:news_keywords"))
}

// SplitKeywords parses a comma-separated keyword list, trimming entries and
// dropping empty ones.
func SplitKeywords(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var visit func(*html.Node)
	visit = func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		for cc := c.FirstChild; cc != nil; cc = cc.NextSibling {
			visit(cc)
		}
	}
	visit(n)
	return b.String()
}
