package extract

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// Document is the readable content of one HTML page plus the metadata the
// summarizer and tagger need.
type Document struct {
	Title   string
	Byline  string
	Excerpt string
	// Keywords are the page's declared keywords in document order.
	Keywords []string
	// Text is the readable body, NFC-normalized, one block per line.
	Text    string
	Signals Signals
}

// FromHTML extracts a Document from HTML without knowing the page URL.
func FromHTML(input []byte) Document {
	return Parse(input, "")
}

// Parse extracts readable text and metadata from HTML. The body is taken
// from <main>, then <article>, then <body>; navigation, footers, scripts and
// consent banners are skipped. pageURL only feeds the article signals.
func Parse(input []byte, pageURL string) Document {
	root, err := html.Parse(bytes.NewReader(input))
	if err != nil || root == nil {
		return Document{}
	}
	meta := collectMeta(root)

	var content *html.Node
	for _, tag := range []string{"main", "article", "body"} {
		if content = findFirst(root, tag); content != nil {
			break
		}
	}
	var b strings.Builder
	if content != nil {
		w := textWalker{b: &b}
		w.walk(content)
	}

	doc := Document{
		Title:    meta.title(),
		Byline:   meta.first("name:author", "property:article:author"),
		Excerpt:  meta.first("name:description", "property:og:description"),
		Keywords: meta.keywords(),
		Text:     cleanText(b.String()),
	}
	doc.Signals = detectSignals(meta, doc, pageURL)
	return doc
}

func findFirst(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && strings.EqualFold(n.Data, tag) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// Outside <pre>, source line breaks are layout, not content.
var inlineSpace = strings.NewReplacer("\t", " ", "\r", " ", "\n", " ")

// textWalker writes the visible text of a subtree, inserting line breaks at
// block boundaries so that paragraphs stay apart.
type textWalker struct {
	b     *strings.Builder
	inPre int
}

func (w *textWalker) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		data := n.Data
		if w.inPre == 0 {
			data = inlineSpace.Replace(data)
		}
		w.b.WriteString(data)
		return
	case html.ElementNode:
		if isBoilerplate(n) {
			return
		}
	}

	name := strings.ToLower(n.Data)
	block := n.Type == html.ElementNode && isBlock(name)
	pre := n.Type == html.ElementNode && (name == "pre" || name == "code")
	if n.Type == html.ElementNode && (name == "br" || name == "hr") {
		w.b.WriteByte('\n')
	}
	if block {
		w.newline()
	}
	if pre {
		w.inPre++
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
	if pre {
		w.inPre--
		w.newline()
	}
	if block {
		w.newline()
	}
}

// newline ends the current line unless it is already empty.
func (w *textWalker) newline() {
	if w.b.Len() == 0 {
		return
	}
	if s := w.b.String(); s[len(s)-1] != '\n' {
		w.b.WriteByte('\n')
	}
}

func isBlock(name string) bool {
	switch name {
	case "p", "div", "section", "blockquote", "li", "ul", "ol", "table", "tr",
		"h1", "h2", "h3", "h4", "h5", "h6", "figcaption", "header":
		return true
	}
	return false
}

var boilerplateMarkers = []string{"cookie", "consent", "gdpr", "newsletter-signup", "share-buttons"}

// isBoilerplate reports elements that never hold article text.
func isBoilerplate(n *html.Node) bool {
	switch strings.ToLower(n.Data) {
	case "script", "style", "noscript", "nav", "footer", "aside", "iframe", "form", "svg", "template":
		return true
	}
	for _, attr := range n.Attr {
		key := strings.ToLower(attr.Key)
		if key != "id" && key != "class" && key != "role" && key != "aria-label" && !strings.HasPrefix(key, "data-") {
			continue
		}
		val := strings.ToLower(attr.Val)
		for _, m := range boilerplateMarkers {
			if strings.Contains(val, m) {
				return true
			}
		}
	}
	return false
}

// cleanText NFC-normalizes s, collapses whitespace within lines, and keeps
// at most one blank line between blocks.
func cleanText(s string) string {
	s = norm.NFC.String(s)
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			if len(out) == 0 || out[len(out)-1] == "" {
				continue
			}
		}
		out = append(out, line)
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}

// WordCount returns the number of whitespace-separated words in s.
func WordCount(s string) int {
	return len(strings.Fields(s))
}
