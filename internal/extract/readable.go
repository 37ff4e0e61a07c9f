package extract

import (
	"bytes"
	"net/url"
	"strings"

	"codeberg.org/readeck/go-readability/v2"
)

// Readable is Parse with the body text taken from the readability algorithm.
// When readability fails or finds nothing, the heuristic text is kept.
func Readable(input []byte, pageURL *url.URL) Document {
	raw := ""
	if pageURL != nil {
		raw = pageURL.String()
	} else {
		pageURL = &url.URL{Scheme: "file", Path: "/"}
	}
	doc := Parse(input, raw)

	article, err := readability.FromReader(bytes.NewReader(input), pageURL)
	if err != nil {
		return doc
	}
	var b strings.Builder
	if err := article.RenderText(&b); err != nil {
		return doc
	}
	if text := cleanText(b.String()); text != "" {
		doc.Text = text
		doc.Signals.LongText = WordCount(text) >= MinArticleWords
	}
	return doc
}
