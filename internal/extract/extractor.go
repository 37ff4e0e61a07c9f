package extract

import "net/url"

// Extractor turns raw HTML into a Document.
type Extractor interface {
	Extract(input []byte, pageURL *url.URL) Document
}

// HeuristicExtractor uses the main/article/body walk only.
type HeuristicExtractor struct{}

func (HeuristicExtractor) Extract(input []byte, pageURL *url.URL) Document {
	if pageURL == nil {
		return FromHTML(input)
	}
	return Parse(input, pageURL.String())
}

// ReadabilityExtractor prefers readability text and falls back to the
// heuristic walk.
type ReadabilityExtractor struct{}

func (ReadabilityExtractor) Extract(input []byte, pageURL *url.URL) Document {
	return Readable(input, pageURL)
}

// ForMode returns the extractor named by mode: "heuristic" or "readability"
// (the default for any other value).
func ForMode(mode string) Extractor {
	if mode == "heuristic" {
		return HeuristicExtractor{}
	}
	return ReadabilityExtractor{}
}
