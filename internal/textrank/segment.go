package textrank

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/hyperifyio/goskim/internal/tokenize"
)

// A sentence is a run of non-terminators followed by any terminators, so
// "Wait... what?!" yields "Wait..." and "what?!".
var sentenceRe = regexp.MustCompile(`[^.!?]+[.!?]*`)

// Sentence is one candidate unit of a Document.
type Sentence struct {
	// Index is the position among the sentences that survived filtering.
	Index int
	// Text is the trimmed original substring.
	Text string
	// Tokens are the normalized content words of Text.
	Tokens []string
}

// Document is the ordered sequence of candidate sentences of one input.
type Document struct {
	Sentences []Sentence
}

// Len returns the number of sentences.
func (d Document) Len() int { return len(d.Sentences) }

// Segment collapses whitespace and splits text into trimmed, non-empty
// sentences in their original order.
func Segment(text string) []string {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return nil
	}
	matches := sentenceRe.FindAllString(text, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if s := strings.TrimSpace(m); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// NewDocument segments text, drops sentences shorter than minLength
// characters, and tokenizes the survivors for summarization.
func NewDocument(text string, minLength int) Document {
	raw := Segment(text)
	sentences := make([]Sentence, 0, len(raw))
	for _, s := range raw {
		if utf8.RuneCountInString(s) < minLength {
			continue
		}
		sentences = append(sentences, Sentence{
			Index:  len(sentences),
			Text:   s,
			Tokens: tokenize.ForSummary(s),
		})
	}
	return Document{Sentences: sentences}
}
