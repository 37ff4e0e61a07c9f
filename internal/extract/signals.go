package extract

import (
	"errors"
	"regexp"
	"strings"
)

// RequiredSignals is how many article signals a page needs to count as an
// article.
const RequiredSignals = 2

// MinArticleWords is the body length that counts as an article signal.
const MinArticleWords = 300

// ErrNotArticle is returned by callers that only accept article pages.
var ErrNotArticle = errors.New("page does not look like an article")

var (
	articlePathRe = regexp.MustCompile(`/news/|/article/|/articles/|/stories/`)
	datedPathRe   = regexp.MustCompile(`/20\d{2}/\d{1,2}/\d{1,2}/|/20\d{2}/\d{1,2}/`)
	newsHostRe    = regexp.MustCompile(`news\.`)
	ldArticleRe   = regexp.MustCompile(`(?i)"@type"\s*:\s*"(Article|NewsArticle)"`)
)

var newsTerms = []string{"news", "breaking", "report", "analysis", "opinion", "coverage", "exclusive", "editorial", "interview", "update"}

// Signals are independent hints that a page is a news or blog article.
type Signals struct {
	ArticleTag   bool `json:"article_tag"`
	OpenGraph    bool `json:"open_graph"`
	ArticleURL   bool `json:"article_url"`
	LongText     bool `json:"long_text"`
	NewsKeywords bool `json:"news_keywords"`
	TitleByline  bool `json:"title_byline"`
}

// Count returns how many signals fired.
func (s Signals) Count() int {
	n := 0
	for _, v := range []bool{s.ArticleTag, s.OpenGraph, s.ArticleURL, s.LongText, s.NewsKeywords, s.TitleByline} {
		if v {
			n++
		}
	}
	return n
}

// LooksLikeArticle reports whether at least RequiredSignals signals fired.
func (d Document) LooksLikeArticle() bool {
	return d.Signals.Count() >= RequiredSignals
}

func detectSignals(m pageMeta, doc Document, pageURL string) Signals {
	return Signals{
		ArticleTag:   m.hasArticle,
		OpenGraph:    openGraphArticle(m),
		ArticleURL:   URLLooksLikeArticle(pageURL),
		LongText:     WordCount(doc.Text) >= MinArticleWords,
		NewsKeywords: mentionsNews(m.tags["name:keywords"] + " " + m.tags["name:news_keywords"] + " " + m.tags["name:description"]),
		TitleByline:  WordCount(doc.Title) >= 3 || strings.TrimSpace(doc.Byline) != "",
	}
}

// openGraphArticle trusts og:type when present and otherwise looks for an
// Article or NewsArticle JSON-LD object.
func openGraphArticle(m pageMeta) bool {
	if og := strings.ToLower(m.tags["property:og:type"]); og != "" {
		return strings.Contains(og, "article")
	}
	return ldArticleRe.MatchString(strings.Join(m.jsonLD, " "))
}

// URLLooksLikeArticle matches typical news and blog URL shapes.
func URLLooksLikeArticle(u string) bool {
	lower := strings.ToLower(u)
	if lower == "" {
		return false
	}
	return articlePathRe.MatchString(lower) || datedPathRe.MatchString(lower) || newsHostRe.MatchString(lower)
}

func mentionsNews(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return false
	}
	for _, term := range newsTerms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}
