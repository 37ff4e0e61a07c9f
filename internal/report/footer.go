package report

import (
	"strconv"
	"strings"
)

// appendSettingsFooter appends a deterministic footer with the settings that
// shaped the summaries, so a report can be reproduced.
func appendSettingsFooter(markdown string, s Settings, entries int) string {
	cfg := s.Engine.Normalize()
	var b strings.Builder
	b.WriteString(markdown)
	b.WriteString("\n---\n")
	b.WriteString("Settings: ")
	b.WriteString("entries=")
	b.WriteString(strconv.Itoa(entries))
	if cfg.HasRatio() {
		b.WriteString("; ratio=")
		b.WriteString(strconv.FormatFloat(cfg.Ratio, 'g', -1, 64))
	} else {
		b.WriteString("; sentences=")
		b.WriteString(strconv.Itoa(cfg.NumSentences))
	}
	b.WriteString("; min_sentence_length=")
	b.WriteString(strconv.Itoa(cfg.MinSentenceLength))
	b.WriteString("; similarity_threshold=")
	b.WriteString(strconv.FormatFloat(cfg.SimilarityThreshold, 'g', -1, 64))
	b.WriteString("; damping=")
	b.WriteString(strconv.FormatFloat(cfg.Damping, 'g', -1, 64))
	b.WriteString("; max_iter=")
	b.WriteString(strconv.Itoa(cfg.MaxIter))
	b.WriteString("; tolerance=")
	b.WriteString(strconv.FormatFloat(cfg.Tolerance, 'g', -1, 64))
	if s.Extractor != "" {
		b.WriteString("; extractor=")
		b.WriteString(s.Extractor)
	}
	b.WriteString("; page_cache=")
	b.WriteString(strconv.FormatBool(s.PageCache))
	b.WriteString("; summary_cache=")
	b.WriteString(strconv.FormatBool(s.SummaryCache))
	b.WriteString("\n")
	return b.String()
}
