package text

import (
	"regexp"
	"strings"
)

// DefaultMaxSentences is used when the caller gives no usable limit.
const DefaultMaxSentences = 3

// sentenceBreak matches terminal punctuation followed by whitespace. The
// punctuation stays with the preceding sentence.
var sentenceBreak = regexp.MustCompile(`[.!?][\s\p{Z}]+`)

// Summary is the outcome of Summarize.
type Summary struct {
	Text         string
	Words        int
	MaxSentences int
}

// SplitSentences splits s at whitespace that follows '.', '!' or '?'.
// Abbreviations, decimals and quoted punctuation are not special-cased.
func SplitSentences(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	locs := sentenceBreak.FindAllStringIndex(s, -1)
	out := make([]string, 0, len(locs)+1)
	prev := 0
	for _, loc := range locs {
		out = append(out, s[prev:loc[0]+1])
		prev = loc[1]
	}
	return append(out, s[prev:])
}

// Summarize keeps the first limit sentences of s joined by a single space.
// A non-positive limit yields an empty summary.
func Summarize(s string, limit int) Summary {
	sum := Summary{MaxSentences: limit}
	if limit <= 0 {
		return sum
	}
	sentences := SplitSentences(s)
	if len(sentences) > limit {
		sentences = sentences[:limit]
	}
	sum.Text = strings.Join(sentences, " ")
	sum.Words = len(strings.Fields(sum.Text))
	return sum
}
