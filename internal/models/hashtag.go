package models

import (
	"strings"
	"time"
	"unicode"
)

// TrendingTag is one ranked row of the trending hashtags aggregate.
type TrendingTag struct {
	Tag        string    `json:"tag"`
	PostCount  int       `json:"post_count"`
	LastTagged time.Time `json:"last_tagged"`
}

// ExtractHashtags scans text for #word tokens and returns them case-folded and
// deduplicated, preserving first-seen order. A word runs over letters, digits and
// underscores; a bare '#' contributes nothing.
func ExtractHashtags(text string) []string {
	var tags []string
	seen := make(map[string]struct{})

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '#' {
			continue
		}
		j := i + 1
		for j < len(runes) && isTagRune(runes[j]) {
			j++
		}
		if j == i+1 {
			continue
		}
		tag := strings.ToLower(string(runes[i+1 : j]))
		if _, ok := seen[tag]; !ok {
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
		i = j - 1
	}
	return tags
}

func isTagRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
