package utils

import (
	"regexp"
	"strings"
)

var markdownImageRe = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)

// Excerpt cuts content to at most maxLength runes for list previews. A
// markdown image is never split: when the cut falls inside one the excerpt
// ends before it. The cut then moves back to a sentence end or space if one
// exists in the second half.
func Excerpt(content string, maxLength int) string {
	content = strings.TrimSpace(content)
	runes := []rune(content)
	if maxLength <= 0 || len(runes) <= maxLength {
		return content
	}

	cut := len(string(runes[:maxLength]))
	for _, loc := range markdownImageRe.FindAllStringIndex(content, -1) {
		if loc[0] < cut && loc[1] > cut {
			cut = loc[0]
			break
		}
	}
	if open := strings.LastIndex(content[:cut], "!["); open >= 0 && !markdownImageRe.MatchString(content[open:cut]) {
		cut = open
	}

	truncated := sentenceBoundary(content[:cut])
	return strings.TrimSpace(truncated) + "..."
}

func sentenceBoundary(content string) string {
	minPos := len(content) / 2
	for _, sep := range []string{"。", ". ", "\n", " "} {
		if i := strings.LastIndex(content, sep); i > minPos {
			return content[:i+len(strings.TrimRight(sep, " "))]
		}
	}
	return content
}
