package adapter

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
)

var (
	dateLangs   = []language.Tag{language.English, language.SimplifiedChinese}
	dateMatcher = language.NewMatcher(dateLangs)
	dateLayouts = []string{"Jan 2, 2006", "2006年1月2日"}

	inputLayouts = []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
)

// ParseTimestamp accepts the timestamp shapes the backend has been seen to
// send: RFC3339, "2006-01-02 15:04:05", "2006-01-02" and unix seconds or
// milliseconds.
func ParseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return time.Time{}, false
	}
	if n > 1e12 {
		return time.UnixMilli(n), true
	}
	return time.Unix(n, 0), true
}

// FormatDate renders raw as a human readable date in lang, or "" when raw
// cannot be parsed.
func FormatDate(raw, lang string, loc *time.Location) string {
	t, ok := ParseTimestamp(raw)
	if !ok {
		return ""
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(dateLayout(lang))
}

func dateLayout(lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		return dateLayouts[0]
	}
	_, idx, conf := dateMatcher.Match(tag)
	if conf == language.No {
		return dateLayouts[0]
	}
	return dateLayouts[idx]
}
