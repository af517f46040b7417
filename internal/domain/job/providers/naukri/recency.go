package naukri

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

var firstNumber = regexp.MustCompile(`\d+`)

var datetimeLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// parsePostedAt turns a posting-age element into an absolute time.
// A machine-readable datetime attribute wins over the visible text.
func parsePostedAt(sel *goquery.Selection, now time.Time) *time.Time {
	if sel == nil || sel.Length() == 0 {
		return nil
	}

	dt, ok := sel.Attr("datetime")
	if !ok {
		dt, ok = sel.Find("[datetime]").First().Attr("datetime")
	}
	if ok {
		if ts := parseDatetime(dt); ts != nil {
			return ts
		}
	}

	return parseRelative(sel.Text(), now)
}

func parseDatetime(s string) *time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range datetimeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return &ts
		}
	}
	return nil
}

// parseRelative reads "N days/hours/minutes ago" style text. When the number
// is missing the unit alone counts as 1 day, 1 hour or 5 minutes.
func parseRelative(text string, now time.Time) *time.Time {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return nil
	}

	if strings.Contains(text, "just now") || strings.Contains(text, "today") {
		return &now
	}

	n, hasNumber := extractNumber(text)

	var ago time.Duration
	switch {
	case strings.Contains(text, "day"):
		if !hasNumber {
			n = 1
		}
		ago = time.Duration(n) * 24 * time.Hour
	case strings.Contains(text, "hour"):
		if !hasNumber {
			n = 1
		}
		ago = time.Duration(n) * time.Hour
	case strings.Contains(text, "min"):
		if !hasNumber {
			n = 5
		}
		ago = time.Duration(n) * time.Minute
	default:
		return nil
	}

	ts := now.Add(-ago)
	return &ts
}

func extractNumber(text string) (int, bool) {
	m := firstNumber.FindString(text)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}
