package naukri

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func TestParseRelative(t *testing.T) {
	cases := []struct {
		text string
		ago  time.Duration
	}{
		{"3 days ago", 72 * time.Hour},
		{"Posted 1 Day Ago", 24 * time.Hour},
		{"30+ days ago", 30 * 24 * time.Hour},
		{"a day ago", 24 * time.Hour},
		{"2 hours ago", 2 * time.Hour},
		{"few hours ago", time.Hour},
		{"15 minutes ago", 15 * time.Minute},
		{"minutes ago", 5 * time.Minute},
		{"Just now", 0},
		{"Today", 0},
	}
	for _, tc := range cases {
		got := parseRelative(tc.text, testNow)
		require.NotNil(t, got, tc.text)
		assert.Equal(t, testNow.Add(-tc.ago), *got, tc.text)
	}

	assert.Nil(t, parseRelative("", testNow))
	assert.Nil(t, parseRelative("hiring actively", testNow))
}

func selection(t *testing.T, html string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc.Find("#posted")
}

func TestParsePostedAtPrefersDatetime(t *testing.T) {
	sel := selection(t, `<time id="posted" datetime="2025-02-20T08:00:00Z">1 day ago</time>`)
	got := parsePostedAt(sel, testNow)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2025, 2, 20, 8, 0, 0, 0, time.UTC), *got)

	nested := selection(t, `<span id="posted">Posted <time datetime="2025-02-21">yesterday</time></span>`)
	got = parsePostedAt(nested, testNow)
	require.NotNil(t, got)
	assert.Equal(t, 21, got.Day())
}

func TestParsePostedAtFallsBackToText(t *testing.T) {
	sel := selection(t, `<time id="posted" datetime="not a date">2 days ago</time>`)
	got := parsePostedAt(sel, testNow)
	require.NotNil(t, got)
	assert.Equal(t, testNow.Add(-48*time.Hour), *got)

	assert.Nil(t, parsePostedAt(selection(t, `<p>nothing</p>`), testNow))
}
