package naukri

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/honeycarbs/jobflow/internal/domain"
)

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

func slug(s string) string {
	s = nonSlug.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
	return strings.Trim(s, "-")
}

// pathURL builds the path-style listing URL, e.g. /golang-developer-jobs-in-pune
func pathURL(base string, q domain.Query) string {
	var b strings.Builder
	b.WriteString(strings.TrimSuffix(base, "/"))
	b.WriteString("/")
	b.WriteString(slug(q.Title))
	b.WriteString("-jobs")
	if loc := slug(q.Location); loc != "" {
		b.WriteString("-in-")
		b.WriteString(loc)
	}
	if q.RemoteOnly {
		b.WriteString("-remote")
	}
	return b.String()
}

// queryURL builds the query-style listing URL, e.g. /jobs?k=golang&l=pune
func queryURL(base string, q domain.Query) string {
	values := url.Values{}
	values.Set("k", strings.TrimSpace(q.Title))
	if loc := strings.TrimSpace(q.Location); loc != "" {
		values.Set("l", loc)
	}
	if q.RemoteOnly {
		values.Set("remote", "1")
	}
	return strings.TrimSuffix(base, "/") + "/jobs?" + values.Encode()
}

// absolutize resolves href against base; it returns "" for hrefs it cannot use
func absolutize(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	switch {
	case href == "":
		return ""
	case strings.HasPrefix(href, "http://"), strings.HasPrefix(href, "https://"):
		return href
	case strings.HasPrefix(href, "//"):
		return base.Scheme + ":" + href
	case strings.HasPrefix(href, "/"):
		return base.Scheme + "://" + base.Host + href
	default:
		ref, err := url.Parse(href)
		if err != nil || ref.Scheme != "" {
			return ""
		}
		return base.ResolveReference(ref).String()
	}
}
