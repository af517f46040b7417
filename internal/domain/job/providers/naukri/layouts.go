package naukri

import (
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/publicsuffix"

	"github.com/honeycarbs/jobflow/internal/domain"
)

// ParseContext carries what the listing markup does not
type ParseContext struct {
	Base     *url.URL
	Location string
	Now      time.Time
}

// Layout is one strategy for reading postings out of a listing page
type Layout struct {
	Name  string
	Parse func(doc *goquery.Document, pc ParseContext) []domain.RawJob
}

// Layouts are tried in order; the first non-empty result wins
var Layouts = []Layout{
	{Name: "A", Parse: cardLayout{
		cards:    "article.jobTuple, div.jobTuple, div.list > article",
		title:    "a.title, a[title]",
		company:  ".subTitle, .companyInfo span, a.company",
		location: ".ellipsis.loc, .location, .loc",
		link:     `a.title, a[href*="/job-"], a[href*="/jobs/"]`,
		posted:   ".type br + span, .type, .date, .posted, time",
	}.parse},
	{Name: "B", Parse: cardLayout{
		cards:    "div.jobTuple_bg, li.listing-item, div.srp-jobtuple",
		title:    `a.title, a[title], a[href*="/job-"]`,
		company:  ".subTitle, .company, .companyName",
		location: ".location, .loc",
		link:     `a[href*="/job-"], a[href*="/jobs/"]`,
		posted:   "time, .date, .posted",
	}.parse},
	{Name: "C", Parse: parseLinks},
}

// ParseListing runs the layout cascade over an HTML listing page and reports
// which layout matched. An empty name means no layout found anything.
func ParseListing(r io.Reader, pc ParseContext) ([]domain.RawJob, string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, "", domain.Parse(err, "naukri listing")
	}
	for _, layout := range Layouts {
		if jobs := layout.Parse(doc, pc); len(jobs) > 0 {
			return jobs, layout.Name, nil
		}
	}
	return nil, "", nil
}

type cardLayout struct {
	cards    string
	title    string
	company  string
	location string
	link     string
	posted   string
}

func (l cardLayout) parse(doc *goquery.Document, pc ParseContext) []domain.RawJob {
	var out []domain.RawJob
	doc.Find(l.cards).Each(func(_ int, card *goquery.Selection) {
		titleSel := card.Find(l.title).First()
		title := cleanText(titleSel.Text())
		if title == "" {
			title = strings.TrimSpace(titleSel.AttrOr("title", ""))
		}

		href, _ := card.Find(l.link).First().Attr("href")
		applyURL := absolutize(pc.Base, href)
		if title == "" || applyURL == "" {
			return
		}

		location := cleanText(card.Find(l.location).First().Text())
		if location == "" {
			location = pc.Location
		}

		out = append(out, domain.RawJob{
			Source:   sourceKey,
			Title:    title,
			Company:  cleanText(card.Find(l.company).First().Text()),
			Location: location,
			ApplyURL: applyURL,
			PostedAt: parsePostedAt(card.Find(l.posted).First(), pc.Now),
		})
	})
	return out
}

// parseLinks picks in-site anchors whose URL looks like a job posting
func parseLinks(doc *goquery.Document, pc ParseContext) []domain.RawJob {
	site := registrableDomain(pc.Base.Hostname())
	seen := make(map[string]struct{})

	var out []domain.RawJob
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if !strings.Contains(href, "/job-") && !strings.Contains(href, "/jobs/") {
			return
		}
		title := cleanText(a.Text())
		if len(title) <= 5 {
			return
		}

		applyURL := absolutize(pc.Base, href)
		u, err := url.Parse(applyURL)
		if applyURL == "" || err != nil || !inSite(u.Hostname(), site) {
			return
		}
		if _, dup := seen[applyURL]; dup {
			return
		}
		seen[applyURL] = struct{}{}

		out = append(out, domain.RawJob{
			Source:   sourceKey,
			Title:    title,
			Location: pc.Location,
			ApplyURL: applyURL,
		})
	})
	return out
}

func registrableDomain(host string) string {
	d, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return d
}

func inSite(host, site string) bool {
	return host == site || strings.HasSuffix(host, "."+site)
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
