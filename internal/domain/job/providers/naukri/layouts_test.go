package naukri

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const layoutAPage = `<html><body>
<div class="list">
  <article class="jobTuple">
    <a class="title" href="/job-listings-go-developer-acme-1">Go Developer</a>
    <a class="subTitle">Acme Corp</a>
    <span class="ellipsis loc">Pune</span>
    <div class="type">Posted<br><span>2 days ago</span></div>
  </article>
  <article class="jobTuple">
    <a class="title" href="https://www.naukri.com/job-listings-sre-2">  Site   Reliability Engineer </a>
    <a class="subTitle">Globex</a>
  </article>
  <article class="jobTuple"><span>no link here</span></article>
</div>
<li class="listing-item"><a title="Ignored" href="/job-ignored-9">Ignored</a></li>
</body></html>`

const layoutBPage = `<html><body><ul>
  <li class="listing-item">
    <a title="Backend Engineer" href="/job-backend-engineer-3"></a>
    <span class="companyName">Initech</span>
    <span class="location">Bengaluru</span>
    <time datetime="2025-02-28T09:00:00Z">1 day ago</time>
  </li>
</ul></body></html>`

const layoutCPage = `<html><body>
  <a href="https://www.naukri.com/job-listings-platform-engineer-4">Platform Engineer</a>
  <a href="https://www.naukri.com/job-listings-platform-engineer-4">Platform Engineer</a>
  <a href="/jobs/data-engineer-5">Data Engineer</a>
  <a href="https://evil.example/job-phish-6">Phishing Job Offer</a>
  <a href="/job-x">Apply</a>
  <a href="/about">About us page</a>
</body></html>`

func parseContext() ParseContext {
	base, _ := url.Parse("https://www.naukri.com")
	return ParseContext{Base: base, Location: "Pune", Now: testNow}
}

func TestLayoutAWinsFirst(t *testing.T) {
	jobs, layout, err := ParseListing(strings.NewReader(layoutAPage), parseContext())
	require.NoError(t, err)
	assert.Equal(t, "A", layout)
	require.Len(t, jobs, 2)

	assert.Equal(t, "Go Developer", jobs[0].Title)
	assert.Equal(t, "Acme Corp", jobs[0].Company)
	assert.Equal(t, "Pune", jobs[0].Location)
	assert.Equal(t, "https://www.naukri.com/job-listings-go-developer-acme-1", jobs[0].ApplyURL)
	assert.Equal(t, "naukri", jobs[0].Source)
	require.NotNil(t, jobs[0].PostedAt)
	assert.Equal(t, testNow.Add(-48*time.Hour), *jobs[0].PostedAt)

	assert.Equal(t, "Site Reliability Engineer", jobs[1].Title)
	assert.Equal(t, "Pune", jobs[1].Location)
	assert.Nil(t, jobs[1].PostedAt)
}

func TestLayoutBWhenAFindsNothing(t *testing.T) {
	jobs, layout, err := ParseListing(strings.NewReader(layoutBPage), parseContext())
	require.NoError(t, err)
	assert.Equal(t, "B", layout)
	require.Len(t, jobs, 1)

	assert.Equal(t, "Backend Engineer", jobs[0].Title)
	assert.Equal(t, "Initech", jobs[0].Company)
	assert.Equal(t, "Bengaluru", jobs[0].Location)
	require.NotNil(t, jobs[0].PostedAt)
	assert.Equal(t, time.Date(2025, 2, 28, 9, 0, 0, 0, time.UTC), *jobs[0].PostedAt)
}

func TestLayoutCHeuristicLinks(t *testing.T) {
	jobs, layout, err := ParseListing(strings.NewReader(layoutCPage), parseContext())
	require.NoError(t, err)
	assert.Equal(t, "C", layout)
	require.Len(t, jobs, 2)

	assert.Equal(t, "Platform Engineer", jobs[0].Title)
	assert.Empty(t, jobs[0].Company)
	assert.Equal(t, "Pune", jobs[0].Location)
	assert.Equal(t, "https://www.naukri.com/jobs/data-engineer-5", jobs[1].ApplyURL)
}

func TestNoLayoutMatches(t *testing.T) {
	jobs, layout, err := ParseListing(strings.NewReader(`<html><body><p>Access denied</p></body></html>`), parseContext())
	require.NoError(t, err)
	assert.Empty(t, jobs)
	assert.Empty(t, layout)
}

func TestLayoutsArePure(t *testing.T) {
	first, _, _ := ParseListing(strings.NewReader(layoutAPage), parseContext())
	second, _, _ := ParseListing(strings.NewReader(layoutAPage), parseContext())
	assert.Equal(t, first, second)
}
