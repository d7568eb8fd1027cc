// Package linkedin scrapes job postings from LinkedIn job pages.
package linkedin

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"jobclip/internal/domain"
	"jobclip/internal/page"
	"jobclip/internal/postdate"
	"jobclip/internal/richtext"
)

const (
	sourceName   = "LinkedIn"
	urlPrefix    = "https://www.linkedin.com/"
	canonicalFmt = "https://www.linkedin.com/jobs/view/%s/"
	unknownID    = "?"
	detailSep    = "·"

	selDescription = "#job-details"
	selCompany     = ".job-details-jobs-unified-top-card__company-name"
	selTitle       = ".job-details-jobs-unified-top-card__job-title"
	selDetails     = ".job-details-jobs-unified-top-card__tertiary-description-container"
)

var idPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/jobs/view/(\d+)`),
	regexp.MustCompile(`currentJobId=(\d+)`),
}

// Matches reports whether url is a LinkedIn page this parser handles.
func Matches(url string) bool {
	return strings.HasPrefix(url, urlPrefix)
}

// Parser implements port.PostingParser for LinkedIn. It holds no state
// between calls.
type Parser struct {
	host  page.ScriptHost
	clock func() time.Time
}

// NewParser creates a LinkedIn parser. A nil clock uses time.Now.
func NewParser(host page.ScriptHost, clock func() time.Time) *Parser {
	if clock == nil {
		clock = time.Now
	}
	return &Parser{host: host, clock: clock}
}

// Parse scrapes the job view open in tab.
func (p *Parser) Parse(ctx context.Context, tab *domain.Tab) (*domain.PostingRecord, error) {
	if tab == nil {
		return nil, domain.NewParseError(domain.ErrNoActiveTab, "No active tab found.", nil)
	}
	if !Matches(tab.URL) {
		return nil, domain.NewParseError(domain.ErrUnsupportedPage, "Not a LinkedIn job page",
			fmt.Errorf("url %q", tab.URL))
	}

	now := p.clock()
	tabURL := tab.URL
	return page.Extract(ctx, p.host, *tab, func(pg *page.Page) (*domain.PostingRecord, error) {
		return scrape(pg.Doc, tabURL, now)
	})
}

func scrape(doc *goquery.Document, tabURL string, now time.Time) (*domain.PostingRecord, error) {
	descEl, err := anchor(doc, selDescription)
	if err != nil {
		return nil, err
	}
	companyEl, err := anchor(doc, selCompany)
	if err != nil {
		return nil, err
	}
	titleEl, err := anchor(doc, selTitle)
	if err != nil {
		return nil, err
	}
	detailsEl, err := anchor(doc, selDetails)
	if err != nil {
		return nil, err
	}

	parts := strings.Split(detailsEl.Text(), detailSep)
	location := strings.TrimSpace(parts[0])
	if location == "" {
		return nil, domain.ElementNotFound(selDetails)
	}
	if len(parts) < 2 {
		return nil, domain.NewParseError(domain.ErrDateParseFailed, "failed to parse posting date",
			fmt.Errorf("no time phrase in %q", strings.TrimSpace(detailsEl.Text())))
	}
	phrase := strings.TrimSpace(parts[1])
	date, err := postdate.Parse(phrase, now)
	if err != nil {
		return nil, err
	}

	description := richtext.Reconstruct(descEl.Nodes[0])
	if description == "" {
		return nil, domain.ElementNotFound(selDescription)
	}

	id := internalID(tabURL)
	url := tabURL
	if id != unknownID {
		url = fmt.Sprintf(canonicalFmt, id)
	}
	reposted := postdate.IsReposted(phrase)

	rec := &domain.PostingRecord{
		Title:       strings.TrimSpace(titleEl.Text()),
		Company:     strings.TrimSpace(companyEl.Text()),
		Description: description,
		Location:    location,
		DatePosted:  &date,
		URL:         url,
		InternalID:  &id,
		Source:      sourceName,
		Reposted:    &reposted,
	}
	return rec, nil
}

// anchor returns the first match of selector. Missing or blank anchors are
// reported as ElementNotFound.
func anchor(doc *goquery.Document, selector string) (*goquery.Selection, error) {
	sel := doc.Find(selector).First()
	if sel.Length() == 0 || strings.TrimSpace(sel.Text()) == "" {
		return nil, domain.ElementNotFound(selector)
	}
	return sel, nil
}

func internalID(url string) string {
	for _, re := range idPatterns {
		if m := re.FindStringSubmatch(url); m != nil {
			return m[1]
		}
	}
	return unknownID
}
