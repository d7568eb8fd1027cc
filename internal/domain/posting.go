package domain

import (
	"fmt"
	"strings"
	"time"
)

// PostingRecord is the normalized job posting every parser produces.
type PostingRecord struct {
	Title       string       `json:"title"`
	Company     string       `json:"company"`
	Description string       `json:"description"`
	Location    string       `json:"location"`
	DatePosted  *PostingDate `json:"datePosted"`
	URL         string       `json:"url"`
	InternalID  *string      `json:"internalId"`
	Source      string       `json:"source"`
	Reposted    *bool        `json:"reposted"`
}

// Validate checks that every required field is non-empty.
func (r *PostingRecord) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"title", r.Title},
		{"company", r.Company},
		{"description", r.Description},
		{"location", r.Location},
		{"url", r.URL},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("missing required field %q", f.name)
		}
	}
	return nil
}

// PostingDate is either an absolute instant or an offset relative to the
// moment the page was read. A nil *PostingDate means the date is unknown.
type PostingDate struct {
	At     *time.Time  `json:"at,omitempty"`
	Offset *DateOffset `json:"offset,omitempty"`
}

// DateOffset describes "N units ago" as seen at From. Exactly one unit is
// normally non-zero.
type DateOffset struct {
	From   time.Time `json:"from"`
	Hours  int       `json:"hours"`
	Days   int       `json:"days"`
	Weeks  int       `json:"weeks"`
	Months int       `json:"months"`
}

// Resolve returns the absolute posting time.
func (d PostingDate) Resolve() time.Time {
	if d.At != nil {
		return *d.At
	}
	if d.Offset == nil {
		return time.Time{}
	}
	o := d.Offset
	return o.From.
		Add(-time.Duration(o.Hours) * time.Hour).
		AddDate(0, -o.Months, -(o.Days + 7*o.Weeks))
}

// AbsoluteDate wraps t as a PostingDate.
func AbsoluteDate(t time.Time) *PostingDate {
	return &PostingDate{At: &t}
}
