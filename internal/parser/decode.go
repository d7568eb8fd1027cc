package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"jobclip/internal/domain"
	"jobclip/internal/postdate"
)

var codeFenceRe = regexp.MustCompile("```(?:json|JSON)?")

// StripCodeFences removes markdown code fence markers an LLM may wrap its
// JSON in, along with surrounding whitespace.
func StripCodeFences(text string) string {
	return strings.TrimSpace(codeFenceRe.ReplaceAllString(text, ""))
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"02-01-2006",
}

type wirePosting struct {
	Title       string          `json:"title"`
	Company     string          `json:"company"`
	Description string          `json:"description"`
	Location    string          `json:"location"`
	DatePosted  json.RawMessage `json:"datePosted"`
	URL         string          `json:"url"`
	InternalID  json.RawMessage `json:"internalId"`
	Source      string          `json:"source"`
	Reposted    *bool           `json:"reposted"`
}

// DecodePosting parses the free-form text of an LLM reply into a validated
// record. Any failure is reported as a provider request failure.
func DecodePosting(provider domain.Provider, text string, now time.Time) (*domain.PostingRecord, error) {
	cleaned := StripCodeFences(text)
	if cleaned == "" {
		return nil, domain.ProviderFailure(provider, fmt.Errorf("empty completion"))
	}

	var w wirePosting
	if err := json.Unmarshal([]byte(cleaned), &w); err != nil {
		return nil, domain.ProviderFailure(provider,
			fmt.Errorf("parsing LLM JSON output: %w (raw: %s)", err, truncate(cleaned, 500)))
	}

	rec := &domain.PostingRecord{
		Title:       strings.TrimSpace(w.Title),
		Company:     strings.TrimSpace(w.Company),
		Description: strings.TrimSpace(w.Description),
		Location:    strings.TrimSpace(w.Location),
		DatePosted:  decodeDate(w.DatePosted, now),
		URL:         strings.TrimSpace(w.URL),
		InternalID:  decodeID(w.InternalID),
		Source:      strings.TrimSpace(w.Source),
		Reposted:    w.Reposted,
	}
	if rec.Source == "" {
		rec.Source = provider.DisplayName()
	}
	if err := rec.Validate(); err != nil {
		return nil, domain.ProviderFailure(provider, err)
	}
	return rec, nil
}

// decodeDate accepts an absolute date string or a relative phrase. Anything
// else leaves the date unknown.
func decodeDate(raw json.RawMessage, now time.Time) *domain.PostingDate {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return domain.AbsoluteDate(t)
		}
	}
	if d, err := postdate.Parse(s, now); err == nil {
		return &d
	}
	return nil
}

func decodeID(raw json.RawMessage) *string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return nil
		}
		return &s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		id := n.String()
		return &id
	}
	return nil
}
