// Package postdate infers a posting date from phrases like "3 days ago" or
// "Reposted 2 weeks ago".
package postdate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"jobclip/internal/domain"
)

var relativeRe = regexp.MustCompile(`(?i)(reposted\s*)?(\d+)\s*(hour|day|week|month)s?\s*ago`)

// Parse converts a relative-time phrase into a date offset from now.
func Parse(phrase string, now time.Time) (domain.PostingDate, error) {
	m := relativeRe.FindStringSubmatch(phrase)
	if m == nil {
		return domain.PostingDate{}, domain.NewParseError(domain.ErrDateParseFailed,
			"failed to parse posting date", fmt.Errorf("unrecognised phrase %q", phrase))
	}

	n, err := strconv.Atoi(m[2])
	if err != nil {
		return domain.PostingDate{}, domain.NewParseError(domain.ErrDateParseFailed,
			"failed to parse posting date", err)
	}

	off := &domain.DateOffset{From: now}
	switch strings.ToLower(m[3]) {
	case "hour":
		off.Hours = n
	case "day":
		off.Days = n
	case "week":
		off.Weeks = n
	case "month":
		off.Months = n
	}
	return domain.PostingDate{Offset: off}, nil
}

// IsReposted reports whether the phrase carries the leading "Reposted" marker.
func IsReposted(phrase string) bool {
	return strings.HasPrefix(strings.TrimSpace(phrase), "Reposted")
}
