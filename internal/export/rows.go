// Package export writes saved postings as CSV or XLSX spreadsheets.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"jobclip/internal/domain"
)

// columns defines the header row shared by every format.
var columns = []string{
	"Title",
	"Company",
	"Location",
	"Date Posted",
	"Reposted",
	"Source",
	"Internal ID",
	"URL",
	"Tab URL",
	"Saved At",
	"Description",
}

// Write exports postings to w in the requested format.
func Write(w io.Writer, format domain.ExportFormat, postings []domain.SavedPosting) error {
	switch format {
	case domain.ExportCSV:
		return WriteCSV(w, postings)
	case domain.ExportXLSX:
		return WriteXLSX(w, postings)
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
}

// ContentType returns the MIME type and file extension of an export format.
func ContentType(format domain.ExportFormat) (string, string) {
	if format == domain.ExportXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx"
	}
	return "text/csv; charset=utf-8", "csv"
}

// postingToRow converts a saved posting to one row of len(columns) cells.
func postingToRow(p *domain.SavedPosting) []string {
	rec := p.Record
	row := make([]string, len(columns))
	row[0] = rec.Title
	row[1] = rec.Company
	row[2] = rec.Location
	if rec.DatePosted != nil {
		row[3] = rec.DatePosted.Resolve().Format("2006-01-02")
	}
	row[4] = formatBool(rec.Reposted)
	row[5] = rec.Source
	if rec.InternalID != nil {
		row[6] = *rec.InternalID
	}
	row[7] = rec.URL
	row[8] = p.TabURL
	row[9] = p.CreatedAt.UTC().Format(time.RFC3339)
	row[10] = strings.TrimSpace(rec.Description)
	return row
}

func formatBool(b *bool) string {
	if b == nil {
		return ""
	}
	if *b {
		return "Yes"
	}
	return "No"
}
