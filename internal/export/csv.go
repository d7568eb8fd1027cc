package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"jobclip/internal/domain"
)

// BOM is the UTF-8 byte order mark Excel on Windows needs to detect UTF-8.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes a BOM, the header row and one row per posting.
func WriteCSV(w io.Writer, postings []domain.SavedPosting) error {
	if _, err := w.Write(BOM); err != nil {
		return fmt.Errorf("writing bom: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i := range postings {
		if err := cw.Write(postingToRow(&postings[i])); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
