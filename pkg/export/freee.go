package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/watamovie/CoconalaSummary/pkg/models"
)

// FreeeJournal writes the subset as freee 振替伝票 import rows: a header,
// then one double-entry line per record. Dates are hyphenated, unlike the
// Yayoi layout.
func FreeeJournal(records []models.SalesRecord) ([]byte, error) {
	if len(records) == 0 {
		return nil, ErrNothingToExport
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"発生日", "借方勘定科目", "借方金額", "貸方勘定科目", "貸方金額", "摘要"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("error writing csv header: %w", err)
	}
	for _, r := range records {
		amount := strconv.Itoa(r.Amount)
		row := []string{
			r.Date.Format("2006-01-02"),
			DebitAccount,
			amount,
			CreditAccount,
			amount,
			fmt.Sprintf("%s / %s", r.Service, r.Customer),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("error writing record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
