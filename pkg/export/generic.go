package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/watamovie/CoconalaSummary/pkg/models"
)

// Generic writes the filtered subset as a plain tabular CSV, one row per
// record, with a header.
func Generic(records []models.SalesRecord) ([]byte, error) {
	if len(records) == 0 {
		return nil, ErrNothingToExport
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"日付", "サービス名", "購入者名", "内訳", "金額"}); err != nil {
		return nil, fmt.Errorf("error writing csv header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.DateKey(),
			r.Service,
			r.Customer,
			r.Breakdown,
			strconv.Itoa(r.Amount),
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
