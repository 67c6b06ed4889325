package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/watamovie/CoconalaSummary/pkg/models"
)

// Yayoi journal-entry flag marking a regular imported line.
const yayoiEntryFlag = "2000"

// YayoiJournal writes the subset as 弥生会計 journal-import rows: no header,
// one double-entry line per record with the amount on both the debit and
// credit side. Text fields are double-quoted, amounts are bare.
func YayoiJournal(records []models.SalesRecord) ([]byte, error) {
	if len(records) == 0 {
		return nil, ErrNothingToExport
	}

	var buf bytes.Buffer
	for _, r := range records {
		description := fmt.Sprintf("%s (%s)", r.Service, r.Customer)
		// flag, slip no, settlement, date, debit account, debit amount,
		// credit account, credit amount, description
		buf.WriteString(fmt.Sprintf("%s,%s,%s,%s,%s,%d,%s,%d,%s\n",
			quote(yayoiEntryFlag),
			quote(""),
			quote(""),
			quote(r.DateKey()),
			quote(DebitAccount),
			r.Amount,
			quote(CreditAccount),
			r.Amount,
			quote(description)))
	}
	return buf.Bytes(), nil
}

// quote wraps a field in double quotes, doubling any embedded quote.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
