// Package export serializes filtered sales records into the CSV layouts
// understood by accounting software. All formatters return UTF-8 text;
// EncodeShiftJIS transcodes it for download or file output.
package export

import (
	"errors"
	"fmt"

	"github.com/watamovie/CoconalaSummary/pkg/models"
)

// ErrNothingToExport is returned when the filtered subset is empty. Callers
// surface it to the user instead of producing an empty file.
var ErrNothingToExport = errors.New("no records to export")

// Journal entry constants shared by both ledger formats.
const (
	DebitAccount  = "売掛金"
	CreditAccount = "売上高"
)

// Format names an export layout.
type Format string

const (
	FormatGeneric Format = "generic"
	FormatYayoi   Format = "yayoi"
	FormatFreee   Format = "freee"
)

// Formats lists every supported export layout.
var Formats = []Format{FormatGeneric, FormatYayoi, FormatFreee}

// Render serializes records in the given format.
func Render(format Format, records []models.SalesRecord) ([]byte, error) {
	switch format {
	case FormatGeneric:
		return Generic(records)
	case FormatYayoi:
		return YayoiJournal(records)
	case FormatFreee:
		return FreeeJournal(records)
	default:
		return nil, fmt.Errorf("unknown export format: %s", format)
	}
}

// Filename returns the default download name for a format.
func Filename(format Format) string {
	switch format {
	case FormatYayoi:
		return "yayoi_import.csv"
	case FormatFreee:
		return "freee_import.csv"
	default:
		return "sales_export.csv"
	}
}
