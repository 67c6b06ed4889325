package parser

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/watamovie/CoconalaSummary/pkg/models"
)

// Column labels of the Coconala sales CSV. Additional columns are ignored.
const (
	ColAmount    = "売上金額"
	ColDate      = "売上確定日"
	ColService   = "サービス名"
	ColCustomer  = "購入者名"
	ColBreakdown = "内訳"
)

// ErrNoRecords is returned when a file decodes fine but yields no usable rows.
var ErrNoRecords = errors.New("no valid sales records found")

// Date layouts accepted for 売上確定日, tried in order.
var dateLayouts = []string{
	"2006/01/02",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006-01-02 15:04:05",
}

type FileType string

const (
	SalesCSV FileType = "sales_csv"
	SalesXLS FileType = "sales_xls"
)

type Parser struct {
	logger *log.Logger
}

func New(logger *log.Logger) *Parser {
	return &Parser{
		logger: logger,
	}
}

// ProcessBytes parses a sales file into normalized records, sorted ascending
// by date. The whole file is rejected only when it cannot be decoded at all
// or when no row survives normalization.
func (p *Parser) ProcessBytes(data []byte, filename string) ([]models.SalesRecord, error) {
	fileType := detectType(filename)
	p.logger.Debug("detected file type", "type", fileType, "filename", filename)

	switch fileType {
	case SalesCSV:
		return p.ParseSalesCSV(data)
	case SalesXLS:
		return p.ParseSalesXLS(data)
	default:
		p.logger.Debug("unknown file type", "filename", filename)
		return nil, fmt.Errorf("unsupported file type: %s", filename)
	}
}

func detectType(filename string) FileType {
	lowerFilename := strings.ToLower(filename)
	if strings.HasSuffix(lowerFilename, ".csv") {
		return SalesCSV
	}
	if strings.HasSuffix(lowerFilename, ".xls") {
		return SalesXLS
	}
	return ""
}

// normalizeRow converts one raw row into a SalesRecord. A row is dropped when
// the amount or date field is absent or blank; a present but unparseable
// amount degrades to 0 so the rest of the dataset stays usable.
func (p *Parser) normalizeRow(row map[string]string, line int) (models.SalesRecord, bool) {
	amountStr := strings.TrimSpace(row[ColAmount])
	dateStr := strings.TrimSpace(row[ColDate])
	if amountStr == "" || dateStr == "" {
		p.logger.Debug("row missing amount or date, skipping", "line", line)
		return models.SalesRecord{}, false
	}

	date, err := parseDate(dateStr)
	if err != nil {
		p.logger.Debug("unparseable date, skipping", "line", line, "date", dateStr)
		return models.SalesRecord{}, false
	}

	amount, err := parseAmount(amountStr)
	if err != nil {
		p.logger.Debug("unparseable amount, using 0", "line", line, "amount", amountStr)
		amount = 0
	}

	record := models.SalesRecord{
		Date:      date,
		Amount:    amount,
		Service:   strings.TrimSpace(row[ColService]),
		Customer:  strings.TrimSpace(row[ColCustomer]),
		Breakdown: strings.TrimSpace(row[ColBreakdown]),
	}
	if record.Service == "" {
		record.Service = models.UnknownLabel
	}
	if record.Customer == "" {
		record.Customer = models.UnknownLabel
	}
	if record.Breakdown == "" {
		record.Breakdown = models.OtherBreakdown
	}
	return record, true
}

// sortByDate orders records ascending by date, keeping source order for ties.
func sortByDate(records []models.SalesRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if date, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return date, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported date format: %s", s)
}
