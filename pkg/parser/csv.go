package parser

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"github.com/watamovie/CoconalaSummary/pkg/models"
)

// ParseSalesCSV parses a Shift-JIS encoded Coconala sales CSV.
// Expected header: 売上金額, 売上確定日, サービス名, 購入者名, 内訳 (any order,
// extra columns ignored).
func (p *Parser) ParseSalesCSV(data []byte) ([]models.SalesRecord, error) {
	decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), japanese.ShiftJIS.NewDecoder()))
	if err != nil {
		return nil, fmt.Errorf("failed to decode shift-jis: %w", err)
	}

	r := csv.NewReader(bytes.NewReader(decoded))
	r.FieldsPerRecord = -1 // allow variable columns, rows are validated manually

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("csv is empty")
	}

	header := rows[0]
	columns := indexColumns(header)
	if _, ok := columns[ColAmount]; !ok {
		return nil, fmt.Errorf("column %s not found in header", ColAmount)
	}
	if _, ok := columns[ColDate]; !ok {
		return nil, fmt.Errorf("column %s not found in header", ColDate)
	}

	p.logger.Debug("parsing sales CSV", "total_rows", len(rows)-1, "header", header)

	records := make([]models.SalesRecord, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		row := make(map[string]string, len(columns))
		for label, idx := range columns {
			if idx < len(rows[i]) {
				row[label] = rows[i][idx]
			}
		}
		record, ok := p.normalizeRow(row, i)
		if !ok {
			continue
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	sortByDate(records)
	p.logger.Info("sales CSV parsing complete", "total_records", len(records), "total_rows", len(rows)-1)
	return records, nil
}

// indexColumns maps the known column labels to their position in the header.
func indexColumns(header []string) map[string]int {
	columns := make(map[string]int, 5)
	for i, label := range header {
		label = strings.TrimSpace(strings.TrimPrefix(label, "\uFEFF"))
		switch label {
		case ColAmount, ColDate, ColService, ColCustomer, ColBreakdown:
			columns[label] = i
		}
	}
	return columns
}

// parseAmount strips thousands separators and parses the remainder as an
// integer yen amount.
func parseAmount(s string) (int, error) {
	s = strings.ReplaceAll(s, ",", "")
	return strconv.Atoi(s)
}
