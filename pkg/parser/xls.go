package parser

import (
	"bytes"
	"fmt"

	"github.com/extrame/xls"

	"github.com/watamovie/CoconalaSummary/pkg/models"
)

// ParseSalesXLS parses an XLS export carrying the same sales columns as the
// CSV. The header is located by scanning for the amount and date labels.
func (p *Parser) ParseSalesXLS(data []byte) ([]models.SalesRecord, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "cp932")
	if err != nil {
		return nil, fmt.Errorf("error creating workbook: %w", err)
	}

	rows := workbook.ReadAllCells(10000)
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in sheet")
	}

	var columns map[string]int
	records := make([]models.SalesRecord, 0, len(rows))

	for i, cells := range rows {
		if columns == nil {
			candidate := indexColumns(cells)
			_, hasAmount := candidate[ColAmount]
			_, hasDate := candidate[ColDate]
			if hasAmount && hasDate {
				columns = candidate
			}
			continue
		}

		row := make(map[string]string, len(columns))
		for label, idx := range columns {
			if idx < len(cells) {
				row[label] = cells[idx]
			}
		}
		record, ok := p.normalizeRow(row, i)
		if !ok {
			continue
		}
		records = append(records, record)
	}

	if columns == nil {
		return nil, fmt.Errorf("sales header row not found in sheet")
	}
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	sortByDate(records)
	p.logger.Info("sales XLS parsing complete", "total_records", len(records))
	return records, nil
}
