package csvfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	enc "github.com/rmarques/smartbooks/internal/encoding"
	"github.com/rmarques/smartbooks/internal/ledger"
)

// Column names expected in the header row. They match the JSON field set so
// that CSV and JSON batches go through identical validation.
const (
	colDate                 = "date"
	colType                 = "type"
	colStatus               = "status"
	colSourceAccountID      = "source_account_id"
	colDestinationAccountID = "destination_account_id"
	colAmount               = "amount"
	colPurpose              = "purpose"
	colCategoryID           = "category_id"
	colTags                 = "tags"
)

var requiredColumns = []string{
	colDate, colType, colStatus, colSourceAccountID,
	colDestinationAccountID, colAmount, colPurpose,
}

// tagSeparator splits multiple tag names within one cell.
const tagSeparator = "|"

// Parser reads a comma-delimited file with a header row into raw records.
// Empty cells become absent fields so that the validator reports them the
// same way as missing JSON keys.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]ledger.RawRecord, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("empty file")
	}

	colIdx, err := mapHeader(rows[0])
	if err != nil {
		return nil, err
	}

	records := make([]ledger.RawRecord, 0, len(rows)-1)

	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}

		records = append(records, rowToRecord(row, colIdx))
	}

	return records, nil
}

// mapHeader maps column names to their positions and checks that every
// required column is present.
func mapHeader(header []string) (map[string]int, error) {
	colIdx := make(map[string]int, len(header))

	for i, col := range header {
		colIdx[strings.ToLower(strings.TrimSpace(col))] = i
	}

	for _, col := range requiredColumns {
		if _, ok := colIdx[col]; !ok {
			return nil, fmt.Errorf("missing column %q in header", col)
		}
	}

	return colIdx, nil
}

func rowToRecord(row []string, colIdx map[string]int) ledger.RawRecord {
	var rec ledger.RawRecord

	rec.Date = cell(row, colIdx, colDate)
	rec.Type = cell(row, colIdx, colType)
	rec.Status = cell(row, colIdx, colStatus)
	rec.SourceAccountID = cell(row, colIdx, colSourceAccountID)
	rec.DestinationAccountID = cell(row, colIdx, colDestinationAccountID)
	rec.Purpose = cell(row, colIdx, colPurpose)
	rec.CategoryID = cell(row, colIdx, colCategoryID)

	if amount := cell(row, colIdx, colAmount); amount != nil {
		normalized := normalizeAmount(*amount)
		rec.Amount = &normalized
	}

	if tags := cell(row, colIdx, colTags); tags != nil {
		for _, tag := range strings.Split(*tags, tagSeparator) {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}

			rec.Tags = append(rec.Tags, tag)
		}
	}

	return rec
}

// cell returns the trimmed value at the named column, or nil when the
// column is missing from the row or the cell is empty.
func cell(row []string, colIdx map[string]int, name string) *string {
	idx, ok := colIdx[name]
	if !ok || idx >= len(row) {
		return nil
	}

	value := strings.TrimSpace(row[idx])
	if value == "" {
		return nil
	}

	return &value
}

// normalizeAmount strips digit grouping from spreadsheet-style amounts
// ("1,234.56" -> "1234.56"). Anything that does not parse is returned
// unchanged for the validator to reject.
func normalizeAmount(s string) string {
	clean := strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if strings.Contains(clean, ",") && strings.Contains(clean, ".") {
		clean = strings.ReplaceAll(clean, ",", "")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return s
	}

	return d.String()
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
