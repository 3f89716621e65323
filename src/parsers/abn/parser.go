// Package abn parses ABN AMRO statement exports. The bank ships the same
// tabular layout as CSV and as an Excel workbook; both carry the columns
// accountNumber, mutationcode, transactiondate (integer YYYYMMDD), amount
// and description.
package abn

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/username/galfin/src/models"
)

// ErrMissingColumns marks statement files whose header lacks required
// columns. The error text lists the missing names verbatim.
var ErrMissingColumns = fmt.Errorf("statement file missing required columns")

var requiredColumns = []string{
	"accountnumber",
	"mutationcode",
	"transactiondate",
	"amount",
	"description",
}

// CSVParser reads the CSV flavour of the export.
type CSVParser struct{}

func NewCSVParser() *CSVParser { return &CSVParser{} }

func (p *CSVParser) Parse(file io.Reader) ([]models.RawStatementRow, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var rows []models.RawStatementRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		rows = append(rows, rowFromRecord(record, idx))
	}
	return rows, nil
}

// XLSXParser reads the Excel workbook flavour of the export. The first
// sheet holds the statement, header on the first row.
type XLSXParser struct{}

func NewXLSXParser() *XLSXParser { return &XLSXParser{} }

func (p *XLSXParser) Parse(file io.Reader) ([]models.RawStatementRow, error) {
	wb, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	records, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("failed to read workbook header: sheet %q is empty", sheets[0])
	}

	idx, err := columnIndex(records[0])
	if err != nil {
		return nil, err
	}

	var rows []models.RawStatementRow
	for _, record := range records[1:] {
		rows = append(rows, rowFromRecord(record, idx))
	}
	return rows, nil
}

// columnIndex maps the required columns onto header positions,
// case-insensitively. Any absent column is a configuration error; the
// missing names are reported sorted, all at once.
func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[strings.ToLower(strings.TrimSpace(col))] = i
	}
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return idx, nil
}

func rowFromRecord(record []string, idx map[string]int) models.RawStatementRow {
	get := func(col string) string {
		i := idx[col]
		if i >= len(record) {
			return ""
		}
		return record[i]
	}
	return models.RawStatementRow{
		AccountNumber:   get("accountnumber"),
		MutationCode:    get("mutationcode"),
		TransactionDate: get("transactiondate"),
		Amount:          get("amount"),
		Description:     get("description"),
	}
}
