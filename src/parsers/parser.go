package parsers

import (
	"fmt"
	"io"
	"strings"

	"github.com/username/galfin/src/models"
	"github.com/username/galfin/src/parsers/abn"
)

// StatementParser reads a bank statement export into raw rows. Parsers
// validate the source columns up front and fail fast with the missing names.
type StatementParser interface {
	Parse(file io.Reader) ([]models.RawStatementRow, error)
}

// GetParser returns the parser for a declared statement format. Formats map
// to the upload's file extension ("csv", "xlsx") plus the institution
// shorthand "abn" which defaults to CSV.
func GetParser(format string) (StatementParser, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "csv", "abn", "":
		return abn.NewCSVParser(), nil
	case "xlsx", "xls":
		return abn.NewXLSXParser(), nil
	default:
		return nil, fmt.Errorf("unsupported statement format: %q", format)
	}
}
