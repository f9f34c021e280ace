package csvio

import (
	"errors"
	"strings"

	"studio_crm_backend/pkg/utils"
)

var (
	// ErrNoData is returned when the input is missing the header row or has
	// no data rows beneath it. This is the only fatal parse condition;
	// everything below row level degrades per field instead.
	ErrNoData = errors.New("csv input must have at least a header row and one data row")
)

// Record maps header names to the trimmed string value of one data row.
type Record map[string]string

// Get returns the raw cell for a header, or "" when the column is absent.
func (r Record) Get(header string) string {
	return r[header]
}

// Number returns the cell parsed as a decimal, defaulting to 0 for empty or
// malformed cells so aggregate math stays total.
func (r Record) Number(header string) float64 {
	return utils.NumberOrZero(r[header])
}

// Document is a parsed CSV: the header row plus one Record per data row.
type Document struct {
	Headers []string
	Records []Record
}

// SplitLine splits one delimited line into fields. A double quote toggles the
// in-quotes state; commas inside quotes are not delimiters. Field boundaries
// are trimmed. Escaped quotes ("") are not interpreted on read; the writer is
// the side responsible for producing them.
func SplitLine(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for _, ch := range line {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))

	return fields
}

// Parse turns CSV text into a Document. Line endings are normalized to LF,
// blank lines are dropped, the first non-blank line is the header row and
// every following line is zipped positionally against it. Rows with fewer
// fields than headers fill the missing trailing columns with "".
func Parse(text string) (*Document, error) {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")

	var lines []string
	for _, line := range strings.Split(normalized, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) < 2 {
		return nil, ErrNoData
	}

	headers := SplitLine(lines[0])
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	records := make([]Record, 0, len(lines)-1)
	for _, line := range lines[1:] {
		values := SplitLine(line)
		record := make(Record, len(headers))
		for i, header := range headers {
			if i < len(values) {
				record[header] = values[i]
			} else {
				record[header] = ""
			}
		}
		records = append(records, record)
	}

	return &Document{Headers: headers, Records: records}, nil
}
