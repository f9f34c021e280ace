package csvio

import (
	"strings"
	"time"
)

// EscapeField prepares one value for CSV output: embedded double quotes are
// doubled, and the whole field is wrapped in quotes when it contains a comma,
// a quote or a newline. Round-trips through Parse for ASCII content.
func EscapeField(value string) string {
	escaped := strings.ReplaceAll(value, `"`, `""`)
	if strings.ContainsAny(escaped, ",\"\n") {
		return `"` + escaped + `"`
	}
	return escaped
}

// Write serializes a header row plus data rows: fields joined by comma,
// records joined by LF.
func Write(headers []string, rows [][]string) string {
	var b strings.Builder
	writeRow := func(row []string) {
		for i, cell := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(EscapeField(cell))
		}
	}

	writeRow(headers)
	for _, row := range rows {
		b.WriteByte('\n')
		writeRow(row)
	}
	return b.String()
}

// ExcelVariant rewrites CSV text for spreadsheet import: a UTF-8 BOM prefix,
// CRLF/CR normalized to LF, and each line stripped of runes outside printable
// ASCII, Latin-1 supplement and the CJK unified block.
func ExcelVariant(csvText string) string {
	processed := strings.ReplaceAll(csvText, "\r\n", "\n")
	processed = strings.ReplaceAll(processed, "\r", "\n")

	lines := strings.Split(processed, "\n")
	for i, line := range lines {
		lines[i] = sanitizeLine(line)
	}

	return "\uFEFF" + strings.Join(lines, "\n")
}

func sanitizeLine(line string) string {
	var b strings.Builder
	b.Grow(len(line))
	for _, r := range line {
		switch {
		case r >= 0x20 && r <= 0x7E:
			b.WriteRune(r)
		case r >= 0xA0 && r <= 0xFF:
			b.WriteRune(r)
		case r >= 0x4E00 && r <= 0x9FFF:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ExportFilename builds the {domain}_{ISO-date}.{ext} download name,
// e.g. "expiring_plans_2025-11-26.csv".
func ExportFilename(domain string, t time.Time, ext string) string {
	return domain + "_" + t.Format("2006-01-02") + "." + ext
}
