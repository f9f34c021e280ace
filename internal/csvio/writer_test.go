package csvio

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeField(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "hello", "hello"},
		{"comma wraps", "a, b", `"a, b"`},
		{"quote doubled and wraps", `say "hi"`, `"say ""hi"""`},
		{"newline wraps", "line1\nline2", "\"line1\nline2\""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeField(tt.input))
		})
	}
}

func TestWrite(t *testing.T) {
	out := Write(
		[]string{"Name", "Phone", "Personalized Message"},
		[][]string{
			{"Arlene Tjahja", "62818785005", "Hi Arlene, come back!"},
			{"Wanti Kadarisma", "6287713111970", "Hi Wanti"},
		},
	)

	want := "Name,Phone,Personalized Message\n" +
		`Arlene Tjahja,62818785005,"Hi Arlene, come back!"` + "\n" +
		"Wanti Kadarisma,6287713111970,Hi Wanti"
	assert.Equal(t, want, out)
}

func TestWriteParseRoundTrip(t *testing.T) {
	headers := []string{"Name", "Note"}
	rows := [][]string{
		{"Theo", "likes 5 class packs, mornings"},
		{"Clairine", "plain note"},
	}

	doc, err := Parse(Write(headers, rows))
	require.NoError(t, err)

	assert.Equal(t, headers, doc.Headers)
	require.Len(t, doc.Records, 2)
	assert.Equal(t, "likes 5 class packs, mornings", doc.Records[0].Get("Note"))
	assert.Equal(t, "plain note", doc.Records[1].Get("Note"))
}

func TestExcelVariant(t *testing.T) {
	out := ExcelVariant("Name,Note\r\nTheo,ok")
	assert.True(t, strings.HasPrefix(out, "\uFEFF"))
	assert.NotContains(t, out, "\r")
	assert.Contains(t, out, "Name,Note\nTheo,ok")
}

func TestExcelVariantStripsUnsupportedRunes(t *testing.T) {
	out := ExcelVariant("Name\nThéo 😀 你好")
	assert.Contains(t, out, "Théo")
	assert.Contains(t, out, "你好")
	assert.NotContains(t, out, "😀")
}

func TestExportFilename(t *testing.T) {
	ts := time.Date(2025, 11, 26, 14, 0, 0, 0, time.Local)
	assert.Equal(t, "expiring_plans_2025-11-26.csv", ExportFilename("expiring_plans", ts, "csv"))
	assert.Equal(t, "members_all_2025-11-26.xls", ExportFilename("members_all", ts, "xls"))
}
