package ingest

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/abhisek/quizdrill/internal/question"
)

// buildWorkbook writes rows to the first sheet and fills the given cells.
func buildWorkbook(t *testing.T, rows [][]any, fills map[string]string) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		row := r
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	for cell, color := range fills {
		style, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
		})
		require.NoError(t, err)
		require.NoError(t, f.SetCellStyle(sheet, cell, cell, style))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestParseSpreadsheet(t *testing.T) {
	data := buildWorkbook(t, [][]any{
		{"id", "type", "prompt", "A", "B", "C", "D", "E", "answer"},
		{"S1", "single", "Pick\nred", "red", "green", "", "", "", "a"},
		{"S2", "判断", "Grass is green", "ignored", "ignored", "ignored", "", "", "正确"},
		{"S3", "multi", "short row"},
	}, map[string]string{
		"D2": "#FF0000",
		"E3": "#00ff00",
	})

	qs, err := ParseSpreadsheet(data)
	require.NoError(t, err)
	require.Len(t, qs, 2)

	s1 := qs[0]
	assert.Equal(t, "S1", s1.ID)
	assert.Equal(t, "Pick red", s1.Prompt)
	assert.Equal(t, "A", s1.Answer)
	assert.Equal(t, question.SourceSpreadsheet, s1.Source)
	require.Len(t, s1.Options, 2)
	assert.Equal(t, "#FF0000", s1.Options[0].Color)
	assert.Empty(t, s1.Options[1].Color)
	assert.True(t, s1.HasColors())

	s2 := qs[1]
	assert.Equal(t, question.TypeBoolean, s2.Type)
	assert.Equal(t, "A", s2.Answer)
	require.Len(t, s2.Options, 2)
	assert.Equal(t, question.TrueText, s2.Options[0].Text)
	assert.Equal(t, "#00FF00", s2.Options[1].Color)
}

// rewriteWorkbook copies the zip parts of data through edit. Parts for which
// edit returns false are dropped.
func rewriteWorkbook(t *testing.T, data []byte, edit func(name string, body []byte) ([]byte, bool)) []byte {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, part := range zr.File {
		rc, err := part.Open()
		require.NoError(t, err)
		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())

		body, keep := edit(part.Name, body)
		if !keep {
			continue
		}
		w, err := zw.Create(part.Name)
		require.NoError(t, err)
		_, err = w.Write(body)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// replaceFgColor rewrites the fgColor element carrying rgb in the style
// sheet and fails when it is not there.
func replaceFgColor(t *testing.T, styles []byte, rgb, with string) []byte {
	t.Helper()
	re := regexp.MustCompile(`<fgColor rgb="` + rgb + `"\s*(?:/>|></fgColor>)`)
	require.Regexp(t, re, string(styles))
	return re.ReplaceAll(styles, []byte(with))
}

var colorRows = [][]any{
	{"id", "type", "prompt", "A", "B", "C", "D", "E", "answer"},
	{"C1", "single", "Pick one", "one", "two", "", "", "", "A"},
}

func TestParseSpreadsheet_ThemelessWorkbook(t *testing.T) {
	data := buildWorkbook(t, colorRows, map[string]string{"D2": "#FF0000"})
	data = rewriteWorkbook(t, data, func(name string, body []byte) ([]byte, bool) {
		return body, name != "xl/theme/theme1.xml"
	})

	qs, err := ParseSpreadsheet(data)
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, "#FF0000", qs[0].Options[0].Color)
	assert.True(t, qs[0].HasColors())
}

func TestParseSpreadsheet_FillForegroundWins(t *testing.T) {
	data := buildWorkbook(t, colorRows, map[string]string{
		"D2": "#112233",
		"E2": "#445566",
	})
	data = rewriteWorkbook(t, data, func(name string, body []byte) ([]byte, bool) {
		if name != "xl/styles.xml" {
			return body, true
		}
		body = replaceFgColor(t, body, "FF112233",
			`<fgColor rgb="FF112233"></fgColor><bgColor rgb="FFAABBCC"></bgColor>`)
		body = replaceFgColor(t, body, "FF445566", `<bgColor rgb="FF445566"></bgColor>`)
		return body, true
	})

	qs, err := ParseSpreadsheet(data)
	require.NoError(t, err)
	require.Len(t, qs, 1)
	require.Len(t, qs[0].Options, 2)
	assert.Equal(t, "#112233", qs[0].Options[0].Color, "foreground over background")
	assert.Equal(t, "#445566", qs[0].Options[1].Color, "background only")
}

func TestParseSpreadsheet_Unreadable(t *testing.T) {
	_, err := ParseSpreadsheet([]byte("definitely not a zip"))
	require.Error(t, err)

	var ie *Error
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, KindRead, ie.Kind)
}

func TestNormalizeColor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"FF0000", "#FF0000"},
		{"#ff00aa", "#FF00AA"},
		{"FFFFFF00", "#FFFF00"},
		{"80123abc", "#123ABC"},
		{"", ""},
		{"#FFF", ""},
		{"GGGGGG", ""},
	}
	for _, tt := range tests {
		if got := NormalizeColor(tt.in); got != tt.want {
			t.Errorf("NormalizeColor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
