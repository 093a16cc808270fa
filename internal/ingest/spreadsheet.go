package ingest

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/quizdrill/internal/question"
)

// ParseSpreadsheet parses the first sheet of a workbook. Option cells keep
// their fill colour when one is set.
func (p *Parser) ParseSpreadsheet(data []byte) ([]question.Question, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &Error{Kind: KindRead, Err: fmt.Errorf("open workbook: %w", err)}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &Error{Kind: KindRead, Err: fmt.Errorf("workbook has no sheets")}
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &Error{Kind: KindRead, Err: fmt.Errorf("read sheet %q: %w", sheet, err)}
	}

	b := newRowBuilder(question.SourceSpreadsheet, p.log)
	for i, cells := range rows {
		if i == 0 {
			continue
		}
		row := i + 1
		var colors []string
		if len(cells) >= minColumns {
			colors = p.optionColors(f, sheet, row)
		}
		if err := b.add(row, cells, colors); err != nil {
			return nil, err
		}
	}

	records, err := b.result()
	if err != nil {
		return nil, err
	}
	p.log.Debug().Int("questions", len(records)).Str("sheet", sheet).Msg("parsed spreadsheet bank")
	return records, nil
}

// optionColors returns the normalized fill colour of each option cell in row.
func (p *Parser) optionColors(f *excelize.File, sheet string, row int) []string {
	colors := make([]string, len(question.Labels))
	for i := range question.Labels {
		cell, err := excelize.CoordinatesToCellName(colOptionA+i+1, row)
		if err != nil {
			continue
		}
		colors[i] = cellFill(f, sheet, cell)
	}
	return colors
}

// cellFill returns the fill colour of a cell's style, preferring the pattern
// foreground over the background. Explicit RGB values are read from the raw
// fill; theme and indexed colours go through GetStyle, which needs the
// workbook theme to resolve them.
func cellFill(f *excelize.File, sheet, cell string) string {
	styleID, err := f.GetCellStyle(sheet, cell)
	if err != nil {
		return ""
	}
	if c := rawFill(f, styleID); c != "" {
		return c
	}
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil {
		return ""
	}
	for _, c := range style.Fill.Color {
		if n := NormalizeColor(c); n != "" {
			return n
		}
	}
	return ""
}

// rawFill reads the RGB colours of the pattern fill behind styleID straight
// from the style sheet.
func rawFill(f *excelize.File, styleID int) string {
	s := f.Styles
	if s == nil || s.CellXfs == nil || s.Fills == nil {
		return ""
	}
	if styleID < 0 || styleID >= len(s.CellXfs.Xf) {
		return ""
	}
	id := s.CellXfs.Xf[styleID].FillID
	if id == nil || *id < 0 || *id >= len(s.Fills.Fill) {
		return ""
	}
	fill := s.Fills.Fill[*id]
	if fill == nil || fill.PatternFill == nil || fill.PatternFill.PatternType == "none" {
		return ""
	}
	pf := fill.PatternFill
	if pf.FgColor != nil {
		if n := NormalizeColor(pf.FgColor.RGB); n != "" {
			return n
		}
	}
	if pf.BgColor != nil {
		return NormalizeColor(pf.BgColor.RGB)
	}
	return ""
}

// NormalizeColor converts RGB or ARGB hex to "#RRGGBB". The alpha byte of an
// 8-digit value is dropped. Anything else yields "".
func NormalizeColor(c string) string {
	c = strings.TrimPrefix(strings.TrimSpace(c), "#")
	if len(c) == 8 {
		c = c[2:]
	}
	if len(c) != 6 {
		return ""
	}
	if _, err := hex.DecodeString(c); err != nil {
		return ""
	}
	return "#" + strings.ToUpper(c)
}
