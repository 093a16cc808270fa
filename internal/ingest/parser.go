package ingest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/abhisek/quizdrill/internal/question"
)

// DefaultEncoding is the byte encoding of delimited exports.
const DefaultEncoding = "gbk"

// Column positions shared by both input formats.
const (
	colID = iota
	colType
	colPrompt
	colOptionA
	colOptionB
	colOptionC
	colOptionD
	colOptionE
	colAnswer

	minColumns = 9
)

// Parser turns raw question bank files into question records.
type Parser struct {
	encoding string
	log      zerolog.Logger
}

// NewParser creates a parser decoding delimited text with the given encoding.
func NewParser(encoding string, log zerolog.Logger) *Parser {
	if encoding == "" {
		encoding = DefaultEncoding
	}
	return &Parser{
		encoding: encoding,
		log:      log.With().Str("component", "ingest").Logger(),
	}
}

// ParseDelimited parses delimited text with a throwaway parser.
func ParseDelimited(data []byte, encoding string) ([]question.Question, error) {
	return NewParser(encoding, zerolog.Nop()).ParseDelimited(data)
}

// ParseSpreadsheet parses a spreadsheet workbook with a throwaway parser.
func ParseSpreadsheet(data []byte) ([]question.Question, error) {
	return NewParser("", zerolog.Nop()).ParseSpreadsheet(data)
}

// ParseFile dispatches on the file extension: workbooks go to the
// spreadsheet parser, everything else is treated as delimited text.
func (p *Parser) ParseFile(name string, data []byte) ([]question.Question, question.Source, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm", ".xltx":
		qs, err := p.ParseSpreadsheet(data)
		return qs, question.SourceSpreadsheet, err
	default:
		qs, err := p.ParseDelimited(data)
		return qs, question.SourceDelimited, err
	}
}

// rowBuilder accumulates records and enforces id uniqueness across rows.
type rowBuilder struct {
	source  question.Source
	records []question.Question
	ids     map[string]int
	log     zerolog.Logger
}

func newRowBuilder(source question.Source, log zerolog.Logger) *rowBuilder {
	return &rowBuilder{source: source, ids: make(map[string]int), log: log}
}

// add converts one data row. Rows with fewer than minColumns cells are
// skipped; rows that fail validation abort the whole import.
func (b *rowBuilder) add(row int, cells []string, colors []string) error {
	if len(cells) < minColumns {
		b.log.Debug().Int("row", row).Int("fields", len(cells)).Msg("skipping short row")
		return nil
	}

	q, err := buildQuestion(cells, colors, b.source)
	if err != nil {
		return &Error{Kind: KindRow, Row: row, Err: err}
	}
	if prev, dup := b.ids[q.ID]; dup {
		return &Error{Kind: KindRow, Row: row, Err: fmt.Errorf("duplicate id %q (first seen on row %d)", q.ID, prev)}
	}
	b.ids[q.ID] = row
	b.records = append(b.records, q)
	return nil
}

func (b *rowBuilder) result() ([]question.Question, error) {
	if len(b.records) == 0 {
		return nil, &Error{Kind: KindEmpty, Err: fmt.Errorf("no question rows found")}
	}
	return b.records, nil
}

func buildQuestion(cells []string, colors []string, source question.Source) (question.Question, error) {
	typ, err := question.ParseType(cells[colType])
	if err != nil {
		return question.Question{}, err
	}

	q := question.Question{
		ID:     strings.TrimSpace(cells[colID]),
		Type:   typ,
		Prompt: collapseLines(cells[colPrompt]),
		Source: source,
	}

	if typ == question.TypeBoolean {
		q.Options = []question.Option{
			{Label: "A", Text: question.TrueText, Color: colorAt(colors, 0)},
			{Label: "B", Text: question.FalseText, Color: colorAt(colors, 1)},
		}
	} else {
		for i, label := range question.Labels {
			text := collapseLines(cells[colOptionA+i])
			if text == "" {
				continue
			}
			q.Options = append(q.Options, question.Option{
				Label: label,
				Text:  text,
				Color: colorAt(colors, i),
			})
		}
	}

	q.Answer, err = question.NormalizeAnswer(typ, cells[colAnswer])
	if err != nil {
		return question.Question{}, fmt.Errorf("question %q: %w", q.ID, err)
	}

	if err := question.Validate(&q); err != nil {
		return question.Question{}, err
	}
	return q, nil
}

// collapseLines trims s and joins its non-blank lines with single spaces.
func collapseLines(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	parts := lines[:0]
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			parts = append(parts, l)
		}
	}
	return strings.Join(parts, " ")
}

func colorAt(colors []string, i int) string {
	if i < len(colors) {
		return colors[i]
	}
	return ""
}
