package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/encoding/htmlindex"

	"github.com/abhisek/quizdrill/internal/question"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// ParseDelimited parses comma-delimited text. Quoted fields may contain
// commas, doubled quotes and newlines. The first record is a header.
func (p *Parser) ParseDelimited(data []byte) ([]question.Question, error) {
	text, err := decode(data, p.encoding)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(bytes.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	b := newRowBuilder(question.SourceDelimited, p.log)
	header := true
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, &Error{Kind: KindRead, Row: pe.StartLine, Err: pe.Err}
			}
			return nil, &Error{Kind: KindRead, Err: err}
		}
		if header {
			header = false
			continue
		}

		line, _ := r.FieldPos(0)
		if err := b.add(line, record, nil); err != nil {
			return nil, err
		}
	}

	records, err := b.result()
	if err != nil {
		return nil, err
	}
	p.log.Debug().Int("questions", len(records)).Str("encoding", p.encoding).Msg("parsed delimited bank")
	return records, nil
}

// decode converts data from the named encoding to UTF-8.
func decode(data []byte, name string) ([]byte, error) {
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, &Error{Kind: KindDecode, Err: fmt.Errorf("unsupported encoding %q: %w", name, err)}
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, &Error{Kind: KindDecode, Err: fmt.Errorf("decode %s: %w", name, err)}
	}
	return bytes.TrimPrefix(out, utf8BOM), nil
}
