package ingest

import "fmt"

// Kind classifies an ingestion failure.
type Kind string

const (
	KindRead   Kind = "read"   // container could not be opened or read
	KindDecode Kind = "decode" // bytes could not be decoded as text
	KindRow    Kind = "row"    // a data row breaks the record rules
	KindEmpty  Kind = "empty"  // no usable rows
)

// Error is returned for any input that cannot be imported. An import that
// fails with an Error must not be applied to the question bank.
type Error struct {
	Kind Kind
	Row  int // 1-based source row, 0 when not row-specific
	Err  error
}

func (e *Error) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("import failed (%s, row %d): %v", e.Kind, e.Row, e.Err)
	}
	return fmt.Sprintf("import failed (%s): %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
