package question

import "strings"

// Type identifies how a question is answered.
type Type string

const (
	TypeSingle  Type = "single"
	TypeMulti   Type = "multi"
	TypeBoolean Type = "boolean"
)

// Source records which parser produced a question.
type Source string

const (
	SourceDelimited   Source = "delimited"
	SourceSpreadsheet Source = "spreadsheet"
)

// Labels lists option labels in column order.
var Labels = []string{"A", "B", "C", "D", "E"}

// Fixed option texts for boolean questions.
const (
	TrueText  = "正确"
	FalseText = "错误"
)

// Option is a single labelled answer option.
type Option struct {
	Label string `json:"label" validate:"required,oneof=A B C D E"`
	Text  string `json:"text"`

	// Color is the cell fill colour (#RRGGBB) of spreadsheet-sourced options.
	// Presentation metadata only.
	Color string `json:"color,omitempty"`
}

// Stats holds the mastery statistics of a question.
type Stats struct {
	ConsecutiveCorrect int `json:"consecutiveCorrect" validate:"gte=0"`
	TotalAttempts      int `json:"totalAttempts" validate:"gte=0"`
	CorrectAttempts    int `json:"correctAttempts" validate:"gte=0,ltefield=TotalAttempts"`
}

// Question is one record of the question bank.
type Question struct {
	ID     string `json:"id" validate:"required"`
	Type   Type   `json:"type" validate:"required,oneof=single multi boolean"`
	Prompt string `json:"prompt"`

	// Options are ordered by label. Empty source cells are omitted.
	Options []Option `json:"options" validate:"required,min=1,max=5,dive"`

	// Answer is a single label for single/boolean questions and the sorted
	// label set (e.g. "AC") for multi-choice questions.
	Answer string `json:"answer" validate:"required"`

	Source Source `json:"source,omitempty"`
	Stats  Stats  `json:"stats"`
}

// Option returns the option with the given label.
func (q *Question) Option(label string) (Option, bool) {
	for _, o := range q.Options {
		if o.Label == label {
			return o, true
		}
	}
	return Option{}, false
}

// HasColors reports whether any option carries a fill colour.
func (q *Question) HasColors() bool {
	for _, o := range q.Options {
		if o.Color != "" {
			return true
		}
	}
	return false
}

// AnswerLabels splits the canonical answer into its labels.
func (q *Question) AnswerLabels() []string {
	return splitLabels(q.Answer)
}

// EmptySelection returns the empty pending input for the question type.
func (q *Question) EmptySelection() []string {
	if q.Type == TypeMulti {
		return []string{}
	}
	return nil
}

func splitLabels(s string) []string {
	s = strings.TrimSpace(s)
	labels := make([]string, 0, len(s))
	for _, r := range s {
		labels = append(labels, string(r))
	}
	return labels
}
