package question

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the record rules: required fields, a non-empty option
// set with unique labels, and an answer whose labels all exist in the options.
func Validate(q *Question) error {
	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("question %q: %w", q.ID, err)
	}

	seen := make(map[string]bool, len(q.Options))
	for _, o := range q.Options {
		if seen[o.Label] {
			return fmt.Errorf("question %q: duplicate option %s", q.ID, o.Label)
		}
		seen[o.Label] = true
	}

	for _, l := range q.AnswerLabels() {
		if !seen[l] {
			return fmt.Errorf("question %q: answer label %s has no option", q.ID, l)
		}
	}
	if q.Type != TypeMulti && len(q.AnswerLabels()) != 1 {
		return fmt.Errorf("question %q: %s answer must be a single label", q.ID, q.Type)
	}
	return nil
}
