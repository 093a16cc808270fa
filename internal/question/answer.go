package question

import (
	"fmt"
	"slices"
	"strings"
)

var typeAliases = map[string]Type{
	"single":    TypeSingle,
	"单选":        TypeSingle,
	"单选题":       TypeSingle,
	"radio":     TypeSingle,
	"multi":     TypeMulti,
	"multiple":  TypeMulti,
	"多选":        TypeMulti,
	"多选题":       TypeMulti,
	"checkbox":  TypeMulti,
	"boolean":   TypeBoolean,
	"判断":        TypeBoolean,
	"判断题":       TypeBoolean,
	"truefalse": TypeBoolean,
	"tf":        TypeBoolean,
}

var booleanAliases = map[string]string{
	"正确": "A", "对": "A", "√": "A", "T": "A", "TRUE": "A", "Y": "A",
	"错误": "B", "错": "B", "×": "B", "F": "B", "FALSE": "B", "N": "B",
}

var answerSeparators = strings.NewReplacer(",", "", "，", "", "、", "", " ", "", ";", "", "；", "", "/", "")

// ParseType resolves a type cell to a Type. Matching is case-insensitive.
func ParseType(s string) (Type, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if t, ok := typeAliases[key]; ok {
		return t, nil
	}
	return "", fmt.Errorf("unknown question type %q", s)
}

// NormalizeAnswer converts a raw correct-answer cell to the canonical answer
// string for the question type.
//
// Normalization rules:
// - Whitespace and list separators are removed
// - Labels are upper-cased
// - Multi-choice labels are de-duplicated and sorted ("c, a" becomes "AC")
// - Boolean answers also accept 正确/对/T/TRUE and 错误/错/F/FALSE
func NormalizeAnswer(t Type, raw string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if t == TypeBoolean {
		if label, ok := booleanAliases[s]; ok {
			return label, nil
		}
	}
	s = answerSeparators.Replace(s)
	if s == "" {
		return "", fmt.Errorf("empty answer")
	}

	labels := splitLabels(s)
	for _, l := range labels {
		if !slices.Contains(Labels, l) {
			return "", fmt.Errorf("invalid answer label %q in %q", l, raw)
		}
	}

	if t == TypeMulti {
		return joinSorted(labels), nil
	}
	if len(labels) != 1 {
		return "", fmt.Errorf("%s question needs exactly one answer label, got %q", t, raw)
	}
	return labels[0], nil
}

// NormalizeSelection converts submitted labels to the canonical answer form used
// for comparison and recording. Blank labels are dropped.
func NormalizeSelection(t Type, labels []string) string {
	cleaned := make([]string, 0, len(labels))
	for _, l := range labels {
		l = strings.ToUpper(strings.TrimSpace(l))
		if l != "" {
			cleaned = append(cleaned, l)
		}
	}
	if t == TypeMulti {
		return joinSorted(cleaned)
	}
	return strings.Join(cleaned, "")
}

// CheckAnswer compares a normalized submission against the question's answer.
// Multi-choice answers are compared as sorted label sets; other types use
// trimmed string equality.
func CheckAnswer(q *Question, submitted string) bool {
	if q.Type == TypeMulti {
		return joinSorted(splitLabels(submitted)) == joinSorted(splitLabels(q.Answer))
	}
	return strings.TrimSpace(submitted) == strings.TrimSpace(q.Answer)
}

// joinSorted de-duplicates and sorts labels, then concatenates them.
func joinSorted(labels []string) string {
	sorted := slices.Clone(labels)
	slices.Sort(sorted)
	return strings.Join(slices.Compact(sorted), "")
}
