package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by KV.Get for a missing key.
var ErrNotFound = errors.New("key not found")

// KV is a synchronous key-value backend. Values are opaque bytes; Repo
// stores JSON.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Persisted keys.
const (
	KeyQuestionBank = "question_bank"
	KeyStats        = "question_stats"
	KeyHistory      = "exam_history"
	KeyThreshold    = "consecutive_threshold"
)
