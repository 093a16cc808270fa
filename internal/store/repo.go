package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/quizdrill/internal/mastery"
	"github.com/abhisek/quizdrill/internal/question"
	"github.com/abhisek/quizdrill/internal/session"
)

// CorruptError reports a persisted value that could not be decoded.
type CorruptError struct {
	Key string
	Err error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("corrupt value for %s: %v", e.Key, e.Err)
}

func (e *CorruptError) Unwrap() error {
	return e.Err
}

// Repo reads and writes the persisted entries as JSON over a KV. There is
// no cross-key transaction.
type Repo struct {
	kv KV
}

// NewRepo creates a repo over kv.
func NewRepo(kv KV) *Repo {
	return &Repo{kv: kv}
}

// LoadBank returns the persisted question bank, or nil when none is stored.
func (r *Repo) LoadBank(ctx context.Context) ([]question.Question, error) {
	raw, err := r.get(ctx, KeyQuestionBank)
	if raw == nil || err != nil {
		return nil, err
	}
	if err := validateBank(raw); err != nil {
		return nil, &CorruptError{Key: KeyQuestionBank, Err: err}
	}

	var qs []question.Question
	if err := json.Unmarshal(raw, &qs); err != nil {
		return nil, &CorruptError{Key: KeyQuestionBank, Err: err}
	}
	return qs, nil
}

// SaveBank replaces the persisted question bank.
func (r *Repo) SaveBank(ctx context.Context, qs []question.Question) error {
	if qs == nil {
		qs = []question.Question{}
	}
	return r.put(ctx, KeyQuestionBank, qs)
}

// LoadStats returns the per-question statistics map.
func (r *Repo) LoadStats(ctx context.Context) (map[string]question.Stats, error) {
	stats := make(map[string]question.Stats)
	if err := r.load(ctx, KeyStats, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// SaveStats replaces the per-question statistics map.
func (r *Repo) SaveStats(ctx context.Context, stats map[string]question.Stats) error {
	return r.put(ctx, KeyStats, stats)
}

// LoadHistory returns the history log, newest first.
func (r *Repo) LoadHistory(ctx context.Context) ([]session.HistoryEntry, error) {
	var entries []session.HistoryEntry
	if err := r.load(ctx, KeyHistory, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// PrependHistory adds entry to the front of the history log.
func (r *Repo) PrependHistory(ctx context.Context, entry session.HistoryEntry) error {
	entries, err := r.LoadHistory(ctx)
	if err != nil {
		return err
	}
	return r.SaveHistory(ctx, append([]session.HistoryEntry{entry}, entries...))
}

// SaveHistory replaces the history log.
func (r *Repo) SaveHistory(ctx context.Context, entries []session.HistoryEntry) error {
	if entries == nil {
		entries = []session.HistoryEntry{}
	}
	return r.put(ctx, KeyHistory, entries)
}

// Threshold returns the consecutive-correct threshold, defaulting to
// mastery.DefaultThreshold when unset.
func (r *Repo) Threshold(ctx context.Context) (int, error) {
	raw, err := r.get(ctx, KeyThreshold)
	if err != nil {
		return 0, err
	}
	if raw == nil {
		return mastery.DefaultThreshold, nil
	}

	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, &CorruptError{Key: KeyThreshold, Err: err}
	}
	if n < 1 {
		return 0, &CorruptError{Key: KeyThreshold, Err: fmt.Errorf("threshold %d below 1", n)}
	}
	return n, nil
}

// SetThreshold stores the consecutive-correct threshold. n must be at
// least 1.
func (r *Repo) SetThreshold(ctx context.Context, n int) error {
	if n < 1 {
		return fmt.Errorf("threshold must be at least 1, got %d", n)
	}
	return r.put(ctx, KeyThreshold, n)
}

// ClearHistory deletes the history log.
func (r *Repo) ClearHistory(ctx context.Context) error {
	return r.kv.Delete(ctx, KeyHistory)
}

func (r *Repo) get(ctx context.Context, key string) ([]byte, error) {
	raw, err := r.kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (r *Repo) load(ctx context.Context, key string, v any) error {
	raw, err := r.get(ctx, key)
	if raw == nil || err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &CorruptError{Key: key, Err: err}
	}
	return nil
}

func (r *Repo) put(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return r.kv.Set(ctx, key, raw)
}
