// Package library wires the parser, question bank, session engine, mastery
// tracker and persistence together. It owns the in-memory bank, which stays
// authoritative when a persistence write fails.
package library

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/abhisek/quizdrill/internal/bank"
	"github.com/abhisek/quizdrill/internal/ingest"
	"github.com/abhisek/quizdrill/internal/mastery"
	"github.com/abhisek/quizdrill/internal/metrics"
	"github.com/abhisek/quizdrill/internal/question"
	"github.com/abhisek/quizdrill/internal/session"
	"github.com/abhisek/quizdrill/internal/store"
)

// ErrImportInProgress is returned when an import is requested while another
// one is still being parsed.
var ErrImportInProgress = errors.New("another import is in progress")

// Options configures a Library.
type Options struct {
	Encoding    string
	GraceDelay  time.Duration
	MetricsFile string
	Metrics     *metrics.Recorder
	Log         zerolog.Logger
}

// Library is the application core shared by the CLI and the TUI.
type Library struct {
	repo      *store.Repo
	bank      *bank.Bank
	tracker   *mastery.Tracker
	engine    *session.Engine
	parser    *ingest.Parser
	metrics   *metrics.Recorder
	importSem *semaphore.Weighted

	threshold   int
	metricsFile string
	log         zerolog.Logger
}

// Open loads the persisted bank, statistics and threshold from repo. Load
// failures are logged and the library starts from empty state.
func Open(ctx context.Context, repo *store.Repo, opts Options) *Library {
	log := opts.Log.With().Str("component", "library").Logger()

	questions, err := repo.LoadBank(ctx)
	if err != nil {
		log.Error().Err(err).Msg("load question bank")
	}
	stats, err := repo.LoadStats(ctx)
	if err != nil {
		log.Error().Err(err).Msg("load statistics")
	}
	threshold, err := repo.Threshold(ctx)
	if err != nil {
		log.Error().Err(err).Msg("load threshold")
		threshold = mastery.DefaultThreshold
	}

	rec := opts.Metrics
	if rec == nil {
		rec = metrics.New()
	}

	l := &Library{
		repo:        repo,
		bank:        bank.New(questions, stats),
		parser:      ingest.NewParser(opts.Encoding, opts.Log),
		metrics:     rec,
		importSem:   semaphore.NewWeighted(1),
		threshold:   threshold,
		metricsFile: opts.MetricsFile,
		log:         log,
	}
	l.tracker = mastery.NewTracker(l.bank, threshold, opts.Log)
	l.engine = session.NewEngine(l.bank, statsSink{l}, historySink{l}, opts.Log)
	if opts.GraceDelay > 0 {
		l.engine.GraceDelay = opts.GraceDelay
	}

	log.Debug().
		Int("questions", l.bank.Len()).
		Int("threshold", threshold).
		Msg("library opened")
	return l
}

// ImportResult describes a successful import.
type ImportResult struct {
	Source   question.Source
	Count    int
	Eligible int
}

// Import parses data and replaces the bank. Parse failures leave the bank
// untouched. Only one import runs at a time; a concurrent call fails with
// ErrImportInProgress instead of waiting.
func (l *Library) Import(ctx context.Context, name string, data []byte) (ImportResult, error) {
	if !l.importSem.TryAcquire(1) {
		return ImportResult{}, ErrImportInProgress
	}
	defer l.importSem.Release(1)

	qs, source, err := l.parser.ParseFile(name, data)
	l.metrics.Import(string(source), err)
	defer l.flushMetrics()
	if err != nil {
		l.log.Warn().Err(err).Str("file", name).Msg("import failed")
		return ImportResult{}, fmt.Errorf("import %s: %w", filepath.Base(name), err)
	}

	l.bank.ReplaceAll(qs)
	l.persistBank(ctx)

	res := ImportResult{
		Source:   source,
		Count:    len(qs),
		Eligible: l.bank.EligibleCount(l.threshold),
	}
	l.log.Info().
		Str("file", name).
		Str("source", string(source)).
		Int("questions", res.Count).
		Int("eligible", res.Eligible).
		Msg("question bank imported")
	return res, nil
}

// ImportFile reads path and imports it.
func (l *Library) ImportFile(ctx context.Context, path string) (ImportResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportResult{}, &ingest.Error{Kind: ingest.KindRead, Err: err}
	}
	return l.Import(ctx, path, data)
}

// Bank returns the in-memory question bank.
func (l *Library) Bank() *bank.Bank {
	return l.bank
}

// Engine returns the session engine.
func (l *Library) Engine() *session.Engine {
	return l.engine
}

// Threshold returns the consecutive-correct threshold.
func (l *Library) Threshold() int {
	return l.threshold
}

// SetThreshold changes and persists the threshold.
func (l *Library) SetThreshold(ctx context.Context, n int) error {
	if n < 1 {
		return fmt.Errorf("threshold must be at least 1, got %d", n)
	}
	l.threshold = n
	l.tracker.SetThreshold(n)
	if err := l.repo.SetThreshold(ctx, n); err != nil {
		l.log.Error().Err(err).Msg("persist threshold")
	}
	return nil
}

// EligibleCount returns how many questions a new session would include.
func (l *Library) EligibleCount() int {
	return l.bank.EligibleCount(l.threshold)
}

// ColoredReview returns the colour-annotated spreadsheet questions.
func (l *Library) ColoredReview() []*question.Question {
	return l.bank.ColoredReview()
}

// Summary aggregates mastery over the bank at the current threshold.
func (l *Library) Summary() mastery.Summary {
	return mastery.Summarize(l.bank.All(), l.threshold)
}

// Start begins a session at the current threshold.
func (l *Library) Start(st *session.State) error {
	return l.engine.Start(st, l.threshold)
}

// Finalize finishes the session in st and records metrics.
func (l *Library) Finalize(st *session.State, confirm session.Confirmer) (*session.HistoryEntry, error) {
	entry, err := l.engine.Finalize(st, confirm)
	if err != nil {
		return nil, err
	}
	l.metrics.SessionFinalized(entry.Score.Correct, entry.Score.Incorrect)
	l.flushMetrics()
	return entry, nil
}

// ScheduleFinalize runs Finalize after res.Delay and reports the outcome to
// done. The caller must not touch st until done has been called. It returns
// nil when res does not ask for a finalize.
func (l *Library) ScheduleFinalize(st *session.State, res session.AdvanceResult, confirm session.Confirmer, done func(*session.HistoryEntry, error)) *time.Timer {
	var delay time.Duration
	switch res.Kind {
	case session.AdvanceFinalizeNow:
	case session.AdvanceFinalizeAfter:
		delay = res.Delay
	default:
		return nil
	}
	return time.AfterFunc(delay, func() {
		done(l.Finalize(st, confirm))
	})
}

// History returns up to limit history entries, newest first. limit <= 0
// returns all.
func (l *Library) History(ctx context.Context, limit int) ([]session.HistoryEntry, error) {
	entries, err := l.repo.LoadHistory(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// Reset zeroes all statistics and clears the history log. The questions
// stay in the bank.
func (l *Library) Reset(ctx context.Context) {
	l.bank.ResetStats()
	l.persistBank(ctx)
	if err := l.repo.ClearHistory(ctx); err != nil {
		l.log.Error().Err(err).Msg("clear history")
	}
	l.log.Info().Msg("statistics and history reset")
}

// persistBank writes the bank and the stats map. Failures are logged and
// not retried.
func (l *Library) persistBank(ctx context.Context) {
	if err := l.repo.SaveBank(ctx, l.bank.All()); err != nil {
		l.log.Error().Err(err).Msg("persist question bank")
	}
	l.persistStats(ctx)
}

// persistStats writes only the stats map, so a finished session never
// rewrites a question set imported by another process meanwhile. Two
// processes finishing sessions still race on the map; the last write wins.
func (l *Library) persistStats(ctx context.Context) {
	if err := l.repo.SaveStats(ctx, l.bank.StatsMap()); err != nil {
		l.log.Error().Err(err).Msg("persist statistics")
	}
}

func (l *Library) flushMetrics() {
	if err := l.metrics.WriteTextfile(l.metricsFile); err != nil {
		l.log.Warn().Err(err).Msg("write metrics")
	}
}

// statsSink applies finished sessions through the tracker and persists the
// updated statistics.
type statsSink struct{ l *Library }

func (s statsSink) ApplySession(answers []session.AnswerRecord) {
	s.l.tracker.ApplySession(answers)
	s.l.persistStats(context.Background())
}

// historySink prepends finished sessions to the persisted history log.
type historySink struct{ l *Library }

func (s historySink) Append(entry session.HistoryEntry) {
	if err := s.l.repo.PrependHistory(context.Background(), entry); err != nil {
		s.l.log.Error().Err(err).Str("session_id", entry.SessionID).Msg("persist history entry")
	}
}
