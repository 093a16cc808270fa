package session

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/abhisek/quizdrill/internal/question"
)

// DefaultGraceDelay is how long feedback for the last question stays
// visible before the session is finalized.
const DefaultGraceDelay = 800 * time.Millisecond

// FinalizePrompt is the question put to the Confirmer before finishing.
const FinalizePrompt = "Finish this session and record the results?"

// EligibleSource lists the questions a new session may draw from.
type EligibleSource interface {
	ListEligible(threshold int) []*question.Question
}

// StatsApplier applies the answers of a finished session to the mastery
// statistics. It is called exactly once per finalized session.
type StatsApplier interface {
	ApplySession(answers []AnswerRecord)
}

// HistoryAppender prepends an entry to the history log.
type HistoryAppender interface {
	Append(entry HistoryEntry)
}

// Confirmer asks the user to confirm an action.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Confirmed is a Confirmer for callers that already asked the user.
var Confirmed Confirmer = ConfirmFunc(func(string) bool { return true })

// AdvanceKind tells the caller what Advance did.
type AdvanceKind int

const (
	AdvanceMoved         AdvanceKind = iota // Pointer moved to the next question
	AdvanceFinalizeNow                      // Last question, nothing just answered
	AdvanceFinalizeAfter                    // Last question answered; finalize after Delay
)

// AdvanceResult is returned by Advance. The caller owns the deferred timer
// for AdvanceFinalizeAfter.
type AdvanceResult struct {
	Kind  AdvanceKind
	Delay time.Duration
}

// Engine drives session transitions. It holds collaborators only; all
// session data lives in the State passed to each call. An Engine is not
// safe for concurrent use on the same State.
type Engine struct {
	Bank       EligibleSource
	Tracker    StatsApplier
	History    HistoryAppender
	GraceDelay time.Duration
	Now        func() time.Time
	NewID      func() string
	Log        zerolog.Logger
}

// NewEngine creates an engine with default timing and UUID session ids.
func NewEngine(bank EligibleSource, tracker StatsApplier, history HistoryAppender, log zerolog.Logger) *Engine {
	return &Engine{
		Bank:       bank,
		Tracker:    tracker,
		History:    history,
		GraceDelay: DefaultGraceDelay,
		Now:        time.Now,
		NewID:      uuid.NewString,
		Log:        log.With().Str("component", "session").Logger(),
	}
}

// Start begins a session over the questions whose streak is below
// threshold. Any unfinished or finished session in st is discarded.
func (e *Engine) Start(st *State, threshold int) error {
	eligible := e.Bank.ListEligible(threshold)
	if len(eligible) == 0 {
		return ErrNoEligible
	}

	if st.Phase == PhaseInProgress {
		e.Log.Debug().
			Str("session_id", st.Session.ID).
			Int("answers", len(st.Session.Answers)).
			Msg("discarding unfinished session")
	}

	questions := slices.Clone(eligible)
	*st = State{
		Phase: PhaseInProgress,
		Session: &Session{
			ID:        e.NewID(),
			StartedAt: e.Now(),
			Threshold: threshold,
			Questions: questions,
		},
		Pending: questions[0].EmptySelection(),
	}

	e.Log.Info().
		Str("session_id", st.Session.ID).
		Int("questions", len(questions)).
		Int("threshold", threshold).
		Msg("session started")
	return nil
}

// Submit records an answer for the current question and returns the
// feedback. An empty selection is a skip: nothing is recorded, any stale
// feedback is cleared, and Submit returns nil, nil.
func (e *Engine) Submit(st *State, selection []string) (*Feedback, error) {
	if st.Phase != PhaseInProgress {
		return nil, ErrNotInProgress
	}
	s := st.Session
	q := s.Questions[s.Pointer]

	submitted := question.NormalizeSelection(q.Type, selection)
	if submitted == "" {
		st.Feedback = nil
		return nil, nil
	}

	correct := question.CheckAnswer(q, submitted)
	s.Answers = append(s.Answers, AnswerRecord{
		QuestionID: q.ID,
		Submitted:  submitted,
		Correct:    q.Answer,
		IsCorrect:  correct,
		AnsweredAt: e.Now(),
	})
	if correct {
		s.Correct++
	} else {
		s.Incorrect++
	}

	st.Feedback = &Feedback{
		Position:   s.Pointer + 1,
		QuestionID: q.ID,
		Submitted:  submitted,
		Correct:    q.Answer,
		IsCorrect:  correct,
	}
	return st.Feedback, nil
}

// SubmitPending submits the pending selection.
func (e *Engine) SubmitPending(st *State) (*Feedback, error) {
	return e.Submit(st, st.Pending)
}

// Advance moves to the next question. On the last question it reports
// whether the session should be finalized immediately or after the grace
// delay (when an answer was just recorded and its feedback is showing).
func (e *Engine) Advance(st *State) (AdvanceResult, error) {
	if st.Phase != PhaseInProgress {
		return AdvanceResult{}, ErrNotInProgress
	}
	s := st.Session

	if s.Pointer < len(s.Questions)-1 {
		s.Pointer++
		st.Pending = s.Questions[s.Pointer].EmptySelection()
		st.Feedback = nil
		return AdvanceResult{Kind: AdvanceMoved}, nil
	}

	if st.Feedback != nil {
		return AdvanceResult{Kind: AdvanceFinalizeAfter, Delay: e.GraceDelay}, nil
	}
	return AdvanceResult{Kind: AdvanceFinalizeNow}, nil
}

// Previous moves back one question. Feedback for earlier answers is not
// restored.
func (e *Engine) Previous(st *State) error {
	if st.Phase != PhaseInProgress {
		return ErrNotInProgress
	}
	if st.Session.Pointer == 0 {
		return ErrAtFirst
	}
	e.moveTo(st, st.Session.Pointer-1)
	return nil
}

// Jump moves directly to the question at index.
func (e *Engine) Jump(st *State, index int) error {
	if st.Phase != PhaseInProgress {
		return ErrNotInProgress
	}
	if index < 0 || index >= len(st.Session.Questions) {
		return ErrIndexOutOfRange
	}
	e.moveTo(st, index)
	return nil
}

func (e *Engine) moveTo(st *State, index int) {
	st.Session.Pointer = index
	st.Pending = st.Session.Questions[index].EmptySelection()
	st.Feedback = nil
}

// Finalize closes the session after the confirmer agrees. It applies the
// answers to the mastery statistics once, prepends a history entry and
// moves st to PhaseFinished. A nil confirmer declines.
func (e *Engine) Finalize(st *State, confirm Confirmer) (*HistoryEntry, error) {
	if st.Phase != PhaseInProgress {
		return nil, ErrNotInProgress
	}
	s := st.Session
	if len(s.Answers) == 0 {
		return nil, ErrNoAnswers
	}
	if confirm == nil || !confirm.Confirm(FinalizePrompt) {
		return nil, ErrNotConfirmed
	}

	s.EndedAt = e.Now()
	report := BuildReport(s)
	answers := slices.Clone(s.Answers)

	e.Tracker.ApplySession(answers)

	entry := HistoryEntry{
		SessionID: s.ID,
		StartedAt: s.StartedAt,
		EndedAt:   s.EndedAt,
		Answers:   answers,
		Score:     report.Score,
	}
	e.History.Append(entry)

	st.Phase = PhaseFinished
	st.Report = &report
	st.Entry = &entry
	st.Pending = nil

	e.Log.Info().
		Str("session_id", s.ID).
		Int("total", report.Score.Total).
		Int("correct", report.Score.Correct).
		Str("accuracy", report.Score.Accuracy).
		Msg("session finalized")
	return &entry, nil
}

// Abandon discards the session without touching statistics or history.
func (e *Engine) Abandon(st *State) error {
	if st.Phase == PhaseIdle {
		return ErrNoSession
	}
	if st.Phase == PhaseInProgress {
		e.Log.Info().Str("session_id", st.Session.ID).Msg("session abandoned")
	}
	*st = State{Phase: PhaseIdle}
	return nil
}
