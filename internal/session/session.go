// Package session drives one bounded pass through a queue of review questions:
// present a question, reveal its answer, accept a quality rating, advance.
// The queue is fixed at session start; the session never filters, reorders or
// persists anything itself.
package session

import (
	"errors"
	"time"

	"github.com/example/qreview/internal/spaced_repetition"
	"github.com/example/qreview/pkg/models"
)

var (
	// ErrNotRevealed is returned when a rating arrives while the current
	// question's answer has not been revealed yet.
	ErrNotRevealed = errors.New("session: current question not yet revealed")
	// ErrFinished is returned when reveal or rate is called after the session
	// has reached its terminal state.
	ErrFinished = errors.New("session: already finished")
	// ErrNotFinished is returned when results are requested before the last
	// question has been rated.
	ErrNotFinished = errors.New("session: not finished")
)

// State is the session's position in the present/reveal/rate cycle.
type State int

const (
	// StatePresenting means a question is shown, answer hidden.
	StatePresenting State = iota + 1
	// StateRevealed means the current question's answer is exposed and a
	// rating is expected.
	StateRevealed
	// StateFinished means every queued question has been rated, or the queue
	// was empty to begin with.
	StateFinished
)

// Result is the per-question outcome of a rating, consumed after completion
// to build store updates and one review log.
type Result struct {
	QuestionID     string
	Quality        spaced_repetition.QualityResponse
	IntervalDays   int
	EasinessFactor float64
	NextReviewDate time.Time
}

// Session walks a queue of questions strictly in order, one at a time.
// Ratings are final: there is no skip and no undo.
type Session struct {
	queue   []models.Question
	label   string
	index   int
	state   State
	results []Result
	sm2     *spaced_repetition.SM2
	now     func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithClock replaces the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithAlgorithm replaces the default SM-2 parameters.
func WithAlgorithm(sm2 *spaced_repetition.SM2) Option {
	return func(s *Session) { s.sm2 = sm2 }
}

// New starts a session over the given queue. The label describes the
// session's scope and ends up on the review log. An empty queue produces a
// session that is already finished; callers distinguish that terminal state
// from a completed run via Empty.
func New(queue []models.Question, label string, opts ...Option) *Session {
	s := &Session{
		queue:   queue,
		label:   label,
		state:   StatePresenting,
		results: make([]Result, 0, len(queue)),
		sm2:     spaced_repetition.NewSM2(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if len(queue) == 0 {
		s.state = StateFinished
	}
	return s
}

// State returns the current machine state.
func (s *Session) State() State { return s.state }

// Finished reports whether the session reached its terminal state.
func (s *Session) Finished() bool { return s.state == StateFinished }

// Empty reports whether the session started with zero questions, the
// "all done" variant of the terminal state.
func (s *Session) Empty() bool { return len(s.queue) == 0 }

// Label returns the session's scope label.
func (s *Session) Label() string { return s.label }

// Progress returns the 1-based position of the current question and the
// queue length. After completion the position equals the length.
func (s *Session) Progress() (current, total int) {
	current = s.index + 1
	if current > len(s.queue) {
		current = len(s.queue)
	}
	return current, len(s.queue)
}

// Current returns the question being presented or revealed.
func (s *Session) Current() (*models.Question, error) {
	if s.state == StateFinished {
		return nil, ErrFinished
	}
	return &s.queue[s.index], nil
}

// Reveal exposes the current question's answer and moves to StateRevealed.
// Revealing an already revealed question is a no-op returning the same
// question.
func (s *Session) Reveal() (*models.Question, error) {
	if s.state == StateFinished {
		return nil, ErrFinished
	}
	s.state = StateRevealed
	return &s.queue[s.index], nil
}

// Rate records the quality rating for the current revealed question, computes
// its new schedule and advances. It returns done=true on the transition to
// StateFinished, otherwise the next question to present. Rating while the
// answer is hidden fails with ErrNotRevealed; an out-of-range quality fails
// with spaced_repetition.ErrInvalidQuality and leaves the session unchanged.
func (s *Session) Rate(quality spaced_repetition.QualityResponse) (done bool, next *models.Question, err error) {
	if s.state == StateFinished {
		return false, nil, ErrFinished
	}
	if s.state != StateRevealed {
		return false, nil, ErrNotRevealed
	}

	q := &s.queue[s.index]
	sched, err := s.sm2.ComputeSchedule(quality, q.CurrentIntervalDays(), q.EF(), s.now())
	if err != nil {
		return false, nil, err
	}

	s.results = append(s.results, Result{
		QuestionID:     q.ID,
		Quality:        quality,
		IntervalDays:   sched.IntervalDays,
		EasinessFactor: sched.EasinessFactor,
		NextReviewDate: sched.NextReviewDate,
	})

	if s.index == len(s.queue)-1 {
		s.state = StateFinished
		return true, nil, nil
	}
	s.index++
	s.state = StatePresenting
	return false, &s.queue[s.index], nil
}

// Results returns one result per rated question, in encounter order. Only
// available once the session is finished; an abandoned session emits nothing.
func (s *Session) Results() ([]Result, error) {
	if s.state != StateFinished {
		return nil, ErrNotFinished
	}
	return s.results, nil
}
