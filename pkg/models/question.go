package models

import (
	"math"
	"time"
)

// QuestionType classifies a question by how it entered the notebook.
type QuestionType string

const (
	// TypeWorkedExample is an instructional example captured for reinforcement.
	TypeWorkedExample QuestionType = "worked_example"
	// TypeMissedProblem is a problem the learner previously got wrong.
	TypeMissedProblem QuestionType = "missed_problem"
)

// IsValid reports whether t is a known question type.
func (t QuestionType) IsValid() bool {
	return t == TypeWorkedExample || t == TypeMissedProblem
}

// Subject is the school subject a question belongs to.
type Subject string

const (
	SubjectMath      Subject = "math"
	SubjectPhysics   Subject = "physics"
	SubjectChemistry Subject = "chemistry"
	SubjectEnglish   Subject = "english"
	SubjectOther     Subject = "other"
)

// Subjects lists every valid subject, in display order.
var Subjects = []Subject{SubjectMath, SubjectPhysics, SubjectChemistry, SubjectEnglish, SubjectOther}

// IsValid reports whether s is a known subject.
func (s Subject) IsValid() bool {
	for _, v := range Subjects {
		if s == v {
			return true
		}
	}
	return false
}

// DefaultEasinessFactor is the SM-2 starting easiness factor for new questions.
const DefaultEasinessFactor = 2.5

// Question is a learnable unit tracked by the spaced-repetition scheduler.
type Question struct {
	ID       string       `json:"id"`
	Content  string       `json:"content"`
	Answer   string       `json:"answer"`
	Analysis string       `json:"analysis,omitempty"`
	Type     QuestionType `json:"type"`
	Subject  Subject      `json:"subject"`
	Source   string       `json:"source,omitempty"`
	Tags     []string     `json:"tags,omitempty"`

	CreatedAt time.Time `json:"created_at"`

	// Spaced-repetition scheduling state.
	ReviewCount    int       `json:"review_count"`
	LastReviewDate time.Time `json:"last_review_date"` // zero if never reviewed
	NextReviewDate time.Time `json:"next_review_date"`
	MasteryLevel   int       `json:"mastery_level"` // 0-5, last rating outcome
	EasinessFactor float64   `json:"easiness_factor"`
	IsMastered     bool      `json:"is_mastered"`

	// IsFromExample records that this question was once a worked example the
	// learner completely forgot. Never reset once set.
	IsFromExample bool `json:"is_from_example"`
}

// NewQuestion creates a question with fresh scheduling state, due immediately.
func NewQuestion(id string, qType QuestionType, subject Subject, now time.Time) Question {
	return Question{
		ID:             id,
		Type:           qType,
		Subject:        subject,
		CreatedAt:      now,
		NextReviewDate: now,
		EasinessFactor: DefaultEasinessFactor,
	}
}

// IsDue reports whether the question should appear in the normal review pool:
// not mastered and next review date has passed.
func (q *Question) IsDue(now time.Time) bool {
	return !q.IsMastered && !q.NextReviewDate.After(now)
}

// CurrentIntervalDays returns the scheduled gap between the last and next
// review, rounded to whole days. Zero for questions never reviewed.
func (q *Question) CurrentIntervalDays() int {
	if q.ReviewCount == 0 {
		return 0
	}
	return int(math.Round(q.NextReviewDate.Sub(q.LastReviewDate).Hours() / 24))
}

// EF returns the stored easiness factor, falling back to the default for
// questions persisted before the factor existed.
func (q *Question) EF() float64 {
	if q.EasinessFactor == 0 {
		return DefaultEasinessFactor
	}
	return q.EasinessFactor
}
