package review

import (
	"math/rand"

	"time"

	"github.com/example/qreview/pkg/models"
)

// PoolOptions filter and bound the questions selected for a session.
type PoolOptions struct {
	// Subject restricts the pool to one subject; empty means all subjects.
	Subject models.Subject
	// Type restricts the pool to one question type; empty means both.
	Type models.QuestionType
	// Limit caps the pool size after shuffling; 0 means no cap.
	Limit int
	// Rand drives the shuffle; nil uses a time-seeded generator.
	Rand *rand.Rand
}

func (o PoolOptions) rng() *rand.Rand {
	if o.Rand != nil {
		return o.Rand
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// DuePool selects the questions due for review at now. Mastered questions are
// always excluded. In worked-example mode (Type == TypeWorkedExample) the due
// date is ignored: examples are drilled on demand, not on schedule. The result
// is shuffled and capped to Limit.
func DuePool(questions []models.Question, now time.Time, opts PoolOptions) []models.Question {
	pool := make([]models.Question, 0, len(questions))
	for _, q := range questions {
		if q.IsMastered {
			continue
		}
		if opts.Type == models.TypeWorkedExample {
			if q.Type != models.TypeWorkedExample {
				continue
			}
		} else {
			if q.NextReviewDate.After(now) {
				continue
			}
			if opts.Type != "" && q.Type != opts.Type {
				continue
			}
		}
		if opts.Subject != "" && q.Subject != opts.Subject {
			continue
		}
		pool = append(pool, q)
	}
	return shuffleLimit(pool, opts)
}

// PracticePool selects questions for explicit random practice. Unlike
// DuePool, mastered questions and not-yet-due questions are included.
func PracticePool(questions []models.Question, opts PoolOptions) []models.Question {
	pool := make([]models.Question, 0, len(questions))
	for _, q := range questions {
		if opts.Subject != "" && q.Subject != opts.Subject {
			continue
		}
		if opts.Type != "" && q.Type != opts.Type {
			continue
		}
		pool = append(pool, q)
	}
	return shuffleLimit(pool, opts)
}

func shuffleLimit(pool []models.Question, opts PoolOptions) []models.Question {
	rng := opts.rng()
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if opts.Limit > 0 && len(pool) > opts.Limit {
		pool = pool[:opts.Limit]
	}
	return pool
}

// subjectTitles for session labels.
var subjectTitles = map[models.Subject]string{
	models.SubjectMath:      "Math",
	models.SubjectPhysics:   "Physics",
	models.SubjectChemistry: "Chemistry",
	models.SubjectEnglish:   "English",
	models.SubjectOther:     "Other",
}

// SubjectTitle returns the display name of a subject, or "All Subjects" for
// the empty filter.
func SubjectTitle(s models.Subject) string {
	if t, ok := subjectTitles[s]; ok {
		return t
	}
	return "All Subjects"
}

// PoolLabel builds the session label recorded on the review log,
// e.g. "Math - Worked Example Drill".
func PoolLabel(opts PoolOptions, practice bool) string {
	var title string
	switch {
	case opts.Type == models.TypeWorkedExample:
		title = "Worked Example Drill"
	case opts.Type == models.TypeMissedProblem:
		title = "Missed Problem Drill"
	case practice:
		title = "Random Practice"
	default:
		title = "Mixed Review"
	}
	if opts.Subject == "" {
		return title
	}
	return SubjectTitle(opts.Subject) + " - " + title
}
