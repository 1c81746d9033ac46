// Package review holds the policy layer between a completed session and the
// question store: applying scheduling results, mastery promotion, the worked
// example to missed problem transformation, pool selection and statistics.
package review

import (
	"time"

	"github.com/example/qreview/internal/session"
	"github.com/example/qreview/internal/spaced_repetition"
	"github.com/example/qreview/pkg/models"
)

// ApplyResult produces the updated question for one session result.
//
// A full-mastery rating marks the question mastered outright. A graded rating
// promotes to mastered only on a perfect recall after more than three prior
// reviews, and reclassifies a completely forgotten worked example as a missed
// problem, permanently flagging its provenance.
func ApplyResult(q models.Question, r session.Result, now time.Time) models.Question {
	if r.Quality == spaced_repetition.QualityFullMastery {
		q.IsMastered = true
		q.MasteryLevel = 5
	} else {
		q.IsMastered = r.Quality >= spaced_repetition.QualityPerfect && q.ReviewCount > 3
		q.MasteryLevel = int(r.Quality)
		if q.Type == models.TypeWorkedExample && r.Quality == spaced_repetition.QualityForgot {
			q.Type = models.TypeMissedProblem
			q.IsFromExample = true
		}
	}

	q.ReviewCount++
	q.LastReviewDate = now
	q.NextReviewDate = r.NextReviewDate
	q.EasinessFactor = r.EasinessFactor
	return q
}

// ApplyResults maps a session's results onto the questions they rated and
// returns only the updated questions, ready for a batch store write.
func ApplyResults(questions []models.Question, results []session.Result, now time.Time) []models.Question {
	byID := make(map[string]session.Result, len(results))
	for _, r := range results {
		byID[r.QuestionID] = r
	}

	updated := make([]models.Question, 0, len(results))
	for _, q := range questions {
		if r, ok := byID[q.ID]; ok {
			updated = append(updated, ApplyResult(q, r, now))
		}
	}
	return updated
}

// MarkMastered applies the explicit manual mastery override: the question is
// excluded from due pools immediately, bypassing the scheduler. Scheduling
// state is otherwise untouched.
func MarkMastered(q models.Question) models.Question {
	q.IsMastered = true
	q.MasteryLevel = 5
	return q
}

// NewLog builds the single review log a completed session leaves behind.
func NewLog(id, label string, count int, now time.Time) models.ReviewLog {
	return models.ReviewLog{
		ID:        id,
		Timestamp: now,
		Count:     count,
		Subject:   label,
	}
}
