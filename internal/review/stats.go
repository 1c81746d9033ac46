package review

import (
	"time"

	"github.com/example/qreview/pkg/models"
)

// ComputeStats summarizes the question bank and recent activity.
func ComputeStats(questions []models.Question, logs []models.ReviewLog, now time.Time) models.ReviewStats {
	stats := models.ReviewStats{TotalQuestions: len(questions)}
	for _, q := range questions {
		if q.IsMastered {
			stats.MasteredCount++
		}
		if q.IsDue(now) {
			stats.DueCount++
		}
	}
	stats.StreakDays = streakDays(logs, now)
	return stats
}

// DueBySubject counts due questions per subject.
func DueBySubject(questions []models.Question, now time.Time) map[models.Subject]int {
	counts := make(map[models.Subject]int, len(models.Subjects))
	for _, s := range models.Subjects {
		counts[s] = 0
	}
	for _, q := range questions {
		if q.IsDue(now) {
			counts[q.Subject]++
		}
	}
	return counts
}

// streakDays counts consecutive calendar days with at least one review log,
// ending today or yesterday. A day without reviews breaks the streak.
func streakDays(logs []models.ReviewLog, now time.Time) int {
	days := make(map[string]bool, len(logs))
	for _, l := range logs {
		days[l.Timestamp.Format("2006-01-02")] = true
	}

	day := now
	if !days[day.Format("2006-01-02")] {
		// Today may still be ahead; a streak can end yesterday.
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for days[day.Format("2006-01-02")] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
