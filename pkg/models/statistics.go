package models

// ReviewStats summarizes the state of the question bank for the dashboard.
type ReviewStats struct {
	TotalQuestions int `json:"total_questions"`
	MasteredCount  int `json:"mastered_count"`
	DueCount       int `json:"due_count"`
	StreakDays     int `json:"streak_days"`
}
