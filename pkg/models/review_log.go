package models

import "time"

// MaxReviewLogs is how many review logs are retained; older records are
// evicted once the cap is exceeded.
const MaxReviewLogs = 100

// ReviewLog is an immutable record of one completed review session.
type ReviewLog struct {
	ID        string    `json:"id" db:"id"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
	Count     int       `json:"count" db:"count"`     // questions rated in the session
	Subject   string    `json:"subject" db:"subject"` // session label, e.g. "Math - Worked Example Drill"
}
