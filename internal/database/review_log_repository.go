package database

import (
	"fmt"

	"github.com/example/qreview/pkg/models"
)

// ReviewLogRepository handles database operations for review logs
type ReviewLogRepository struct{}

// NewReviewLogRepository creates a new repository instance
func NewReviewLogRepository() *ReviewLogRepository {
	return &ReviewLogRepository{}
}

// GetRecent returns the most recent review logs, newest first. A limit of 0
// falls back to the retention cap.
func (r *ReviewLogRepository) GetRecent(limit int) ([]models.ReviewLog, error) {
	if limit <= 0 || limit > models.MaxReviewLogs {
		limit = models.MaxReviewLogs
	}
	var logs []models.ReviewLog
	err := DB.Select(&logs, `
		SELECT id, timestamp, count, subject FROM review_logs
		ORDER BY timestamp DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get review logs: %v", err)
	}
	return logs, nil
}

// Create appends a review log and evicts everything beyond the newest
// MaxReviewLogs records.
func (r *ReviewLogRepository) Create(log *models.ReviewLog) error {
	_, err := DB.Exec(`
		INSERT INTO review_logs (id, timestamp, count, subject)
		VALUES ($1, $2, $3, $4)
	`, log.ID, log.Timestamp, log.Count, log.Subject)
	if err != nil {
		return fmt.Errorf("failed to create review log: %v", err)
	}

	_, err = DB.Exec(`
		DELETE FROM review_logs WHERE id NOT IN (
			SELECT id FROM review_logs ORDER BY timestamp DESC LIMIT $1
		)
	`, models.MaxReviewLogs)
	if err != nil {
		return fmt.Errorf("failed to prune review logs: %v", err)
	}
	return nil
}
