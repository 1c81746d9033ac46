package database

import (
	"fmt"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/qreview/pkg/models"
)

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) {
	t.Helper()
	db, err := sqlx.Connect("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	DB = db
	require.NoError(t, initializeSchema())
	t.Cleanup(func() {
		DB.Close()
		DB = nil
	})
}

func sampleQuestion(id string) models.Question {
	q := models.NewQuestion(id, models.TypeMissedProblem, models.SubjectMath, testNow)
	q.Content = "Solve x^2 - 4 = 0"
	q.Answer = "x = 2 or x = -2"
	q.Analysis = "Difference of squares"
	q.Source = "2025 mock exam"
	q.Tags = []string{"algebra", "quadratic"}
	return q
}

func TestQuestionRepositoryCreateAndGet(t *testing.T) {
	setupTestDB(t)
	repo := NewQuestionRepository()

	q := sampleQuestion("q1")
	require.NoError(t, repo.Create(&q))

	got, err := repo.GetByID("q1")
	require.NoError(t, err)
	assert.Equal(t, q.Content, got.Content)
	assert.Equal(t, q.Answer, got.Answer)
	assert.Equal(t, models.TypeMissedProblem, got.Type)
	assert.Equal(t, models.SubjectMath, got.Subject)
	assert.Equal(t, []string{"algebra", "quadratic"}, got.Tags)
	assert.Equal(t, 2.5, got.EasinessFactor)
	assert.True(t, got.NextReviewDate.Equal(testNow))
	assert.False(t, got.IsMastered)
}

func TestQuestionRepositoryEmptyTags(t *testing.T) {
	setupTestDB(t)
	repo := NewQuestionRepository()

	q := sampleQuestion("q1")
	q.Tags = nil
	require.NoError(t, repo.Create(&q))

	got, err := repo.GetByID("q1")
	require.NoError(t, err)
	assert.Empty(t, got.Tags)
}

func TestQuestionRepositoryGetAllNewestFirst(t *testing.T) {
	setupTestDB(t)
	repo := NewQuestionRepository()

	older := sampleQuestion("older")
	older.CreatedAt = testNow.Add(-48 * time.Hour)
	newer := sampleQuestion("newer")
	require.NoError(t, repo.Create(&older))
	require.NoError(t, repo.Create(&newer))

	all, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "newer", all[0].ID)
	assert.Equal(t, "older", all[1].ID)
}

func TestQuestionRepositoryUpdate(t *testing.T) {
	setupTestDB(t)
	repo := NewQuestionRepository()

	q := sampleQuestion("q1")
	require.NoError(t, repo.Create(&q))

	q.ReviewCount = 1
	q.LastReviewDate = testNow
	q.NextReviewDate = testNow.Add(24 * time.Hour)
	q.EasinessFactor = 2.6
	q.MasteryLevel = 5
	q.Type = models.TypeMissedProblem
	q.IsFromExample = true
	require.NoError(t, repo.Update(&q))

	got, err := repo.GetByID("q1")
	require.NoError(t, err)
	assert.Equal(t, 1, got.ReviewCount)
	assert.True(t, got.NextReviewDate.Equal(testNow.Add(24*time.Hour)))
	assert.Equal(t, 2.6, got.EasinessFactor)
	assert.True(t, got.IsFromExample)
}

func TestQuestionRepositoryUpdateMissing(t *testing.T) {
	setupTestDB(t)
	repo := NewQuestionRepository()

	q := sampleQuestion("ghost")
	err := repo.Update(&q)
	assert.Error(t, err)
}

func TestQuestionRepositoryUpdateBatch(t *testing.T) {
	setupTestDB(t)
	repo := NewQuestionRepository()

	q1 := sampleQuestion("q1")
	q2 := sampleQuestion("q2")
	require.NoError(t, repo.Create(&q1))
	require.NoError(t, repo.Create(&q2))

	q1.ReviewCount = 1
	q2.ReviewCount = 2
	require.NoError(t, repo.UpdateBatch([]models.Question{q1, q2}))

	got1, err := repo.GetByID("q1")
	require.NoError(t, err)
	got2, err := repo.GetByID("q2")
	require.NoError(t, err)
	assert.Equal(t, 1, got1.ReviewCount)
	assert.Equal(t, 2, got2.ReviewCount)

	// Empty batch is a no-op
	require.NoError(t, repo.UpdateBatch(nil))
}

func TestQuestionRepositoryDelete(t *testing.T) {
	setupTestDB(t)
	repo := NewQuestionRepository()

	q := sampleQuestion("q1")
	require.NoError(t, repo.Create(&q))
	require.NoError(t, repo.Delete("q1"))

	all, err := repo.GetAll()
	require.NoError(t, err)
	assert.Empty(t, all)

	assert.Error(t, repo.Delete("q1"))
}

func TestReviewLogRepositoryCreateAndGetRecent(t *testing.T) {
	setupTestDB(t)
	repo := NewReviewLogRepository()

	for i := 0; i < 3; i++ {
		log := models.ReviewLog{
			ID:        fmt.Sprintf("log-%d", i),
			Timestamp: testNow.Add(time.Duration(i) * time.Hour),
			Count:     i + 1,
			Subject:   "Mixed Review",
		}
		require.NoError(t, repo.Create(&log))
	}

	logs, err := repo.GetRecent(2)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "log-2", logs[0].ID, "newest first")
	assert.Equal(t, "log-1", logs[1].ID)

	logs, err = repo.GetRecent(0)
	require.NoError(t, err)
	assert.Len(t, logs, 3, "zero limit falls back to the retention cap")
}

func TestReviewLogRepositoryPrunesToCap(t *testing.T) {
	setupTestDB(t)
	repo := NewReviewLogRepository()

	for i := 0; i < models.MaxReviewLogs+10; i++ {
		log := models.ReviewLog{
			ID:        fmt.Sprintf("log-%03d", i),
			Timestamp: testNow.Add(time.Duration(i) * time.Minute),
			Count:     1,
			Subject:   "Mixed Review",
		}
		require.NoError(t, repo.Create(&log))
	}

	logs, err := repo.GetRecent(models.MaxReviewLogs)
	require.NoError(t, err)
	require.Len(t, logs, models.MaxReviewLogs)
	assert.Equal(t, fmt.Sprintf("log-%03d", models.MaxReviewLogs+9), logs[0].ID)

	// The oldest ten were evicted
	for _, l := range logs {
		assert.GreaterOrEqual(t, l.ID, "log-010")
	}
}

func TestReflectionRepositoryUpsertAndGet(t *testing.T) {
	setupTestDB(t)
	repo := NewReflectionRepository()

	missing, err := repo.GetByDate("2025-03-10")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, repo.Upsert(&models.Reflection{Date: "2025-03-10", Content: "Confused the two formulas again."}))
	require.NoError(t, repo.Upsert(&models.Reflection{Date: "2025-03-09", Content: "Good day."}))

	got, err := repo.GetByDate("2025-03-10")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Confused the two formulas again.", got.Content)

	// Upsert replaces the same day's content
	require.NoError(t, repo.Upsert(&models.Reflection{Date: "2025-03-10", Content: "Revised."}))
	got, err = repo.GetByDate("2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, "Revised.", got.Content)

	all, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "2025-03-10", all[0].Date, "newest day first")
}
