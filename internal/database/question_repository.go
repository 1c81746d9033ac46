package database

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/qreview/pkg/models"
)

// QuestionRepository handles database operations for questions
type QuestionRepository struct{}

// NewQuestionRepository creates a new repository instance
func NewQuestionRepository() *QuestionRepository {
	return &QuestionRepository{}
}

// questionRow mirrors the questions table; tags are stored as a JSON array.
type questionRow struct {
	ID             string    `db:"id"`
	Content        string    `db:"content"`
	Answer         string    `db:"answer"`
	Analysis       string    `db:"analysis"`
	Type           string    `db:"type"`
	Subject        string    `db:"subject"`
	Source         string    `db:"source"`
	Tags           string    `db:"tags"`
	CreatedAt      time.Time `db:"created_at"`
	ReviewCount    int       `db:"review_count"`
	LastReviewDate time.Time `db:"last_review_date"`
	NextReviewDate time.Time `db:"next_review_date"`
	MasteryLevel   int       `db:"mastery_level"`
	EasinessFactor float64   `db:"easiness_factor"`
	IsMastered     bool      `db:"is_mastered"`
	IsFromExample  bool      `db:"is_from_example"`
}

func questionToRow(q *models.Question) (*questionRow, error) {
	tags := q.Tags
	if tags == nil {
		tags = []string{}
	}
	encoded, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tags: %v", err)
	}
	return &questionRow{
		ID:             q.ID,
		Content:        q.Content,
		Answer:         q.Answer,
		Analysis:       q.Analysis,
		Type:           string(q.Type),
		Subject:        string(q.Subject),
		Source:         q.Source,
		Tags:           string(encoded),
		CreatedAt:      q.CreatedAt,
		ReviewCount:    q.ReviewCount,
		LastReviewDate: q.LastReviewDate,
		NextReviewDate: q.NextReviewDate,
		MasteryLevel:   q.MasteryLevel,
		EasinessFactor: q.EasinessFactor,
		IsMastered:     q.IsMastered,
		IsFromExample:  q.IsFromExample,
	}, nil
}

func rowToQuestion(row *questionRow) (models.Question, error) {
	var tags []string
	if row.Tags != "" {
		if err := json.Unmarshal([]byte(row.Tags), &tags); err != nil {
			return models.Question{}, fmt.Errorf("failed to decode tags for question %s: %v", row.ID, err)
		}
	}
	return models.Question{
		ID:             row.ID,
		Content:        row.Content,
		Answer:         row.Answer,
		Analysis:       row.Analysis,
		Type:           models.QuestionType(row.Type),
		Subject:        models.Subject(row.Subject),
		Source:         row.Source,
		Tags:           tags,
		CreatedAt:      row.CreatedAt,
		ReviewCount:    row.ReviewCount,
		LastReviewDate: row.LastReviewDate,
		NextReviewDate: row.NextReviewDate,
		MasteryLevel:   row.MasteryLevel,
		EasinessFactor: row.EasinessFactor,
		IsMastered:     row.IsMastered,
		IsFromExample:  row.IsFromExample,
	}, nil
}

// GetAll returns every question, newest first
func (r *QuestionRepository) GetAll() ([]models.Question, error) {
	var rows []questionRow
	err := DB.Select(&rows, "SELECT * FROM questions ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to get questions: %v", err)
	}

	questions := make([]models.Question, 0, len(rows))
	for i := range rows {
		q, err := rowToQuestion(&rows[i])
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// GetByID returns a single question
func (r *QuestionRepository) GetByID(id string) (*models.Question, error) {
	var row questionRow
	err := DB.Get(&row, "SELECT * FROM questions WHERE id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get question %s: %v", id, err)
	}
	q, err := rowToQuestion(&row)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

const questionInsert = `
	INSERT INTO questions (
		id, content, answer, analysis, type, subject, source, tags,
		created_at, review_count, last_review_date, next_review_date,
		mastery_level, easiness_factor, is_mastered, is_from_example
	) VALUES (
		:id, :content, :answer, :analysis, :type, :subject, :source, :tags,
		:created_at, :review_count, :last_review_date, :next_review_date,
		:mastery_level, :easiness_factor, :is_mastered, :is_from_example
	)
`

const questionUpdate = `
	UPDATE questions SET
		content = :content,
		answer = :answer,
		analysis = :analysis,
		type = :type,
		subject = :subject,
		source = :source,
		tags = :tags,
		review_count = :review_count,
		last_review_date = :last_review_date,
		next_review_date = :next_review_date,
		mastery_level = :mastery_level,
		easiness_factor = :easiness_factor,
		is_mastered = :is_mastered,
		is_from_example = :is_from_example
	WHERE id = :id
`

// Create inserts a new question
func (r *QuestionRepository) Create(q *models.Question) error {
	row, err := questionToRow(q)
	if err != nil {
		return err
	}
	if _, err := DB.NamedExec(questionInsert, row); err != nil {
		return fmt.Errorf("failed to create question: %v", err)
	}
	return nil
}

// Update modifies an existing question
func (r *QuestionRepository) Update(q *models.Question) error {
	row, err := questionToRow(q)
	if err != nil {
		return err
	}
	res, err := DB.NamedExec(questionUpdate, row)
	if err != nil {
		return fmt.Errorf("failed to update question %s: %v", q.ID, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("question %s not found", q.ID)
	}
	return nil
}

// UpdateBatch persists a batch of updated questions in one transaction, the
// all-or-nothing write a completed review session ends with.
func (r *QuestionRepository) UpdateBatch(questions []models.Question) error {
	if len(questions) == 0 {
		return nil
	}

	tx, err := DB.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}

	for i := range questions {
		row, err := questionToRow(&questions[i])
		if err != nil {
			tx.Rollback()
			return err
		}
		if _, err := tx.NamedExec(questionUpdate, row); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to update question %s: %v", questions[i].ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch update: %v", err)
	}
	return nil
}

// Delete removes a question
func (r *QuestionRepository) Delete(id string) error {
	res, err := DB.Exec("DELETE FROM questions WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete question %s: %v", id, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("question %s not found", id)
	}
	return nil
}
