package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/qreview/pkg/models"
)

// ReflectionRepository handles database operations for daily reflections
type ReflectionRepository struct{}

// NewReflectionRepository creates a new repository instance
func NewReflectionRepository() *ReflectionRepository {
	return &ReflectionRepository{}
}

// GetAll returns every reflection, newest day first
func (r *ReflectionRepository) GetAll() ([]models.Reflection, error) {
	var reflections []models.Reflection
	err := DB.Select(&reflections, "SELECT date, content FROM reflections ORDER BY date DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to get reflections: %v", err)
	}
	return reflections, nil
}

// GetByDate returns the reflection for one day, or nil when none exists
func (r *ReflectionRepository) GetByDate(date string) (*models.Reflection, error) {
	var reflection models.Reflection
	err := DB.Get(&reflection, "SELECT date, content FROM reflections WHERE date = $1", date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reflection %s: %v", date, err)
	}
	return &reflection, nil
}

// Upsert creates or replaces the reflection for a day
func (r *ReflectionRepository) Upsert(reflection *models.Reflection) error {
	_, err := DB.Exec(`
		INSERT INTO reflections (date, content) VALUES ($1, $2)
		ON CONFLICT (date) DO UPDATE SET content = EXCLUDED.content
	`, reflection.Date, reflection.Content)
	if err != nil {
		return fmt.Errorf("failed to upsert reflection %s: %v", reflection.Date, err)
	}
	return nil
}
