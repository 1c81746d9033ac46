package cmd

import (
	"fmt"
	"strings"

	"github.com/example/qreview/internal/database"
	"github.com/example/qreview/pkg/models"
)

// findQuestion resolves a full ID or unique ID prefix to a question.
func findQuestion(repo *database.QuestionRepository, idOrPrefix string) (*models.Question, error) {
	questions, err := repo.GetAll()
	if err != nil {
		return nil, err
	}

	var match *models.Question
	for i := range questions {
		if questions[i].ID == idOrPrefix {
			return &questions[i], nil
		}
		if strings.HasPrefix(questions[i].ID, idOrPrefix) {
			if match != nil {
				return nil, fmt.Errorf("ambiguous ID prefix %q", idOrPrefix)
			}
			match = &questions[i]
		}
	}
	if match == nil {
		return nil, fmt.Errorf("no question matching %q", idOrPrefix)
	}
	return match, nil
}
