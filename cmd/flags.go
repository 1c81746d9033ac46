package cmd

import (
	"fmt"
	"strings"

	"github.com/example/qreview/pkg/models"
)

// parseSubjectFlag maps a --subject value to a subject; empty means all.
func parseSubjectFlag(value string) (models.Subject, error) {
	if value == "" {
		return "", nil
	}
	s := models.Subject(strings.ToLower(value))
	if !s.IsValid() {
		return "", fmt.Errorf("unknown subject %q (math, physics, chemistry, english, other)", value)
	}
	return s, nil
}

// parseTypeFlag maps a --type value to a question type; empty means both.
func parseTypeFlag(value string) (models.QuestionType, error) {
	switch strings.ToLower(value) {
	case "":
		return "", nil
	case "example", "worked_example":
		return models.TypeWorkedExample, nil
	case "missed", "missed_problem":
		return models.TypeMissedProblem, nil
	default:
		return "", fmt.Errorf("unknown question type %q (example, missed)", value)
	}
}

func parseTagsFlag(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}
