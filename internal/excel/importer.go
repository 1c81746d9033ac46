package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/example/qreview/internal/database"
	"github.com/example/qreview/pkg/models"
)

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath       string // Path to the Excel or CSV file
	ContentColumn  string // Column with the question text
	AnswerColumn   string // Column with the solution text
	AnalysisColumn string // Column with the optional analysis
	SubjectColumn  string // Column with the subject
	TypeColumn     string // Column with the question type
	SourceColumn   string // Column with the source label
	TagsColumn     string // Column with comma-separated tags
	SheetName      string // Name of the sheet to import
	StartRow       int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		ContentColumn:  "A",
		AnswerColumn:   "B",
		AnalysisColumn: "C",
		SubjectColumn:  "D",
		TypeColumn:     "E",
		SourceColumn:   "F",
		TagsColumn:     "G",
		SheetName:      "Sheet1",
		StartRow:       2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Created        int
	Skipped        int
	Errors         []string
}

// ImportQuestions imports questions from an Excel or CSV file. Imported
// questions start with fresh scheduling state: due immediately, default
// easiness factor, never reviewed.
func ImportQuestions(config ImportConfig) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		return importFromCSV(config)
	}
	return importFromExcel(config)
}

// importFromExcel imports questions from an Excel file
func importFromExcel(config ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}

	result := &ImportResult{Errors: make([]string, 0)}
	repo := database.NewQuestionRepository()

	for i, row := range rows {
		if i < config.StartRow-1 {
			continue
		}
		result.TotalProcessed++
		if err := processRow(row, config, repo, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
		}
	}
	return result, nil
}

// importFromCSV imports questions from a CSV file
func importFromCSV(config ImportConfig) (*ImportResult, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	result := &ImportResult{Errors: make([]string, 0)}
	repo := database.NewQuestionRepository()

	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %v", err)
		}
		rowNum++
		if rowNum < config.StartRow {
			continue
		}
		result.TotalProcessed++
		if err := processRow(row, config, repo, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		}
	}
	return result, nil
}

// processRow converts one spreadsheet row into a question and persists it
func processRow(row []string, config ImportConfig, repo *database.QuestionRepository, result *ImportResult) error {
	content := cell(row, config.ContentColumn)
	if content == "" {
		result.Skipped++
		return nil
	}

	subject, err := parseSubject(cell(row, config.SubjectColumn))
	if err != nil {
		result.Skipped++
		return err
	}

	q := models.NewQuestion(uuid.NewString(), parseType(cell(row, config.TypeColumn)), subject, time.Now())
	q.Content = content
	q.Answer = cell(row, config.AnswerColumn)
	q.Analysis = cell(row, config.AnalysisColumn)
	q.Source = cell(row, config.SourceColumn)
	q.Tags = parseTags(cell(row, config.TagsColumn))

	if err := repo.Create(&q); err != nil {
		result.Skipped++
		return err
	}
	result.Created++
	return nil
}

// cell returns the trimmed value at the given column letter, or "" when the
// row is too short.
func cell(row []string, column string) string {
	idx, err := excelize.ColumnNameToNumber(column)
	if err != nil || idx-1 >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx-1])
}

func parseSubject(value string) (models.Subject, error) {
	if value == "" {
		return models.SubjectOther, nil
	}
	s := models.Subject(strings.ToLower(value))
	if !s.IsValid() {
		return "", fmt.Errorf("unknown subject %q", value)
	}
	return s, nil
}

func parseType(value string) models.QuestionType {
	switch strings.ToLower(value) {
	case "worked_example", "example":
		return models.TypeWorkedExample
	default:
		return models.TypeMissedProblem
	}
}

func parseTags(value string) []string {
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
