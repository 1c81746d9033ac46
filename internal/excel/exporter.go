package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/qreview/pkg/models"
)

// ExportQuestions writes the question bank to an xlsx file, using the same
// column layout the importer reads.
func ExportQuestions(questions []models.Question, filePath string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	headers := []string{"Content", "Answer", "Analysis", "Subject", "Type", "Source", "Tags",
		"Review Count", "Next Review", "Mastered"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheet, col+"1", h)
	}

	for i, q := range questions {
		rowNum := i + 2
		values := []interface{}{
			q.Content,
			q.Answer,
			q.Analysis,
			string(q.Subject),
			string(q.Type),
			q.Source,
			strings.Join(q.Tags, ", "),
			q.ReviewCount,
			q.NextReviewDate.Format("2006-01-02"),
			q.IsMastered,
		}
		for j, v := range values {
			col, _ := excelize.ColumnNumberToName(j + 1)
			f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, rowNum), v)
		}
	}

	if err := f.SaveAs(filePath); err != nil {
		return fmt.Errorf("failed to save export file: %v", err)
	}
	return nil
}
