package cmd

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/example/qreview/internal/database"
	"github.com/example/qreview/pkg/models"
)

var (
	addSubject  string
	addType     string
	addAnswer   string
	addAnalysis string
	addSource   string
	addTags     string
)

var addCmd = &cobra.Command{
	Use:   "add \"question text\"",
	Short: "Add a question to the notebook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, err := parseSubjectFlag(addSubject)
		if err != nil {
			return err
		}
		if subject == "" {
			subject = models.SubjectOther
		}
		qType, err := parseTypeFlag(addType)
		if err != nil {
			return err
		}
		if qType == "" {
			qType = models.TypeMissedProblem
		}

		q := models.NewQuestion(uuid.NewString(), qType, subject, time.Now())
		q.Content = args[0]
		q.Answer = addAnswer
		q.Analysis = addAnalysis
		q.Source = addSource
		q.Tags = parseTagsFlag(addTags)

		if err := database.NewQuestionRepository().Create(&q); err != nil {
			return err
		}
		fmt.Printf("Added question %s (%s, %s), due immediately.\n", q.ID, q.Subject, q.Type)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addSubject, "subject", "s", "other", "Subject (math, physics, chemistry, english, other)")
	addCmd.Flags().StringVarP(&addType, "type", "t", "missed", "Question type (example, missed)")
	addCmd.Flags().StringVarP(&addAnswer, "answer", "a", "", "Solution text")
	addCmd.Flags().StringVar(&addAnalysis, "analysis", "", "Optional analysis")
	addCmd.Flags().StringVar(&addSource, "source", "", "Source label, e.g. \"Midterm 2024\"")
	addCmd.Flags().StringVar(&addTags, "tags", "", "Comma-separated tags")
}
