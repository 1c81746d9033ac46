package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/qreview/internal/database"
	"github.com/example/qreview/internal/review"
	"github.com/example/qreview/pkg/models"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show notebook statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		questions, err := database.NewQuestionRepository().GetAll()
		if err != nil {
			return err
		}
		logs, err := database.NewReviewLogRepository().GetRecent(models.MaxReviewLogs)
		if err != nil {
			return err
		}

		now := time.Now()
		stats := review.ComputeStats(questions, logs, now)

		fmt.Printf("Questions:    %d\n", stats.TotalQuestions)
		fmt.Printf("Mastered:     %d\n", stats.MasteredCount)
		fmt.Printf("Due now:      %d\n", stats.DueCount)
		fmt.Printf("Streak:       %d day(s)\n", stats.StreakDays)

		counts := review.DueBySubject(questions, now)
		fmt.Println("\nDue by subject:")
		for _, s := range models.Subjects {
			fmt.Printf("  %-10s %d\n", review.SubjectTitle(s), counts[s])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
