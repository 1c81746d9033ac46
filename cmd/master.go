package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/qreview/internal/database"
	"github.com/example/qreview/internal/review"
)

var masterCmd = &cobra.Command{
	Use:   "master <question-id>",
	Short: "Mark a question as fully mastered",
	Long: `Mark a question as fully mastered, removing it from due pools.
This bypasses the scheduler; random practice can still include it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo := database.NewQuestionRepository()
		q, err := findQuestion(repo, args[0])
		if err != nil {
			return err
		}
		updated := review.MarkMastered(*q)
		if err := repo.Update(&updated); err != nil {
			return err
		}
		fmt.Printf("Marked %s as mastered.\n", updated.ID[:8])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(masterCmd)
}
