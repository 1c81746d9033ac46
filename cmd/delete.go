package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/qreview/internal/database"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <question-id>",
	Short: "Delete a question from the notebook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo := database.NewQuestionRepository()
		q, err := findQuestion(repo, args[0])
		if err != nil {
			return err
		}
		if err := repo.Delete(q.ID); err != nil {
			return err
		}
		fmt.Printf("Deleted %s.\n", q.ID[:8])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
