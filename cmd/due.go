package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/qreview/internal/database"
	"github.com/example/qreview/internal/review"
	"github.com/example/qreview/pkg/models"
)

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "Show questions due for review",
	RunE: func(cmd *cobra.Command, args []string) error {
		questions, err := database.NewQuestionRepository().GetAll()
		if err != nil {
			return err
		}

		now := time.Now()
		counts := review.DueBySubject(questions, now)
		total := 0
		for _, c := range counts {
			total += c
		}
		if total == 0 {
			fmt.Println("Nothing due. All caught up.")
			return nil
		}

		fmt.Printf("%d question(s) due:\n\n", total)
		for _, s := range models.Subjects {
			if counts[s] > 0 {
				fmt.Printf("  %s: %d\n", review.SubjectTitle(s), counts[s])
			}
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "\nID\tSUBJECT\tTYPE\tOVERDUE\tCONTENT")
		for _, q := range questions {
			if !q.IsDue(now) {
				continue
			}
			overdue := int(now.Sub(q.NextReviewDate).Hours() / 24)
			content := q.Content
			if len(content) > 48 {
				content = content[:45] + "..."
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%dd\t%s\n", q.ID[:8], q.Subject, q.Type, overdue, content)
		}
		w.Flush()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dueCmd)
}
