package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/qreview/internal/database"
)

var (
	listSubject  string
	listType     string
	listMastered bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List questions in the notebook",
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, err := parseSubjectFlag(listSubject)
		if err != nil {
			return err
		}
		qType, err := parseTypeFlag(listType)
		if err != nil {
			return err
		}

		questions, err := database.NewQuestionRepository().GetAll()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSUBJECT\tTYPE\tREVIEWS\tNEXT REVIEW\tMASTERED\tCONTENT")
		shown := 0
		for _, q := range questions {
			if subject != "" && q.Subject != subject {
				continue
			}
			if qType != "" && q.Type != qType {
				continue
			}
			if q.IsMastered && !listMastered {
				continue
			}
			content := q.Content
			if len(content) > 48 {
				content = content[:45] + "..."
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%v\t%s\n",
				q.ID[:8], q.Subject, q.Type, q.ReviewCount,
				q.NextReviewDate.Format("2006-01-02"), q.IsMastered, content)
			shown++
		}
		w.Flush()
		fmt.Printf("\n%d question(s)\n", shown)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVarP(&listSubject, "subject", "s", "", "Filter by subject")
	listCmd.Flags().StringVarP(&listType, "type", "t", "", "Filter by type (example, missed)")
	listCmd.Flags().BoolVar(&listMastered, "mastered", false, "Include mastered questions")
}
