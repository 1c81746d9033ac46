package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/qreview/internal/database"
)

var logsLimit int

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show recent review sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		logs, err := database.NewReviewLogRepository().GetRecent(logsLimit)
		if err != nil {
			return err
		}
		if len(logs) == 0 {
			fmt.Println("No review sessions yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "WHEN\tCOUNT\tSESSION")
		for _, l := range logs {
			fmt.Fprintf(w, "%s\t%d\t%s\n", l.Timestamp.Format("2006-01-02 15:04"), l.Count, l.Subject)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.Flags().IntVarP(&logsLimit, "limit", "n", 20, "How many sessions to show")
}
