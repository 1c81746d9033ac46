package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/qreview/internal/database"
	"github.com/example/qreview/pkg/models"
)

var reflectDate string

var reflectCmd = &cobra.Command{
	Use:   "reflect [text]",
	Short: "Write or show the daily reflection",
	Long: `Write the study reflection for a day (default today). With no text,
shows the existing reflection instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		date := reflectDate
		if date == "" {
			date = time.Now().Format("2006-01-02")
		}
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return fmt.Errorf("date must be YYYY-MM-DD: %v", err)
		}

		repo := database.NewReflectionRepository()
		if len(args) == 0 {
			reflection, err := repo.GetByDate(date)
			if err != nil {
				return err
			}
			if reflection == nil {
				fmt.Printf("No reflection for %s.\n", date)
				return nil
			}
			fmt.Printf("%s\n%s\n", reflection.Date, reflection.Content)
			return nil
		}

		reflection := models.Reflection{Date: date, Content: strings.Join(args, " ")}
		if err := repo.Upsert(&reflection); err != nil {
			return err
		}
		fmt.Printf("Saved reflection for %s.\n", date)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reflectCmd)
	reflectCmd.Flags().StringVarP(&reflectDate, "date", "d", "", "Day to write or show (YYYY-MM-DD, default today)")
}
