package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/qreview/internal/database"
	"github.com/example/qreview/internal/excel"
)

var importSheet string
var importStartRow int

var importCmd = &cobra.Command{
	Use:   "import <file.xlsx|file.csv>",
	Short: "Bulk-import questions from a spreadsheet",
	Long: `Import questions from an xlsx or csv file. Expected columns:
A content, B answer, C analysis, D subject, E type, F source, G tags.
Imported questions start unreviewed and due immediately.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config := excel.DefaultImportConfig()
		config.FilePath = args[0]
		config.SheetName = importSheet
		config.StartRow = importStartRow

		result, err := excel.ImportQuestions(config)
		if err != nil {
			return err
		}

		fmt.Printf("Processed %d row(s): %d created, %d skipped.\n",
			result.TotalProcessed, result.Created, result.Skipped)
		for _, e := range result.Errors {
			fmt.Println("  " + e)
		}
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <file.xlsx>",
	Short: "Export the question bank to a spreadsheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		questions, err := database.NewQuestionRepository().GetAll()
		if err != nil {
			return err
		}
		if err := excel.ExportQuestions(questions, args[0]); err != nil {
			return err
		}
		fmt.Printf("Exported %d question(s) to %s.\n", len(questions), args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	importCmd.Flags().StringVar(&importSheet, "sheet", "Sheet1", "Worksheet to import (xlsx only)")
	importCmd.Flags().IntVar(&importStartRow, "start-row", 2, "First data row (1-based)")
}
