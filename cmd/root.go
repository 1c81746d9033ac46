package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/example/qreview/internal/database"
)

var rootCmd = &cobra.Command{
	Use:   "qreview",
	Short: "A spaced-repetition notebook for exam questions",
	Long: `qreview tracks worked examples and missed problems and schedules
their reviews with an SM-2 spaced-repetition algorithm.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional
		godotenv.Load()
		return database.Connect()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		database.Close()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
