package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mathjourney",
	Short: "Climb the math mountain one lesson at a time",
	Long: "Math Journey is a terminal game for young learners: warm-up puzzles, an apple store\n" +
		"for tens and ones, and a house built from right angles. Points climb the mountain.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, 0)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("progress", "", "Path to the progress file (overrides MATHJOURNEY_PROGRESS)")
	rootCmd.PersistentFlags().String("db", "", "Path to the SQLite journal (overrides MATHJOURNEY_DB)")
	rootCmd.PersistentFlags().String("backend", "", "Where progress is kept: file or sqlite (overrides MATHJOURNEY_BACKEND)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(lessonsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}
