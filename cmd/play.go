package cmd

import (
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start climbing",
	RunE: func(cmd *cobra.Command, args []string) error {
		lesson, _ := cmd.Flags().GetInt("lesson")
		return runApp(cmd, lesson)
	},
}

func init() {
	playCmd.Flags().Int("lesson", 0, "Open this lesson straight away")
}
