package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Start the climb over from zero points",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			err := huh.NewConfirm().
				Title("Reset all progress?").
				Description("Points, levels and finished lessons will be cleared. History is kept.").
				Affirmative("Reset").
				Negative("Cancel").
				Value(&yes).
				Run()
			if err != nil {
				return fmt.Errorf("confirm reset: %w", err)
			}
			if !yes {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing changed.")
				return nil
			}
		}

		e, err := openEnv(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		ctrl, _ := e.controller(ctx)
		if _, err := ctrl.ResetProgress(ctx); err != nil {
			return fmt.Errorf("reset progress: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Progress reset. Back to base camp!")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}
