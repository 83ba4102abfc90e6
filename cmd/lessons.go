package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathjourney/internal/catalog"
)

var lessonsCmd = &cobra.Command{
	Use:   "lessons",
	Short: "List lessons and which ones are open",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer e.Close()

		ctrl, warning := e.controller(cmd.Context())
		if warning != "" {
			fmt.Fprintln(cmd.ErrOrStderr(), "Warning:", warning)
		}
		printLessons(cmd.OutOrStdout(), ctrl.Snapshot().Lessons)
		return nil
	},
}

func printLessons(w io.Writer, lessons []catalog.Lesson) {
	fmt.Fprintf(w, "%-4s  %-2s  %-24s  %-10s  %s\n", "#", "", "Lesson", "Status", "Points")
	fmt.Fprintln(w, strings.Repeat("─", 56))
	for _, l := range lessons {
		status := "open"
		points := fmt.Sprintf("0/%d", l.MaxPoints)
		switch {
		case !l.IsUnlocked:
			status = "locked"
		case !l.Playable():
			status = "soon"
			points = "-"
		case l.IsCompleted:
			status = "done"
			points = fmt.Sprintf("%d/%d", l.EarnedPoints, l.MaxPoints)
		}
		fmt.Fprintf(w, "%-4d  %-2s  %-24s  %-10s  %s\n", l.Number, l.Icon, l.Title, status, points)
	}
}
