package cmd

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathjourney/internal/catalog"
	"github.com/abhisek/mathjourney/internal/progress"
	"github.com/abhisek/mathjourney/internal/scoring"
	"github.com/abhisek/mathjourney/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show points, level and lesson scores",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		ctrl, warning := e.controller(ctx)
		if warning != "" {
			fmt.Fprintln(cmd.ErrOrStderr(), "Warning:", warning)
		}
		snap := ctrl.Snapshot()

		var accuracy []store.ActivityStat
		if e.journal != nil {
			accuracy, err = e.journal.EventRepo().ActivityAccuracy(ctx)
			if err != nil {
				return fmt.Errorf("query accuracy: %w", err)
			}
		}
		printStats(cmd.OutOrStdout(), snap.Progress, snap.Lessons, accuracy)
		return nil
	},
}

func printStats(w io.Writer, p progress.State, lessons []catalog.Lesson, accuracy []store.ActivityStat) {
	fmt.Fprintf(w, "Points:    %d\n", p.TotalPoints)
	fmt.Fprintf(w, "Level:     %d\n", p.CurrentLevel)
	fmt.Fprintf(w, "Mountain:  %.0f%% of this level (%s, %d to go)\n",
		p.MountainProgress*100, scoring.MilestoneFor(p.TotalPoints), scoring.PointsToNextLevel(p.TotalPoints))
	if !p.LastPlayed.IsZero() {
		fmt.Fprintf(w, "Last seen: %s\n", p.LastPlayed.Local().Format("2006-01-02 15:04"))
	}

	if len(p.CompletedLessons) > 0 {
		titles := map[int]string{}
		for _, l := range lessons {
			titles[l.Number] = l.Title
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Lesson scores")
		fmt.Fprintln(w, strings.Repeat("─", 40))
		for _, n := range slices.Sorted(slices.Values(p.CompletedLessons)) {
			fmt.Fprintf(w, "%-4d  %-24s  %6d\n", n, titles[n], p.LessonScores[n])
		}
	}

	if len(accuracy) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Accuracy")
		fmt.Fprintln(w, strings.Repeat("─", 40))
		for _, a := range accuracy {
			fmt.Fprintf(w, "%-10s  %4d/%-4d  %5.0f%%\n", a.Activity, a.Correct, a.Attempts, a.Accuracy()*100)
		}
	}
}
