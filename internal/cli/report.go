package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nissyi-gh/tasksplit/internal/app"
	"github.com/nissyi-gh/tasksplit/internal/model"
	"github.com/nissyi-gh/tasksplit/internal/timefmt"
	"github.com/nissyi-gh/tasksplit/internal/tracker"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show time analytics and today's habits",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().Int("limit", 5, "Number of recent tasks to show")
}

func runReport(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	e, err := openEnv(nil)
	if err != nil {
		return err
	}
	defer e.Close()

	out := cmd.OutOrStdout()
	writeReport(out, e.session, limit)

	at, ok, err := e.blobs.UpdatedAt(tracker.TasksBlob)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(out, "\nLast saved: never")
		return nil
	}
	fmt.Fprintf(out, "\nLast saved: %s\n", at.Local().Format("2006-01-02 15:04:05"))
	return nil
}

func writeReport(w io.Writer, s *app.Session, limit int) {
	fmt.Fprintf(w, "Total time tracked: %s\n", timefmt.Format(s.Tasks.TotalTime()))
	fmt.Fprintf(w, "Tasks completed:    %d\n\n", s.Tasks.CompletedTasks())

	recent := s.Tasks.Recent(limit)
	if len(recent) == 0 {
		fmt.Fprintln(w, "No tasks yet.")
	} else {
		fmt.Fprintf(w, "Recent tasks (%d):\n", len(recent))
		for _, t := range recent {
			fmt.Fprintf(w, "  %-32s %3d%%  %s\n", t.Title, t.Progress(), timefmt.Format(t.TimeSpent))
		}
	}

	fmt.Fprintln(w, "\nEstimates from remembered tasks:")
	for _, lvl := range model.EnergyLevels {
		avg, n := s.Tasks.Estimate(lvl)
		if n == 0 {
			fmt.Fprintf(w, "  %-5s -\n", lvl)
			continue
		}
		fmt.Fprintf(w, "  %-5s %s (avg of %d)\n", lvl, timefmt.Format(avg), n)
	}

	done, total := s.Daily.Progress()
	fmt.Fprintf(w, "\nToday %s: %d/%d habits done\n", s.Daily.Today(), done, total)
	for _, d := range s.Daily.Items() {
		check := "[ ]"
		if d.Completed {
			check = "[x]"
		}
		fmt.Fprintf(w, "  %s %s\n", check, d.Title)
	}
}
