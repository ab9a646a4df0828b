package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/jaekwang-park/taskboard/internal/model"
	"github.com/jaekwang-park/taskboard/internal/tasklist"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func renderView(w io.Writer, view tasklist.View) error {
	if len(view.Items) == 0 {
		fmt.Fprintln(w, "No tasks.")
	} else {
		tw := newTable(w)
		fmt.Fprintln(tw, "ID\tDONE\tTITLE\tDUE\tPRIORITY")
		for _, it := range view.Items {
			done := " "
			if it.Completed {
				done = "x"
			}
			due := it.DueLabel
			if it.Overdue {
				due += " (overdue)"
			}
			fmt.Fprintf(tw, "%s\t[%s]\t%s\t%s\t%s\n", it.ID, done, it.Title, due, it.PriorityLabel)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	fmt.Fprintf(w, "\nShowing %d of %d. Important: %d, in progress: %d, completed: %d.\n",
		view.Shown, view.Total, view.Counts.Important, view.Counts.InProgress, view.Counts.Completed)
	return nil
}

func renderStats(w io.Writer, s tasklist.Stats) error {
	fmt.Fprintf(w, "Total %d, completed %d, pending %d (%d%% done)\n", s.Total, s.Completed, s.Pending, s.CompletionRate)
	fmt.Fprintf(w, "Priority: high %d, medium %d, low %d\n\n", s.ByPriority.High, s.ByPriority.Medium, s.ByPriority.Low)

	tw := newTable(w)
	fmt.Fprintln(tw, "DAY\tCREATED\tCOMPLETED")
	for _, d := range s.Daily {
		fmt.Fprintf(tw, "%s\t%d\t%d\n", d.Label, d.Total, d.Completed)
	}
	return tw.Flush()
}

func renderPreferences(w io.Writer, p model.UserPreferences) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "theme\t%s\n", p.Theme)
	fmt.Fprintf(tw, "email notifications\t%t\n", p.Notifications.Email)
	fmt.Fprintf(tw, "push notifications\t%t\n", p.Notifications.Push)
	fmt.Fprintf(tw, "task reminders\t%t\n", p.Notifications.TaskReminders)
	fmt.Fprintf(tw, "daily summary\t%t\n", p.Notifications.DailySummary)
	return tw.Flush()
}
