package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jaekwang-park/taskboard/internal/model"
	"github.com/jaekwang-park/taskboard/internal/tasklist"
)

const dateLayout = "2006-01-02"

func newListCmd(a *app) *cobra.Command {
	var filter, search, sort string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.principal(); err != nil {
				return err
			}
			q, err := tasklist.ParseQuery(filter, search, sort)
			if err != nil {
				return err
			}
			view, err := a.board.SetQuery(cmd.Context(), q)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", "  ")
				return enc.Encode(view)
			}
			return renderView(a.out, view)
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "all", "all, today, upcoming or completed")
	cmd.Flags().StringVar(&search, "search", "", "only tasks whose title or description contains this text")
	cmd.Flags().StringVar(&sort, "sort", "dueDate", "dueDate, priority or name")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the view as JSON")
	return cmd
}

func newAddCmd(a *app) *cobra.Command {
	var description, due, priority string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.principal(); err != nil {
				return err
			}
			input := model.NewTask{
				Title:       strings.Join(args, " "),
				Description: description,
				Priority:    model.Priority(priority),
			}
			if due != "" {
				d, err := time.ParseInLocation(dateLayout, due, time.Local)
				if err != nil {
					return fmt.Errorf("invalid --due %q, expected YYYY-MM-DD", due)
				}
				input.DueDate = &d
			}

			task, err := a.board.AddTask(cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, task.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "longer description")
	cmd.Flags().StringVar(&due, "due", "", "due date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "high, medium or low (default medium)")
	return cmd
}

func newToggleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Mark a task completed, or reopen it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.principal(); err != nil {
				return err
			}
			task, err := a.board.ToggleComplete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			state := "open"
			if task.Completed {
				state = "completed"
			}
			fmt.Fprintf(a.out, "%s %s\n", task.ID, state)
			return nil
		},
	}
}

func newRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.principal(); err != nil {
				return err
			}
			return a.board.DeleteTask(cmd.Context(), args[0])
		},
	}
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarise completion and recent activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.principal()
			if err != nil {
				return err
			}
			stats, err := a.analytics.Stats(cmd.Context(), p.ID)
			if err != nil {
				return err
			}
			return renderStats(a.out, stats)
		},
	}
}

func newPrefsCmd(a *app) *cobra.Command {
	var theme string
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.principal()
			if err != nil {
				return err
			}

			var prefs model.UserPreferences
			if cmd.Flags().Changed("theme") {
				t := model.Theme(theme)
				prefs, err = a.preferences.Update(cmd.Context(), p.ID, model.PreferencesPatch{Theme: &t})
			} else {
				prefs, err = a.preferences.Get(cmd.Context(), p.ID)
			}
			if err != nil {
				return err
			}
			return renderPreferences(a.out, prefs)
		},
	}
	cmd.Flags().StringVar(&theme, "theme", "", "light, dark or system")
	return cmd
}
