package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sandeepkv93/hourline/internal/calendar"
	"github.com/sandeepkv93/hourline/internal/commands"
	"github.com/sandeepkv93/hourline/internal/model"
	"github.com/sandeepkv93/hourline/internal/timeline"
	"github.com/spf13/cobra"
)

func newAddCommand(opts *rootOptions) *cobra.Command {
	var (
		day         string
		at          string
		category    string
		description string
	)
	cmd := &cobra.Command{
		Use:   "add <name...>",
		Short: "Add a task at a day and time",
		Example: `  hourline add --day tomorrow --at 09:00 Pay bills
  hourline add --at 14:30 --category work --description "agenda in **notes**" Sync with team`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hour, minute, err := commands.ParseClock(at)
			if err != nil {
				return err
			}
			cat, err := model.ParseCategory(category)
			if err != nil {
				return err
			}
			return withApp(cmd, opts, func(a *app) error {
				date, err := commands.GotoArgs{Target: strings.ToLower(day)}.Resolve(time.Now())
				if err != nil {
					return err
				}
				res, err := a.assembler.AddTask(cmd.Context(), model.Task{
					Name:        strings.Join(args, " "),
					Description: description,
					Category:    cat,
					DateAdded:   commands.AddArgs{Hour: hour, Minute: minute}.At(date),
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "added %s %q at %s\n", res.Task.ID, res.Task.Name, res.Task.DateAdded.Format("Mon Jan 2 2006 15:04"))
				printWarning(cmd.ErrOrStderr(), res)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&day, "day", "d", "today", "YYYY-MM-DD, today, tomorrow or yesterday")
	cmd.Flags().StringVarP(&at, "at", "t", "09:00", "time of day as HH or HH:MM")
	cmd.Flags().StringVar(&category, "category", string(model.CategoryGeneral), "one of "+categoryList())
	cmd.Flags().StringVar(&description, "description", "", "markdown description")
	return cmd
}

func newDayCommand(opts *rootOptions) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "day [date]",
		Short: "Print the hourly timeline of a day",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				date, err := resolveDate(args)
				if err != nil {
					return err
				}
				printDay(cmd.OutOrStdout(), a.assembler, date, all)
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "include empty hours")
	return cmd
}

func newWeekCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "week [date]",
		Short: "Print the week containing a date with task counts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				date, err := resolveDate(args)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, a.assembler.MonthLabel(date))
				for _, wd := range a.assembler.Week(date) {
					open, done := 0, 0
					for _, slot := range a.assembler.BuildTimeline(wd.Date) {
						for _, task := range slot.Tasks {
							if task.IsCompleted {
								done++
							} else {
								open++
							}
						}
					}
					marker := " "
					if calendar.SameDay(wd.Date, date) {
						marker = ">"
					}
					fmt.Fprintf(out, "%s %s %s  open:%d done:%d\n", marker, wd.Short(), wd.Date.Format("2006-01-02"), open, done)
				}
				return nil
			})
		},
	}
}

func newToggleCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <task-id>",
		Short: "Flip a task between open and done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				res, err := a.assembler.ToggleTask(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				state := "open"
				if res.Task.IsCompleted {
					state = "done"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %q is now %s\n", res.Task.ID, res.Task.Name, state)
				printWarning(cmd.ErrOrStderr(), res)
				return nil
			})
		},
	}
}

func newRmCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <task-id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				res, err := a.assembler.RemoveTask(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s %q\n", res.Task.ID, res.Task.Name)
				return nil
			})
		},
	}
}

func resolveDate(args []string) (time.Time, error) {
	target := "today"
	if len(args) == 1 {
		target = strings.ToLower(args[0])
	}
	return commands.GotoArgs{Target: target}.Resolve(time.Now())
}

func printDay(out io.Writer, a *timeline.Assembler, date time.Time, all bool) {
	fmt.Fprintln(out, date.Format("Monday, Jan 2 2006"))
	pending := make(map[string]bool)
	for _, rem := range a.PendingReminders() {
		pending[rem.TaskID] = true
	}
	empty := true
	for _, slot := range a.BuildTimeline(date) {
		if len(slot.Tasks) == 0 {
			if all {
				fmt.Fprintf(out, "%6s |\n", calendar.HourLabel(slot.Start))
			}
			continue
		}
		empty = false
		for i, task := range slot.Tasks {
			label := ""
			if i == 0 {
				label = calendar.HourLabel(slot.Start)
			}
			box := "[ ]"
			if task.IsCompleted {
				box = "[x]"
			}
			bell := ""
			if pending[task.ID] {
				bell = " (reminder)"
			}
			fmt.Fprintf(out, "%6s | %s %s %s #%s %s%s\n", label, box, task.DateAdded.Format("15:04"), task.Name, task.Category, task.ID, bell)
		}
	}
	if empty && !all {
		fmt.Fprintln(out, "  no tasks")
	}
}

func printWarning(out io.Writer, res timeline.Result) {
	if res.Warning != nil {
		fmt.Fprintf(out, "warning: %v\n", res.Warning)
	}
}

func categoryList() string {
	names := make([]string, 0, len(model.Categories()))
	for _, c := range model.Categories() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}
