package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/sadopc/daybook/internal/duedate"
	"github.com/sadopc/daybook/internal/todo"
)

func newTodoCommand(e *env) *cobra.Command {
	todoCmd := &cobra.Command{
		Use:   "todo",
		Short: "Manage the TODO list",
	}

	todoCmd.AddCommand(newTodoListCommand(e))
	todoCmd.AddCommand(newTodoAddCommand(e))
	todoCmd.AddCommand(newTodoDoneCommand(e))
	todoCmd.AddCommand(newTodoEditCommand(e))
	todoCmd.AddCommand(newTodoRemoveCommand(e))
	todoCmd.AddCommand(newTodoClearCommand(e))
	return todoCmd
}

func newTodoListCommand(e *env) *cobra.Command {
	var overdue, dueToday bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if overdue && dueToday {
				return errors.New("--overdue and --today are mutually exclusive")
			}
			if err := e.open(); err != nil {
				return err
			}
			defer e.close()

			today := e.clock.Now()
			tasks := e.todos.Tasks()
			switch {
			case overdue:
				tasks = e.todos.Overdue(today)
			case dueToday:
				tasks = e.todos.DueToday(today)
			}

			out := cmd.OutOrStdout()
			if len(tasks) == 0 {
				fmt.Fprintln(out, "No tasks.")
				return nil
			}
			printTasks(out, tasks, today)

			s := e.todos.Stats()
			fmt.Fprintf(out, "Total: %d | Done: %d | Pending: %d\n", s.Total, s.Completed, s.Pending)
			return nil
		},
	}

	cmd.Flags().BoolVar(&overdue, "overdue", false, "only pending tasks past their due date")
	cmd.Flags().BoolVar(&dueToday, "today", false, "only pending tasks due today")
	return cmd
}

func printTasks(w io.Writer, tasks []todo.Task, today time.Time) {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		done := " "
		if t.Completed {
			done = "x"
		}
		due := ""
		if t.DueDate != nil {
			due = duedate.Display(*t.DueDate)
		}
		rows = append(rows, []string{
			strconv.FormatInt(t.ID, 10),
			done,
			t.Text,
			due,
			string(t.StatusOn(today)),
		})
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Done", "Task", "Due", "Status").
		Rows(rows...)
	fmt.Fprintln(w, tbl.String())
}

func newTodoAddCommand(e *env) *cobra.Command {
	var due string

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := duedate.Check(due, e.clock.Now()); err != nil {
				return fmt.Errorf("--due %q: %w", due, err)
			}
			if err := e.open(); err != nil {
				return err
			}
			defer e.close()

			t, ok, err := e.todos.Add(strings.Join(args, " "), due)
			if err != nil {
				return err
			}
			if !ok {
				return errors.New("task text is empty")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d: %s\n", t.ID, t.Text)
			return nil
		},
	}

	cmd.Flags().StringVar(&due, "due", "", "due date, YYYY-MM-DD")
	return cmd
}

func newTodoDoneCommand(e *env) *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task as done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTask(e, args[0], func(t todo.Task) error {
				if t.Completed == !undo {
					return nil
				}
				_, err := e.todos.Toggle(t.ID)
				return err
			})
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "mark the task as not done instead")
	return cmd
}

func newTodoEditCommand(e *env) *cobra.Command {
	var text, due string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a task's text or due date",
		Long:  `Change a task's text or due date. --due "" removes the due date.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			textSet := cmd.Flags().Changed("text")
			dueSet := cmd.Flags().Changed("due")
			if !textSet && !dueSet {
				return errors.New("nothing to change: pass --text and/or --due")
			}
			if dueSet {
				if err := duedate.Check(due, e.clock.Now()); err != nil {
					return fmt.Errorf("--due %q: %w", due, err)
				}
			}

			return withTask(e, args[0], func(t todo.Task) error {
				if textSet {
					if _, err := e.todos.EditText(t.ID, text); err != nil {
						return err
					}
				}
				if dueSet {
					if _, err := e.todos.EditDueDate(t.ID, due); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "new text (blank is ignored)")
	cmd.Flags().StringVar(&due, "due", "", "new due date, YYYY-MM-DD")
	return cmd
}

func newTodoRemoveCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTask(e, args[0], func(t todo.Task) error {
				_, err := e.todos.Remove(t.ID)
				return err
			})
		},
	}
}

func newTodoClearCommand(e *env) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.open(); err != nil {
				return err
			}
			defer e.close()

			n := len(e.todos.Tasks())
			if !yes {
				err := huh.NewConfirm().
					Title(fmt.Sprintf("Delete all %d tasks?", n)).
					Affirmative("Delete").
					Negative("Cancel").
					Value(&yes).
					Run()
				if err != nil {
					return err
				}
				if !yes {
					return nil
				}
			}

			if _, err := e.todos.ClearAll(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d tasks\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// withTask opens the store, resolves arg to a task and runs fn on it.
func withTask(e *env, arg string, fn func(todo.Task) error) error {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid task id %q", arg)
	}
	if err := e.open(); err != nil {
		return err
	}
	defer e.close()

	t, err := e.todos.Get(id)
	if err != nil {
		return err
	}
	return fn(t)
}
