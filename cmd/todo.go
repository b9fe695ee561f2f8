package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/xolan/truflow/internal/cli"
	"github.com/xolan/truflow/internal/cli/handlers"
	"github.com/xolan/truflow/internal/entry"
	"github.com/xolan/truflow/internal/service"
)

// todoCmd represents the todo command
var todoCmd = &cobra.Command{
	Use:   "todo",
	Short: "To-do list",
	Long: `Tasks with an optional priority and due date. Open tasks due before today are
listed as overdue.

Usage:
  truflow todo list [--hide-done]
  truflow todo add <text> [--priority H] [--due 2024-01-20]
  truflow todo done|undone <id>
  truflow todo edit <id> [--text ...] [--priority M] [--due ...] [--notes ...]
  truflow todo delete <id>
  truflow todo clear               Remove completed tasks`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ListTodos(cli.GetDeps(), false)
	},
}

var todoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks by overdue, active and done",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		hideDone, _ := cmd.Flags().GetBool("hide-done")
		handlers.ListTodos(cli.GetDeps(), hideDone)
	},
}

var todoAddCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a task",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		priority, _ := cmd.Flags().GetString("priority")
		due, _ := cmd.Flags().GetString("due")
		handlers.AddTodo(cli.GetDeps(), strings.Join(args, " "), priority, due)
	},
}

var todoDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a task done",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.SetTodoDone(cli.GetDeps(), args[0], true)
	},
}

var todoUndoneCmd = &cobra.Command{
	Use:   "undone <id>",
	Short: "Mark a task not done",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.SetTodoDone(cli.GetDeps(), args[0], false)
	},
}

var todoEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change a task",
	Long:  `Change the fields whose flags are given. An empty --due or --notes clears it.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		deps := cli.GetDeps()
		flags := cmd.Flags()
		var in service.TaskInput

		if flags.Changed("text") {
			v, _ := flags.GetString("text")
			in.Text = &v
		}
		if flags.Changed("priority") {
			v, _ := flags.GetString("priority")
			p, err := entry.ParsePriority(v)
			if err != nil {
				failFlag(deps, "priority", v, err)
				return
			}
			in.Priority = &p
		}
		if flags.Changed("due") {
			v, _ := flags.GetString("due")
			in.Due = &v
		}
		if flags.Changed("notes") {
			v, _ := flags.GetString("notes")
			in.Notes = &v
		}
		handlers.EditTodo(deps, args[0], in)
	},
}

var todoDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.DeleteTodo(cli.GetDeps(), args[0])
	},
}

var todoClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every completed task",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ClearCompletedTodos(cli.GetDeps())
	},
}

func init() {
	todoListCmd.Flags().Bool("hide-done", false, "Hide completed tasks")

	todoAddCmd.Flags().StringP("priority", "p", "", "Priority (H, M, L)")
	todoAddCmd.Flags().String("due", "", "Due date (YYYY-MM-DD or DD/MM/YYYY)")

	todoEditCmd.Flags().String("text", "", "New text")
	todoEditCmd.Flags().StringP("priority", "p", "", "Priority (H, M, L or none)")
	todoEditCmd.Flags().String("due", "", "Due date, empty to clear")
	todoEditCmd.Flags().String("notes", "", "Notes, empty to clear")

	todoCmd.AddCommand(todoListCmd, todoAddCmd, todoDoneCmd, todoUndoneCmd, todoEditCmd, todoDeleteCmd, todoClearCmd)
	rootCmd.AddCommand(todoCmd)
}
