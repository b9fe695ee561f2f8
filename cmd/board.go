package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xolan/truflow/internal/cli"
	"github.com/xolan/truflow/internal/cli/handlers"
	"github.com/xolan/truflow/internal/entry"
	"github.com/xolan/truflow/internal/filter"
	"github.com/xolan/truflow/internal/service"
)

// boardCmd represents the board command
var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Kanban board of projects",
	Long: `Projects live on a kanban board with the columns queue, in-progress, on-hold,
done and backburner. Every card is also a time bucket.

Usage:
  truflow board list [--column queue] [--label urgent] [--priority H] [--keyword web]
  truflow board show <id>
  truflow board add <name> [--priority H] [--goal 10] [--item Design --item Build]
  truflow board edit <id> [--name ...] [--description ...] [--goal 2.5]
  truflow board move <id> <column>
  truflow board delete <id>
  truflow board check add|toggle|remove <id> ...
  truflow board label <id> <label> [--remove]`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ShowBoard(cli.GetDeps(), filter.CardFilter{})
	},
}

var boardListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the board",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		deps := cli.GetDeps()
		f := filter.CardFilter{}
		f.Keyword, _ = cmd.Flags().GetString("keyword")
		f.Column, _ = cmd.Flags().GetString("column")
		f.Labels, _ = cmd.Flags().GetStringSlice("label")
		p, _ := cmd.Flags().GetString("priority")
		priority, err := entry.ParsePriority(p)
		if err != nil {
			failFlag(deps, "priority", p, err)
			return
		}
		f.Priority = priority
		handlers.ShowBoard(deps, f)
	},
}

var boardShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a card with its checklist and time goal",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ShowCard(cli.GetDeps(), args[0])
	},
}

var boardAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a card",
	Long: `Add a card. It lands in the queue column with priority L unless set.
Labels must be defined first with 'truflow settings label add'.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		deps := cli.GetDeps()
		in, ok := cardInputFromFlags(cmd)
		if !ok {
			return
		}
		name := strings.Join(args, " ")
		in.Name = &name
		if items, _ := cmd.Flags().GetStringArray("item"); len(items) > 0 {
			in.Checklist = &items
		}
		handlers.AddCard(deps, in)
	},
}

var boardEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change a card's fields",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		in, ok := cardInputFromFlags(cmd)
		if !ok {
			return
		}
		if cmd.Flags().Changed("name") {
			name, _ := cmd.Flags().GetString("name")
			in.Name = &name
		}
		handlers.EditCard(cli.GetDeps(), args[0], in)
	},
}

var boardMoveCmd = &cobra.Command{
	Use:   "move <id> <column>",
	Short: "Move a card to another column",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.MoveCard(cli.GetDeps(), args[0], args[1])
	},
}

var boardDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a card",
	Long:  `Delete a card. Time already logged against it is kept.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.DeleteCard(cli.GetDeps(), args[0])
	},
}

var boardCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Edit a card's checklist",
	Long: `Checklist items are addressed by their 1-based position from 'truflow board show'.

Examples:
  truflow board check add 3f2a Write tests
  truflow board check toggle 3f2a 2
  truflow board check remove 3f2a 1`,
}

var boardCheckAddCmd = &cobra.Command{
	Use:   "add <id> <text>",
	Short: "Append a checklist item",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.AddChecklistItem(cli.GetDeps(), args[0], strings.Join(args[1:], " "))
	},
}

var boardCheckToggleCmd = &cobra.Command{
	Use:   "toggle <id> <item>",
	Short: "Tick or untick a checklist item",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ToggleChecklistItem(cli.GetDeps(), args[0], args[1])
	},
}

var boardCheckRemoveCmd = &cobra.Command{
	Use:   "remove <id> <item>",
	Short: "Remove a checklist item",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.RemoveChecklistItem(cli.GetDeps(), args[0], args[1])
	},
}

var boardLabelCmd = &cobra.Command{
	Use:   "label <id> <label>",
	Short: "Add or remove a label on a card",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		remove, _ := cmd.Flags().GetBool("remove")
		handlers.LabelCard(cli.GetDeps(), args[0], args[1], remove)
	},
}

func init() {
	boardListCmd.Flags().String("keyword", "", "Only cards whose name or description contains this")
	boardListCmd.Flags().String("column", "", "Only this column")
	boardListCmd.Flags().StringSlice("label", nil, "Only cards with all of these labels")
	boardListCmd.Flags().String("priority", "", "Only cards with this priority (H, M, L)")

	for _, c := range []*cobra.Command{boardAddCmd, boardEditCmd} {
		c.Flags().String("description", "", "Card description")
		c.Flags().String("column", "", "Column")
		c.Flags().String("priority", "", "Priority (H, M, L or none)")
		c.Flags().StringSlice("label", nil, "Labels (replaces the card's labels)")
		c.Flags().Float64("goal", 0, "Time goal in hours (0 for none)")
	}
	boardAddCmd.Flags().StringArray("item", nil, "Checklist item (repeatable)")
	boardEditCmd.Flags().String("name", "", "New name")

	boardLabelCmd.Flags().Bool("remove", false, "Remove the label instead of adding it")

	boardCheckCmd.AddCommand(boardCheckAddCmd, boardCheckToggleCmd, boardCheckRemoveCmd)
	boardCmd.AddCommand(boardListCmd, boardShowCmd, boardAddCmd, boardEditCmd, boardMoveCmd,
		boardDeleteCmd, boardCheckCmd, boardLabelCmd)
	rootCmd.AddCommand(boardCmd)
}

// cardInputFromFlags collects the card fields whose flags were set.
func cardInputFromFlags(cmd *cobra.Command) (service.ProjectInput, bool) {
	var in service.ProjectInput
	flags := cmd.Flags()

	if flags.Changed("description") {
		v, _ := flags.GetString("description")
		in.Description = &v
	}
	if flags.Changed("column") {
		v, _ := flags.GetString("column")
		in.Column = &v
	}
	if flags.Changed("priority") {
		v, _ := flags.GetString("priority")
		p, err := entry.ParsePriority(v)
		if err != nil {
			failFlag(cli.GetDeps(), "priority", v, err)
			return in, false
		}
		in.Priority = &p
	}
	if flags.Changed("label") {
		v, _ := flags.GetStringSlice("label")
		in.Labels = &v
	}
	if flags.Changed("goal") {
		v, _ := flags.GetFloat64("goal")
		in.TimeGoal = &v
	}
	return in, true
}

// failFlag reports an invalid flag value.
func failFlag(deps *cli.Deps, flag, value string, err error) {
	_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid --%s '%s'\n", flag, value)
	_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
	deps.Exit(1)
}
