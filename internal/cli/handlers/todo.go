package handlers

import (
	"errors"
	"fmt"

	"github.com/xolan/truflow/internal/cli"
	"github.com/xolan/truflow/internal/entry"
	"github.com/xolan/truflow/internal/service"
)

// ListTodos prints tasks grouped into overdue, active and done.
func ListTodos(deps *cli.Deps, hideDone bool) {
	cats := deps.Services.Todo.Categorized()
	if len(cats.Overdue)+len(cats.Active)+len(cats.Done) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No tasks")
		_, _ = fmt.Fprintln(deps.Stdout, "Add one with: truflow todo add <text>")
		return
	}

	printSection := func(title string, tasks []entry.Task) {
		if len(tasks) == 0 {
			return
		}
		_, _ = fmt.Fprintf(deps.Stdout, "%s (%d)\n", title, len(tasks))
		for _, t := range tasks {
			_, _ = fmt.Fprintf(deps.Stdout, "  %s\n", cli.FormatTask(t))
		}
	}

	printSection("Overdue", cats.Overdue)
	printSection("Active", cats.Active)
	if !hideDone {
		printSection("Done", cats.Done)
	}
}

// AddTodo creates a task.
func AddTodo(deps *cli.Deps, text, priority, due string) {
	p, err := entry.ParsePriority(priority)
	if err != nil {
		fail(deps, fmt.Sprintf("Invalid priority '%s'", priority), err)
		return
	}
	t, err := deps.Services.Todo.Add(text, p, due)
	if err != nil {
		failTodo(deps, "", err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Added: %s\n", cli.FormatTask(*t))
}

// SetTodoDone marks a task done or not done.
func SetTodoDone(deps *cli.Deps, id string, done bool) {
	t, err := deps.Services.Todo.SetDone(id, done)
	if err != nil {
		failTodo(deps, id, err)
		return
	}
	_, _ = fmt.Fprintln(deps.Stdout, cli.FormatTask(*t))
}

// EditTodo changes the fields set in in.
func EditTodo(deps *cli.Deps, id string, in service.TaskInput) {
	if in == (service.TaskInput{}) {
		fail(deps, "At least one field to change is required", nil,
			"Usage: truflow todo edit <id> --text 'new text' --due 2024-01-20")
		return
	}
	t, err := deps.Services.Todo.Edit(id, in)
	if err != nil {
		failTodo(deps, id, err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Updated: %s\n", cli.FormatTask(*t))
}

// DeleteTodo removes a task.
func DeleteTodo(deps *cli.Deps, id string) {
	t, err := deps.Services.Todo.Delete(id)
	if err != nil {
		failTodo(deps, id, err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Deleted: %s\n", t.Text)
}

// ClearCompletedTodos removes every done task.
func ClearCompletedTodos(deps *cli.Deps) {
	n, err := deps.Services.Todo.ClearCompleted()
	if err != nil {
		fail(deps, "Failed to clear completed tasks", err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Cleared %d completed %s\n", n, cli.Pluralize("task", n))
}

func failTodo(deps *cli.Deps, id string, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyText):
		fail(deps, "Task text cannot be empty", nil, "Usage: truflow todo add <text>")
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrAmbiguousID), errors.Is(err, service.ErrEmptyID):
		failLookup(deps, "task", id, err, "truflow todo list")
	default:
		fail(deps, "Invalid task", err, "Due dates use YYYY-MM-DD or DD/MM/YYYY")
	}
}
