package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xolan/truflow/internal/cli"
	"github.com/xolan/truflow/internal/entry"
	"github.com/xolan/truflow/internal/filter"
	"github.com/xolan/truflow/internal/service"
	"github.com/xolan/truflow/internal/stats"
)

// ShowBoard prints every column with its cards.
func ShowBoard(deps *cli.Deps, f filter.CardFilter) {
	kanban := deps.Services.Kanban
	board := kanban.ByColumn(f)

	shown := 0
	for _, col := range board {
		if f.Column != "" && col.Column != f.Column {
			continue
		}
		_, _ = fmt.Fprintf(deps.Stdout, "%s (%d)\n", strings.ToUpper(col.Column), len(col.Cards))
		for _, p := range col.Cards {
			_, _ = fmt.Fprintf(deps.Stdout, "  %s\n", cli.FormatCard(p, kanban.Goal(p)))
			shown++
		}
	}
	if shown == 0 && !f.IsEmpty() {
		_, _ = fmt.Fprintln(deps.Stdout, "No cards match the filter")
	}
}

// ShowCard prints one card in full.
func ShowCard(deps *cli.Deps, id string) {
	kanban := deps.Services.Kanban
	p, err := kanban.Get(id)
	if err != nil {
		failLookup(deps, "card", id, err, "truflow board list")
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "%s %s\n", p.Name, cli.FormatPriority(p.Priority))
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "ID:      %s\n", p.ID)
	_, _ = fmt.Fprintf(deps.Stdout, "Column:  %s\n", p.Column)
	_, _ = fmt.Fprintf(deps.Stdout, "Bucket:  %s\n", p.Bucket())
	if len(p.Labels) > 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "Labels:  %s\n", strings.Join(p.Labels, ", "))
	}
	if p.Description != "" {
		_, _ = fmt.Fprintln(deps.Stdout)
		_, _ = fmt.Fprintln(deps.Stdout, p.Description)
	}

	if goal := kanban.Goal(*p); goal.HasGoal() {
		_, _ = fmt.Fprintln(deps.Stdout)
		_, _ = fmt.Fprintf(deps.Stdout, "Time goal: %s of %s (%d%%)\n",
			stats.FormatGoal(goal.TrackedSeconds), stats.FormatGoal(goal.GoalSeconds), goal.Percent)
	}

	if len(p.Checklist) > 0 {
		done, total := p.ChecklistProgress()
		_, _ = fmt.Fprintln(deps.Stdout)
		_, _ = fmt.Fprintf(deps.Stdout, "Checklist %d/%d (%d%%):\n", done, total, service.ChecklistPercent(*p))
		for i, item := range p.Checklist {
			check := "[ ]"
			if item.Done {
				check = "[x]"
			}
			_, _ = fmt.Fprintf(deps.Stdout, "  %d. %s %s\n", i+1, check, item.Text)
		}
	}
}

// AddCard creates a card.
func AddCard(deps *cli.Deps, in service.ProjectInput) {
	p, err := deps.Services.Kanban.Add(in)
	if err != nil {
		failKanban(deps, "", err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Added card %s: %s (%s)\n", service.ShortID(p.ID), p.Name, p.Column)
}

// EditCard updates the fields set in in.
func EditCard(deps *cli.Deps, id string, in service.ProjectInput) {
	if in == (service.ProjectInput{}) {
		fail(deps, "At least one field to change is required", nil,
			"Usage: truflow board edit <id> --name 'new name' --priority H")
		return
	}
	p, err := deps.Services.Kanban.Update(id, in)
	if err != nil {
		failKanban(deps, id, err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Updated card %s: %s\n", service.ShortID(p.ID), p.Name)
}

// MoveCard moves a card to another column.
func MoveCard(deps *cli.Deps, id, column string) {
	p, changed, err := deps.Services.Kanban.Move(id, column)
	if err != nil {
		failKanban(deps, id, err)
		return
	}
	if !changed {
		_, _ = fmt.Fprintf(deps.Stdout, "%s is already in %s\n", p.Name, p.Column)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Moved %s to %s\n", p.Name, p.Column)
}

// DeleteCard removes a card. Its logged time keeps the project reference.
func DeleteCard(deps *cli.Deps, id string) {
	p, err := deps.Services.Kanban.Delete(id)
	if err != nil {
		failKanban(deps, id, err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Deleted card: %s\n", p.Name)
}

// AddChecklistItem appends an item to a card's checklist.
func AddChecklistItem(deps *cli.Deps, id, text string) {
	p, err := deps.Services.Kanban.AddChecklistItem(id, text)
	if err != nil {
		failKanban(deps, id, err)
		return
	}
	done, total := p.ChecklistProgress()
	_, _ = fmt.Fprintf(deps.Stdout, "Added to %s (%d/%d)\n", p.Name, done, total)
}

// ToggleChecklistItem flips an item by 1-based position or ID prefix.
func ToggleChecklistItem(deps *cli.Deps, id, ref string) {
	p, err := deps.Services.Kanban.ToggleChecklistItem(id, ref)
	if err != nil {
		failKanban(deps, id, err)
		return
	}
	done, total := p.ChecklistProgress()
	_, _ = fmt.Fprintf(deps.Stdout, "%s checklist: %d/%d\n", p.Name, done, total)
}

// RemoveChecklistItem deletes an item by 1-based position or ID prefix.
func RemoveChecklistItem(deps *cli.Deps, id, ref string) {
	p, err := deps.Services.Kanban.RemoveChecklistItem(id, ref)
	if err != nil {
		failKanban(deps, id, err)
		return
	}
	done, total := p.ChecklistProgress()
	_, _ = fmt.Fprintf(deps.Stdout, "Removed from %s (%d/%d)\n", p.Name, done, total)
}

// LabelCard adds or removes a label on a card.
func LabelCard(deps *cli.Deps, id, label string, remove bool) {
	var (
		p   *entry.Project
		err error
	)
	if remove {
		p, err = deps.Services.Kanban.RemoveLabel(id, label)
	} else {
		p, err = deps.Services.Kanban.AddLabel(id, label)
	}
	if err != nil {
		failKanban(deps, id, err)
		return
	}
	labels := "(none)"
	if len(p.Labels) > 0 {
		labels = strings.Join(p.Labels, ", ")
	}
	_, _ = fmt.Fprintf(deps.Stdout, "%s labels: %s\n", p.Name, labels)
}

func failKanban(deps *cli.Deps, id string, err error) {
	settings := deps.Services.Settings.Get()
	switch {
	case errors.Is(err, service.ErrEmptyName):
		fail(deps, "Card name cannot be empty", nil, "Usage: truflow board add <name>")
	case errors.Is(err, service.ErrUnknownColumn):
		fail(deps, "Unknown column", err, "Columns: "+strings.Join(settings.Columns(), ", "))
	case errors.Is(err, service.ErrUnknownLabel):
		hint := "Define labels with 'truflow settings label add <name>'"
		if len(settings.Labels) > 0 {
			hint = "Labels: " + strings.Join(settings.Labels, ", ")
		}
		fail(deps, "Unknown label", err, hint)
	case errors.Is(err, service.ErrInvalidGoal):
		fail(deps, "Invalid time goal", err, "Use a number of hours, e.g. --goal 10 or --goal 2.5")
	case errors.Is(err, service.ErrEmptyChecklistItem):
		fail(deps, "Checklist item cannot be empty", nil)
	case errors.Is(err, service.ErrUnknownItem):
		fail(deps, "Checklist item not found", err, fmt.Sprintf("Show item positions with 'truflow board show %s'", id))
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrAmbiguousID), errors.Is(err, service.ErrEmptyID):
		failLookup(deps, "card", id, err, "truflow board list")
	default:
		fail(deps, "Failed to update the board", err)
	}
}
