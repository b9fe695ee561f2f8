package service

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xolan/truflow/internal/entry"
	"github.com/xolan/truflow/internal/filter"
	"github.com/xolan/truflow/internal/stats"
	"github.com/xolan/truflow/internal/store"
)

// Kanban-specific errors
var (
	ErrEmptyName          = errors.New("project name cannot be empty")
	ErrUnknownColumn      = errors.New("unknown kanban column")
	ErrUnknownLabel       = errors.New("label is not defined in settings")
	ErrInvalidGoal        = errors.New("time goal cannot be negative")
	ErrEmptyChecklistItem = errors.New("checklist item cannot be empty")
	ErrUnknownItem        = errors.New("no such checklist item")
)

// DefaultColumn is where new cards land.
const DefaultColumn = "queue"

// ProjectInput holds the editable fields of a card. Nil pointers leave the
// stored value unchanged on update; on add they take the defaults.
type ProjectInput struct {
	Name        *string
	Description *string
	Column      *string
	Priority    *entry.Priority
	Labels      *[]string
	Checklist   *[]string // item texts, add only
	TimeGoal    *float64  // hours
}

// ColumnCards is one column of the board.
type ColumnCards struct {
	Column string
	Cards  []entry.Project
}

// GoalProgress compares tracked time against a card's time goal.
type GoalProgress struct {
	TrackedSeconds int
	GoalSeconds    int
	Percent        int // 0-100
	Over           bool
}

// HasGoal reports whether the card has a time goal.
func (g GoalProgress) HasGoal() bool {
	return g.GoalSeconds > 0
}

// KanbanService manages projects on the board.
type KanbanService struct {
	store *store.Store
	clock *clock
}

// NewKanbanService creates a new KanbanService
func NewKanbanService(st *store.Store, clk *clock) *KanbanService {
	return &KanbanService{store: st, clock: clk}
}

// List returns cards matching f in stored order.
func (s *KanbanService) List(f filter.CardFilter) []entry.Project {
	return filter.Cards(s.store.Projects(), f)
}

// ByColumn groups cards by the configured columns, in column order.
// Cards in a column no longer configured are appended under their own column.
func (s *KanbanService) ByColumn(f filter.CardFilter) []ColumnCards {
	columns := s.store.Settings().Columns()
	index := make(map[string]int, len(columns))
	board := make([]ColumnCards, len(columns))
	for i, c := range columns {
		index[c] = i
		board[i] = ColumnCards{Column: c, Cards: []entry.Project{}}
	}

	for _, p := range s.List(f) {
		i, ok := index[p.Column]
		if !ok {
			i = len(board)
			index[p.Column] = i
			board = append(board, ColumnCards{Column: p.Column})
		}
		board[i].Cards = append(board[i].Cards, p)
	}
	return board
}

// Get returns the card with the given ID or unique prefix.
func (s *KanbanService) Get(id string) (*entry.Project, error) {
	projects := s.store.Projects()
	idx, err := findProject(projects, id)
	if err != nil {
		return nil, err
	}
	p := projects[idx]
	return &p, nil
}

// Add creates a card. The name is required; column defaults to queue and
// priority to L.
func (s *KanbanService) Add(in ProjectInput) (*entry.Project, error) {
	p := entry.Project{
		ID:        newID(),
		Column:    DefaultColumn,
		Priority:  entry.PriorityLow,
		Labels:    []string{},
		Checklist: []entry.ChecklistItem{},
		CreatedAt: s.clock.Now().UTC(),
	}
	if in.Name == nil {
		return nil, ErrEmptyName
	}
	if err := s.apply(&p, in); err != nil {
		return nil, err
	}
	if in.Checklist != nil {
		for _, text := range *in.Checklist {
			if text = strings.TrimSpace(text); text != "" {
				p.Checklist = append(p.Checklist, entry.ChecklistItem{ID: newID(), Text: text})
			}
		}
	}

	projects := append(s.store.Projects(), p)
	if err := s.store.SaveProjects(projects); err != nil {
		return nil, fmt.Errorf("failed to save projects: %w", err)
	}
	return &p, nil
}

// Update changes the fields set in in.
func (s *KanbanService) Update(id string, in ProjectInput) (*entry.Project, error) {
	return s.modify(id, func(p *entry.Project) error {
		return s.apply(p, in)
	})
}

// Delete removes a card. Time logged against it keeps its project:<id> bucket.
func (s *KanbanService) Delete(id string) (*entry.Project, error) {
	projects := s.store.Projects()
	idx, err := findProject(projects, id)
	if err != nil {
		return nil, err
	}

	deleted := projects[idx]
	projects = append(projects[:idx], projects[idx+1:]...)
	if err := s.store.SaveProjects(projects); err != nil {
		return nil, fmt.Errorf("failed to save projects: %w", err)
	}
	return &deleted, nil
}

// Move puts a card in column. Nothing is written when the column is unchanged.
func (s *KanbanService) Move(id, column string) (*entry.Project, bool, error) {
	column = strings.TrimSpace(column)
	if !s.store.Settings().HasColumn(column) {
		return nil, false, fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}

	projects := s.store.Projects()
	idx, err := findProject(projects, id)
	if err != nil {
		return nil, false, err
	}
	if projects[idx].Column == column {
		p := projects[idx]
		return &p, false, nil
	}

	projects[idx].Column = column
	if err := s.store.SaveProjects(projects); err != nil {
		return nil, false, fmt.Errorf("failed to save projects: %w", err)
	}
	p := projects[idx]
	return &p, true, nil
}

// AddChecklistItem appends an unchecked item.
func (s *KanbanService) AddChecklistItem(id, text string) (*entry.Project, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyChecklistItem
	}
	return s.modify(id, func(p *entry.Project) error {
		p.Checklist = append(p.Checklist, entry.ChecklistItem{ID: newID(), Text: text})
		return nil
	})
}

// ToggleChecklistItem flips an item. ref is a 1-based position or an item ID prefix.
func (s *KanbanService) ToggleChecklistItem(id, ref string) (*entry.Project, error) {
	return s.modify(id, func(p *entry.Project) error {
		i, err := findChecklistItem(p.Checklist, ref)
		if err != nil {
			return err
		}
		p.Checklist[i].Done = !p.Checklist[i].Done
		return nil
	})
}

// RemoveChecklistItem deletes an item. ref is a 1-based position or an item ID prefix.
func (s *KanbanService) RemoveChecklistItem(id, ref string) (*entry.Project, error) {
	return s.modify(id, func(p *entry.Project) error {
		i, err := findChecklistItem(p.Checklist, ref)
		if err != nil {
			return err
		}
		p.Checklist = append(p.Checklist[:i], p.Checklist[i+1:]...)
		return nil
	})
}

// AddLabel tags a card with a settings label. Adding a present label is a no-op.
func (s *KanbanService) AddLabel(id, label string) (*entry.Project, error) {
	label = strings.TrimSpace(label)
	if !s.store.Settings().HasLabel(label) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLabel, label)
	}
	return s.modify(id, func(p *entry.Project) error {
		p.Labels, _ = entry.AddUnique(p.Labels, label)
		return nil
	})
}

// RemoveLabel untags a card.
func (s *KanbanService) RemoveLabel(id, label string) (*entry.Project, error) {
	return s.modify(id, func(p *entry.Project) error {
		p.Labels, _ = entry.Remove(p.Labels, strings.TrimSpace(label))
		return nil
	})
}

// Goal computes time-goal progress for p from all logged time.
func (s *KanbanService) Goal(p entry.Project) GoalProgress {
	return goalProgress(p, stats.ProjectTotal(s.store.TimeLogs(), p.ID))
}

func goalProgress(p entry.Project, tracked int) GoalProgress {
	g := GoalProgress{TrackedSeconds: tracked}
	if p.TimeGoal <= 0 {
		return g
	}
	g.GoalSeconds = int(math.Round(p.TimeGoal * 3600))
	g.Percent = min(100, int(math.Round(float64(tracked)/float64(g.GoalSeconds)*100)))
	g.Over = tracked >= g.GoalSeconds
	return g
}

// ChecklistPercent returns rounded checklist completion, 0 when empty.
func ChecklistPercent(p entry.Project) int {
	done, total := p.ChecklistProgress()
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}

func (s *KanbanService) modify(id string, fn func(*entry.Project) error) (*entry.Project, error) {
	projects := s.store.Projects()
	idx, err := findProject(projects, id)
	if err != nil {
		return nil, err
	}
	if err := fn(&projects[idx]); err != nil {
		return nil, err
	}
	if err := s.store.SaveProjects(projects); err != nil {
		return nil, fmt.Errorf("failed to save projects: %w", err)
	}
	p := projects[idx]
	return &p, nil
}

func (s *KanbanService) apply(p *entry.Project, in ProjectInput) error {
	settings := s.store.Settings()

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return ErrEmptyName
		}
		p.Name = name
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.Column != nil {
		column := strings.TrimSpace(*in.Column)
		if !settings.HasColumn(column) {
			return fmt.Errorf("%w: %q", ErrUnknownColumn, column)
		}
		p.Column = column
	}
	if in.Priority != nil {
		if !in.Priority.Valid() {
			return fmt.Errorf("invalid priority %q", *in.Priority)
		}
		p.Priority = *in.Priority
	}
	if in.Labels != nil {
		labels := []string{}
		for _, label := range *in.Labels {
			label = strings.TrimSpace(label)
			if !settings.HasLabel(label) {
				return fmt.Errorf("%w: %q", ErrUnknownLabel, label)
			}
			labels, _ = entry.AddUnique(labels, label)
		}
		p.Labels = labels
	}
	if in.TimeGoal != nil {
		if *in.TimeGoal < 0 || math.IsNaN(*in.TimeGoal) {
			return ErrInvalidGoal
		}
		p.TimeGoal = *in.TimeGoal
	}
	return nil
}

func findProject(projects []entry.Project, id string) (int, error) {
	idx, err := findIndex(projects, id, func(p entry.Project) string { return p.ID })
	if err != nil {
		return -1, fmt.Errorf("project: %w", err)
	}
	return idx, nil
}

func findChecklistItem(items []entry.ChecklistItem, ref string) (int, error) {
	if pos, err := strconv.Atoi(strings.TrimSpace(ref)); err == nil {
		if pos < 1 || pos > len(items) {
			return -1, fmt.Errorf("%w: position %d of %d", ErrUnknownItem, pos, len(items))
		}
		return pos - 1, nil
	}
	idx, err := findIndex(items, ref, func(i entry.ChecklistItem) string { return i.ID })
	if err != nil {
		return -1, fmt.Errorf("%w: %w", ErrUnknownItem, err)
	}
	return idx, nil
}
