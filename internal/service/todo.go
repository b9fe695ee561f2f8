package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/xolan/truflow/internal/entry"
	"github.com/xolan/truflow/internal/store"
	"github.com/xolan/truflow/internal/timeutil"
)

// ErrEmptyText is returned when a task has no text.
var ErrEmptyText = errors.New("task text cannot be empty")

// TaskInput holds the editable fields of a task. Nil pointers leave the
// stored value alone. An empty Due or Notes clears the field.
type TaskInput struct {
	Text     *string
	Priority *entry.Priority
	Due      *string
	Notes    *string
}

// Categories splits tasks for display.
type Categories struct {
	Overdue []entry.Task
	Active  []entry.Task
	Done    []entry.Task
}

// TodoService manages the to-do list.
type TodoService struct {
	store *store.Store
	clock *clock
}

// NewTodoService creates a new TodoService
func NewTodoService(st *store.Store, clk *clock) *TodoService {
	return &TodoService{store: st, clock: clk}
}

// Today returns the local date used for overdue checks.
func (s *TodoService) Today() string {
	return timeutil.DateKey(s.clock.Now())
}

// List returns every task in stored order.
func (s *TodoService) List() []entry.Task {
	return s.store.Tasks()
}

// Categorized returns the stored tasks split and sorted for display.
func (s *TodoService) Categorized() Categories {
	return Categorize(s.store.Tasks(), s.Today())
}

// Add appends an open task created today. due may be empty.
func (s *TodoService) Add(text string, priority entry.Priority, due string) (*entry.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}
	if !priority.Valid() {
		return nil, fmt.Errorf("invalid priority %q", priority)
	}
	dueDate, err := normalizeDue(due)
	if err != nil {
		return nil, err
	}

	task := entry.Task{
		ID:          newID(),
		Text:        text,
		Priority:    priority,
		DueDate:     dueDate,
		CreatedDate: s.Today(),
	}
	tasks := append(s.store.Tasks(), task)
	if err := s.store.SaveTasks(tasks); err != nil {
		return nil, fmt.Errorf("failed to save tasks: %w", err)
	}
	return &task, nil
}

// SetDone marks a task done or open.
func (s *TodoService) SetDone(id string, done bool) (*entry.Task, error) {
	return s.modify(id, func(t *entry.Task) error {
		t.Done = done
		return nil
	})
}

// Edit changes the fields set in in.
func (s *TodoService) Edit(id string, in TaskInput) (*entry.Task, error) {
	return s.modify(id, func(t *entry.Task) error {
		if in.Text != nil {
			text := strings.TrimSpace(*in.Text)
			if text == "" {
				return ErrEmptyText
			}
			t.Text = text
		}
		if in.Priority != nil {
			if !in.Priority.Valid() {
				return fmt.Errorf("invalid priority %q", *in.Priority)
			}
			t.Priority = *in.Priority
		}
		if in.Due != nil {
			due, err := normalizeDue(*in.Due)
			if err != nil {
				return err
			}
			t.DueDate = due
		}
		if in.Notes != nil {
			t.Notes = nil
			if notes := strings.TrimSpace(*in.Notes); notes != "" {
				t.Notes = &notes
			}
		}
		return nil
	})
}

// Delete removes a task.
func (s *TodoService) Delete(id string) (*entry.Task, error) {
	tasks := s.store.Tasks()
	idx, err := findTask(tasks, id)
	if err != nil {
		return nil, err
	}

	deleted := tasks[idx]
	tasks = append(tasks[:idx], tasks[idx+1:]...)
	if err := s.store.SaveTasks(tasks); err != nil {
		return nil, fmt.Errorf("failed to save tasks: %w", err)
	}
	return &deleted, nil
}

// ClearCompleted removes every done task and returns how many were removed.
func (s *TodoService) ClearCompleted() (int, error) {
	tasks := s.store.Tasks()
	kept := make([]entry.Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.Done {
			kept = append(kept, t)
		}
	}

	removed := len(tasks) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	if err := s.store.SaveTasks(kept); err != nil {
		return 0, fmt.Errorf("failed to save tasks: %w", err)
	}
	return removed, nil
}

// Categorize splits tasks into overdue (open, due before today), active
// (other open tasks) and done. Active tasks are sorted with SortTasks and
// overdue tasks by due date; done tasks keep stored order.
func Categorize(tasks []entry.Task, today string) Categories {
	c := Categories{Overdue: []entry.Task{}, Active: []entry.Task{}, Done: []entry.Task{}}
	for _, t := range tasks {
		switch {
		case t.Done:
			c.Done = append(c.Done, t)
		case t.IsOverdue(today):
			c.Overdue = append(c.Overdue, t)
		default:
			c.Active = append(c.Active, t)
		}
	}

	c.Active = SortTasks(c.Active)
	sort.SliceStable(c.Overdue, func(i, j int) bool {
		return c.Overdue[i].Due() < c.Overdue[j].Due()
	})
	return c
}

// SortTasks orders by priority H, M, L, none, then by due date with dated
// tasks first. The input is not modified.
func SortTasks(tasks []entry.Task) []entry.Task {
	sorted := append([]entry.Task(nil), tasks...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Priority.Rank() != b.Priority.Rank() {
			return a.Priority.Rank() < b.Priority.Rank()
		}
		switch {
		case a.Due() != "" && b.Due() != "":
			return a.Due() < b.Due()
		case a.Due() != "":
			return true
		default:
			return false
		}
	})
	return sorted
}

func (s *TodoService) modify(id string, fn func(*entry.Task) error) (*entry.Task, error) {
	tasks := s.store.Tasks()
	idx, err := findTask(tasks, id)
	if err != nil {
		return nil, err
	}
	if err := fn(&tasks[idx]); err != nil {
		return nil, err
	}
	if err := s.store.SaveTasks(tasks); err != nil {
		return nil, fmt.Errorf("failed to save tasks: %w", err)
	}
	t := tasks[idx]
	return &t, nil
}

func findTask(tasks []entry.Task, id string) (int, error) {
	idx, err := findIndex(tasks, id, func(t entry.Task) string { return t.ID })
	if err != nil {
		return -1, fmt.Errorf("task: %w", err)
	}
	return idx, nil
}

// normalizeDue parses a due date into YYYY-MM-DD, or nil for "".
func normalizeDue(due string) (*string, error) {
	due = strings.TrimSpace(due)
	if due == "" {
		return nil, nil
	}
	day, err := timeutil.ParseDate(due)
	if err != nil {
		return nil, err
	}
	key := timeutil.DateKey(day)
	return &key, nil
}
