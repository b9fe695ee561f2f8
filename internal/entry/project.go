package entry

import (
	"fmt"
	"strings"
	"time"
)

// Priority is the H/M/L marker shared by kanban cards and to-do tasks.
type Priority string

const (
	PriorityHigh   Priority = "H"
	PriorityMedium Priority = "M"
	PriorityLow    Priority = "L"
	PriorityNone   Priority = ""
)

// Rank orders priorities H < M < L < none. Unknown values rank with none.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow, PriorityNone:
		return true
	}
	return false
}

// ChecklistItem is one line of a card checklist.
type ChecklistItem struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// Project is a kanban card. Its ID doubles as a time-tracking bucket via
// ProjectRef.
type Project struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Column      string          `json:"column"`
	Priority    Priority        `json:"priority"`
	Labels      []string        `json:"labels"`
	Checklist   []ChecklistItem `json:"checklist"`
	TimeGoal    float64         `json:"timeGoal"` // hours, 0 = none
	CreatedAt   time.Time       `json:"createdAt"`
}

// Bucket returns the tracking bucket for this project.
func (p Project) Bucket() Bucket {
	return ProjectRef(p.ID)
}

// ChecklistProgress returns done and total counts.
func (p Project) ChecklistProgress() (done, total int) {
	for _, item := range p.Checklist {
		if item.Done {
			done++
		}
	}
	return done, len(p.Checklist)
}

// HasLabel reports whether the card carries label.
func (p Project) HasLabel(label string) bool {
	for _, l := range p.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// ParsePriority accepts H, M, L (any case) or "" / "none".
func ParsePriority(s string) (Priority, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "H", "HIGH":
		return PriorityHigh, nil
	case "M", "MED", "MEDIUM":
		return PriorityMedium, nil
	case "L", "LOW":
		return PriorityLow, nil
	case "", "NONE":
		return PriorityNone, nil
	}
	return PriorityNone, fmt.Errorf("invalid priority %q (use H, M, L or none)", s)
}
