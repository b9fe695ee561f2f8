package entry

// Task is a to-do list item. DueDate and CreatedDate are local calendar
// dates in YYYY-MM-DD form so they compare lexically.
type Task struct {
	ID          string   `json:"id"`
	Text        string   `json:"text"`
	Priority    Priority `json:"priority"`
	DueDate     *string  `json:"dueDate"`
	Done        bool     `json:"done"`
	CreatedDate string   `json:"createdDate"`
	Notes       *string  `json:"notes,omitempty"`
}

// Due returns the due date or "".
func (t Task) Due() string {
	if t.DueDate == nil {
		return ""
	}
	return *t.DueDate
}

// IsOverdue reports whether an open task is due before today.
func (t Task) IsOverdue(today string) bool {
	return !t.Done && t.Due() != "" && t.Due() < today
}
