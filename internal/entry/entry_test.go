package entry

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimeLogEntry_JSONWireFormat(t *testing.T) {
	start := time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)
	e := TimeLogEntry{ID: "a", Bucket: ProjectRef("p1"), Start: start, End: &end}

	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	expected := `{"id":"a","bucket":"project:p1","start":"2024-01-15T09:00:00Z","end":"2024-01-15T10:30:00Z"}`
	if string(data) != expected {
		t.Errorf("Marshal = %s\nexpected %s", data, expected)
	}
}

func TestTimeLogEntry_OpenEntryOmitsEnd(t *testing.T) {
	e := TimeLogEntry{ID: "a", Bucket: Named("Email"), Start: time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)}

	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	expected := `{"id":"a","bucket":"Email","start":"2024-01-15T09:00:00Z"}`
	if string(data) != expected {
		t.Errorf("Marshal = %s, expected %s", data, expected)
	}
}

func TestTimeLogEntry_UnmarshalLenient(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantStart bool
		wantEnd   bool
		closed    bool
	}{
		{
			name:      "millisecond timestamps",
			input:     `{"id":"1","bucket":"Email","start":"2024-01-15T09:00:00.000Z","end":"2024-01-15T10:00:00.000Z"}`,
			wantStart: true, wantEnd: true, closed: true,
		},
		{
			name:      "missing end",
			input:     `{"id":"2","bucket":"Email","start":"2024-01-15T09:00:00Z"}`,
			wantStart: true,
		},
		{
			name:    "garbage start",
			input:   `{"id":"3","bucket":"Email","start":"yesterday","end":"2024-01-15T10:00:00Z"}`,
			wantEnd: true,
		},
		{
			name:      "garbage end",
			input:     `{"id":"4","bucket":"Email","start":"2024-01-15T09:00:00Z","end":"soon"}`,
			wantStart: true,
		},
		{
			name:  "missing everything",
			input: `{"id":"5"}`,
		},
		{
			name:      "numeric end",
			input:     `{"id":"6","bucket":"Email","start":"2024-01-15T09:00:00Z","end":12345}`,
			wantStart: true,
		},
		{
			name:    "null start",
			input:   `{"id":"7","bucket":"Email","start":null,"end":"2024-01-15T10:00:00Z"}`,
			wantEnd: true,
		},
		{
			name:  "numeric id and object start",
			input: `{"id":8,"bucket":"Email","start":{"at":"09:00"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e TimeLogEntry
			if err := json.Unmarshal([]byte(tt.input), &e); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			if (!e.Start.IsZero()) != tt.wantStart {
				t.Errorf("Start = %v, wantStart %v", e.Start, tt.wantStart)
			}
			if (e.End != nil) != tt.wantEnd {
				t.Errorf("End = %v, wantEnd %v", e.End, tt.wantEnd)
			}
			if e.Closed() != tt.closed {
				t.Errorf("Closed() = %v, expected %v", e.Closed(), tt.closed)
			}
		})
	}
}

func TestTimeLogEntry_DurationSeconds(t *testing.T) {
	start := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	at := func(d time.Duration) *time.Time {
		v := start.Add(d)
		return &v
	}

	tests := []struct {
		name     string
		end      *time.Time
		expected int
	}{
		{name: "open", end: nil, expected: 0},
		{name: "one hour", end: at(time.Hour), expected: 3600},
		{name: "rounds half up", end: at(1500 * time.Millisecond), expected: 2},
		{name: "rounds down", end: at(1499 * time.Millisecond), expected: 1},
		{name: "negative", end: at(-time.Minute), expected: -60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := TimeLogEntry{Start: start, End: tt.end}
			if got := e.DurationSeconds(); got != tt.expected {
				t.Errorf("DurationSeconds() = %d, expected %d", got, tt.expected)
			}
		})
	}
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		input    string
		expected Priority
		wantErr  bool
	}{
		{"H", PriorityHigh, false},
		{"m", PriorityMedium, false},
		{"low", PriorityLow, false},
		{"", PriorityNone, false},
		{"none", PriorityNone, false},
		{"urgent", PriorityNone, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePriority(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePriority(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("ParsePriority(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestPriority_Rank(t *testing.T) {
	if !(PriorityHigh.Rank() < PriorityMedium.Rank() &&
		PriorityMedium.Rank() < PriorityLow.Rank() &&
		PriorityLow.Rank() < PriorityNone.Rank()) {
		t.Error("expected H < M < L < none")
	}
	if Priority("X").Rank() != PriorityNone.Rank() {
		t.Error("unknown priority should rank with none")
	}
}

func TestProject_ChecklistProgress(t *testing.T) {
	p := Project{Checklist: []ChecklistItem{{Done: true}, {Done: false}, {Done: true}}}
	done, total := p.ChecklistProgress()
	if done != 2 || total != 3 {
		t.Errorf("ChecklistProgress() = %d/%d, expected 2/3", done, total)
	}
	if p.Bucket() != ProjectRef("") {
		t.Errorf("Bucket() = %q", p.Bucket())
	}
}

func TestTask_IsOverdue(t *testing.T) {
	due := "2024-01-10"
	tests := []struct {
		name     string
		task     Task
		expected bool
	}{
		{name: "past due", task: Task{DueDate: &due}, expected: true},
		{name: "done", task: Task{DueDate: &due, Done: true}, expected: false},
		{name: "no due date", task: Task{}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.IsOverdue("2024-01-15"); got != tt.expected {
				t.Errorf("IsOverdue() = %v, expected %v", got, tt.expected)
			}
		})
	}

	if (Task{DueDate: &due}).IsOverdue("2024-01-10") {
		t.Error("task due today is not overdue")
	}
}
