package pdf

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xolan/truflow/internal/entry"
	"github.com/xolan/truflow/internal/stats"
	"github.com/xolan/truflow/internal/timeutil"
)

func sampleGrid() stats.WeekGrid {
	window := timeutil.WeekAt(time.Date(2024, time.January, 17, 10, 0, 0, 0, time.Local), 0)
	start := window.Start.Add(9 * time.Hour)
	end := start.Add(90 * time.Minute)
	logs := []entry.TimeLogEntry{{ID: "1", Bucket: entry.Named("Email"), Start: start, End: &end}}
	return stats.ComputeWeekGrid(logs, window)
}

func TestWriteWeek(t *testing.T) {
	var buf bytes.Buffer
	err := WriteWeek(&buf, WeekReport{Title: "Weekly report", Grid: sampleGrid(), Labels: []string{"Email"}})
	if err != nil {
		t.Fatalf("WriteWeek() error = %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Error("output should start with a PDF header")
	}
	if buf.Len() < 500 {
		t.Errorf("output suspiciously small: %d bytes", buf.Len())
	}
}

func TestWriteWeek_Empty(t *testing.T) {
	window := timeutil.WeekAt(time.Now(), -1)
	var buf bytes.Buffer
	if err := WriteWeek(&buf, WeekReport{Title: "Weekly report", Grid: stats.ComputeWeekGrid(nil, window)}); err != nil {
		t.Fatalf("WriteWeek() error = %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Error("empty week should still produce a PDF")
	}
}

func TestSaveWeek(t *testing.T) {
	path := filepath.Join(t.TempDir(), "week.pdf")
	if err := SaveWeek(path, WeekReport{Title: "Weekly report", Grid: sampleGrid()}); err != nil {
		t.Fatalf("SaveWeek() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("expected a non-empty file")
	}

	if err := SaveWeek(filepath.Join(t.TempDir(), "missing", "week.pdf"), WeekReport{Grid: sampleGrid()}); err == nil {
		t.Error("expected error for missing directory")
	}
}
