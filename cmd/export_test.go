package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestExportCmd_Stdout(t *testing.T) {
	env := setupCmdEnv(t)
	env.mustRun(t, "todo", "add", "Ship", "release")

	out := env.mustRun(t, "export")

	var snap map[string]json.RawMessage
	if err := json.Unmarshal([]byte(out), &snap); err != nil {
		t.Fatalf("export output is not JSON: %v\n%s", err, out)
	}
	for _, key := range []string{"projects", "tasks", "timeLogs", "settings"} {
		if _, ok := snap[key]; !ok {
			t.Errorf("expected %q in snapshot", key)
		}
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	env := setupCmdEnv(t)
	env.mustRun(t, "board", "add", "Website")
	env.mustRun(t, "todo", "add", "Ship", "release")
	logSession(t, env, "Email", time.Hour)
	path := filepath.Join(t.TempDir(), "snapshot.json")

	out := env.mustRun(t, "export", path)
	expectContains(t, out, "Exported 1 project, 1 task and 1 time log to "+path)

	env.mustRun(t, "clear", "--yes")
	if tasks := env.services(t).Todo.List(); len(tasks) != 0 {
		t.Fatalf("expected no tasks after clear, got %d", len(tasks))
	}

	out = env.mustRun(t, "import", path, "-y")
	expectContains(t, out, "Imported 1 project, 1 task and 1 time log")

	s := env.services(t)
	if len(s.Todo.List()) != 1 || len(s.Store.TimeLogs()) != 1 {
		t.Error("import did not bring the data back")
	}
}

func TestImportCmd_Confirmation(t *testing.T) {
	env := setupCmdEnv(t)
	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := os.WriteFile(path, []byte(`{"tasks":[]}`), 0644); err != nil {
		t.Fatal(err)
	}

	env.stdin = "n\n"
	out := env.mustRun(t, "import", path)
	expectContains(t, out, "Import cancelled")

	env.stdin = "y\n"
	out = env.mustRun(t, "import", path)
	expectContains(t, out, "Imported 0 projects, 0 tasks and 0 time logs")
}

func TestImportCmd_Stdin(t *testing.T) {
	env := setupCmdEnv(t)
	env.stdin = `{"tasks":[{"id":"t1","text":"From stdin","priority":"","dueDate":null,"done":false,"createdDate":"2024-01-17"}]}`

	out := env.mustRun(t, "import", "-")

	expectContains(t, out, "Imported 0 projects, 1 task and 0 time logs")
}

func TestImportCmd_BadFile(t *testing.T) {
	env := setupCmdEnv(t)
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}

	env.expectFailure(t, "Failed to import data", "import", path, "--yes")
	env.expectFailure(t, "Failed to open import file", "import", filepath.Join(t.TempDir(), "missing.json"), "--yes")
}

func TestClearCmd_Cancelled(t *testing.T) {
	env := setupCmdEnv(t)
	env.mustRun(t, "todo", "add", "Keep", "me")

	env.stdin = "\n"
	out := env.mustRun(t, "clear")

	expectContains(t, out, "Clear cancelled")
	if tasks := env.services(t).Todo.List(); len(tasks) != 1 {
		t.Errorf("expected the task to survive, got %d tasks", len(tasks))
	}
}

func TestRestoreCmd(t *testing.T) {
	env := setupCmdEnv(t)
	env.mustRun(t, "todo", "add", "Keep", "me")
	env.mustRun(t, "clear", "--yes")

	out := env.mustRun(t, "restore", "tasks")

	expectContains(t, out, "(most recent)", "Restored tasks from backup #1")
	if tasks := env.services(t).Todo.List(); len(tasks) != 1 || tasks[0].Text != "Keep me" {
		t.Errorf("expected the task back, got %+v", tasks)
	}
}

func TestRestoreCmd_Errors(t *testing.T) {
	env := setupCmdEnv(t)

	env.expectFailure(t, "Invalid backup number 'two'", "restore", "tasks", "two")

	if err := env.run(t, "restore", "projects"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if env.exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", env.exitCode)
	}
	expectContains(t, env.stdout.String(), "No backups available for projects")

	env.mustRun(t, "todo", "add", "Keep", "me")
	env.mustRun(t, "clear", "--yes")
	env.expectFailure(t, "Backup number must be between 1 and 3", "restore", "tasks", "9")
}
