package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sandeepkv93/hourline/internal/model"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("HOURLINE_DB_PATH", filepath.Join(dir, "data", "hourline.db"))
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand("test")
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestTaskLifecycleThroughCommands(t *testing.T) {
	isolate(t)

	out, err := run(t, "add", "--day", "tomorrow", "--at", "09:00", "--category", "personal", "Pay", "bills")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	fields := strings.Fields(out)
	if len(fields) < 2 || fields[0] != "added" {
		t.Fatalf("unexpected add output: %q", out)
	}
	id := fields[1]

	out, err = run(t, "day", "tomorrow")
	if err != nil {
		t.Fatalf("day: %v", err)
	}
	if !strings.Contains(out, "9 AM") || !strings.Contains(out, "Pay bills") || !strings.Contains(out, "(reminder)") {
		t.Fatalf("expected task with reminder at 9 AM, got:\n%s", out)
	}

	out, err = run(t, "toggle", id)
	if err != nil || !strings.Contains(out, "is now done") {
		t.Fatalf("toggle: %v %q", err, out)
	}

	out, err = run(t, "week", "tomorrow")
	if err != nil {
		t.Fatalf("week: %v", err)
	}
	var selected string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, ">") {
			selected = line
		}
	}
	if !strings.Contains(selected, "open:0 done:1") {
		t.Fatalf("expected completed task counted on selected day, got:\n%s", out)
	}

	out, err = run(t, "rm", id)
	if err != nil || !strings.Contains(out, "deleted") {
		t.Fatalf("rm: %v %q", err, out)
	}
	out, err = run(t, "day", "tomorrow")
	if err != nil || !strings.Contains(out, "no tasks") {
		t.Fatalf("expected empty day after rm: %v %q", err, out)
	}
}

func TestToggleUnknownTask(t *testing.T) {
	isolate(t)
	_, err := run(t, "toggle", "missing")
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAddRejectsBadInput(t *testing.T) {
	isolate(t)
	if _, err := run(t, "add", "--at", "25:00", "late"); err == nil {
		t.Fatal("expected invalid time to fail")
	}
	if _, err := run(t, "add", "--category", "chores", "laundry"); !errors.Is(err, model.ErrInvalidCategory) {
		t.Fatalf("expected invalid category, got %v", err)
	}
	if _, err := run(t, "add", "--day", "someday", "later"); err == nil {
		t.Fatal("expected invalid day to fail")
	}
}

func TestConfigInitAndShow(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom", "config.yaml")

	out, err := run(t, "--config", path, "config", "init")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Fatalf("unexpected init output: %q", out)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if _, err := run(t, "--config", path, "config", "init"); err == nil {
		t.Fatal("expected init to refuse overwriting without --force")
	}

	out, err = run(t, "--config", path, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, key := range []string{"db_path:", "week_start: sunday", "reminder_timeout: 5s"} {
		if !strings.Contains(out, key) {
			t.Fatalf("expected %q in config show output:\n%s", key, out)
		}
	}
}
