package views

import (
	"strings"
	"testing"
)

func TestRenderTimelineMarksCursorAndTasks(t *testing.T) {
	out := RenderTimeline([]SlotData{
		{Label: "8 AM"},
		{Label: "9 AM", Cursor: true, Tasks: []TaskData{
			{Name: "Pay bills", Category: "general", Time: "09:00", Reminder: true, Selected: true},
			{Name: "Stretch", Category: "personal", Time: "09:30", Completed: true},
		}},
	})
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected one line per task plus empty slot, got %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[1], "> ") || !strings.Contains(lines[1], "Pay bills") {
		t.Fatalf("expected cursor row with first task, got %q", lines[1])
	}
	if !strings.Contains(lines[2], "[x]") || !strings.Contains(lines[2], "Stretch") {
		t.Fatalf("expected completed task on continuation line, got %q", lines[2])
	}
}

func TestRenderTaskDetail(t *testing.T) {
	if out := RenderTaskDetail(nil); !strings.Contains(out, "no task") {
		t.Fatalf("unexpected empty detail: %q", out)
	}
	out := RenderTaskDetail(&TaskDetailData{Name: "Review", Category: "work", When: "Mon Feb 9 2026 14:00", Reminder: "none"})
	for _, want := range []string{"Review", "work", "14:00", "status: open", "reminder: none"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in detail:\n%s", want, out)
		}
	}
}

func TestRenderMarkdownFallsBackOnEmpty(t *testing.T) {
	if RenderMarkdown("   ", 40) != "" {
		t.Fatal("expected empty markdown to render empty")
	}
	if out := RenderMarkdown("**bold** text", 40); !strings.Contains(out, "bold") {
		t.Fatalf("expected rendered text, got %q", out)
	}
}

func TestCategoryStyleUnknownFallsBack(t *testing.T) {
	if CategoryStyle("nope").GetForeground() != CategoryStyle("general").GetForeground() {
		t.Fatal("expected unknown category to use the general color")
	}
}

func TestRenderAppIncludesSections(t *testing.T) {
	out := RenderApp(AppData{
		Header:     "hourline",
		WeekStrip:  RenderWeekStrip("Feb 2026", []WeekDayData{{Label: "Mon 9", Selected: true}, {Label: "Tue 10"}}),
		LeftPane:   "left",
		RightPane:  "right",
		StatusLine: "status: ok",
		Footer:     "q quit",
	})
	for _, want := range []string{"hourline", "Feb 2026", "Mon 9", "left", "right", "status: ok", "q quit"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in app view:\n%s", want, out)
		}
	}
}
