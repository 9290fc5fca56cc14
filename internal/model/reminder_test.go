package model

import (
	"testing"
	"time"
)

func TestReminderValidateSuccess(t *testing.T) {
	rem := Reminder{
		TaskID: "task-1",
		FireAt: time.Date(2026, 2, 9, 13, 0, 0, 0, time.UTC),
	}
	if err := rem.Validate(); err != nil {
		t.Fatalf("expected valid reminder, got error: %v", err)
	}
}

func TestReminderValidateRequiresFields(t *testing.T) {
	if err := (Reminder{FireAt: time.Now()}).Validate(); err == nil {
		t.Fatal("expected error for missing task id")
	}
	if err := (Reminder{TaskID: "task-1"}).Validate(); err == nil {
		t.Fatal("expected error for missing fire time")
	}
}
