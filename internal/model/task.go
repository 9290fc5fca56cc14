package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrValidation      = errors.New("model: invalid task")
	ErrNotFound        = errors.New("model: task not found")
	ErrInvalidCategory = errors.New("model: invalid task category")
)

// ValidationError reports malformed input to a task mutation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("model: invalid task %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError reports an operation on an unknown task id.
type NotFoundError struct {
	TaskID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("model: task %q not found", e.TaskID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

type Category string

const (
	CategoryGeneral   Category = "general"
	CategoryPersonal  Category = "personal"
	CategoryWork      Category = "work"
	CategoryBug       Category = "bug"
	CategoryIdea      Category = "idea"
	CategoryChallenge Category = "challenge"
	CategoryCoding    Category = "coding"
)

func Categories() []Category {
	return []Category{
		CategoryGeneral,
		CategoryPersonal,
		CategoryWork,
		CategoryBug,
		CategoryIdea,
		CategoryChallenge,
		CategoryCoding,
	}
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryGeneral, CategoryPersonal, CategoryWork, CategoryBug, CategoryIdea, CategoryChallenge, CategoryCoding:
		return true
	default:
		return false
	}
}

// ParseCategory is case-insensitive; an empty string means general.
func ParseCategory(raw string) (Category, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return CategoryGeneral, nil
	}
	c := Category(normalized)
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, raw)
	}
	return c, nil
}

type Task struct {
	ID          string
	Name        string
	Description string
	Category    Category
	DateAdded   time.Time
	IsCompleted bool
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if t.DateAdded.IsZero() {
		return &ValidationError{Field: "date_added", Message: "date_added is required"}
	}
	if t.Category != "" && !t.Category.IsValid() {
		return &ValidationError{Field: "category", Message: fmt.Sprintf("unknown category %q", t.Category)}
	}
	return nil
}

// Slot returns the calendar day (midnight) and hour of DateAdded in loc.
// Sub-hour components are truncated.
func (t Task) Slot(loc *time.Location) (time.Time, int) {
	at := t.DateAdded.In(loc)
	y, m, d := at.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc), at.Hour()
}

// OccursIn reports whether DateAdded is on day's calendar date at the given hour,
// evaluated in day's location.
func (t Task) OccursIn(day time.Time, hour int) bool {
	at := t.DateAdded.In(day.Location())
	if at.Hour() != hour {
		return false
	}
	y1, m1, d1 := at.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func (t Task) RequiresReminder(now time.Time) bool {
	return !t.IsCompleted && t.DateAdded.After(now)
}
