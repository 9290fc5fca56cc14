package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/hourline/internal/model"
)

type Type string

const (
	TypeAdd  Type = "add"
	TypeDone Type = "done"
	TypeRm   Type = "rm"
	TypeGoto Type = "goto"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// AddArgs places a task on the selected day at Hour:Minute.
type AddArgs struct {
	Hour     int
	Minute   int
	Category model.Category
	Name     string
}

// At returns the task time on day, in day's location.
func (a AddArgs) At(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, a.Hour, a.Minute, 0, 0, day.Location())
}

// IndexArgs refers to the n-th task (1-based) of the selected hour.
type IndexArgs struct {
	Index int
}

type GotoArgs struct {
	Target string
}

const dateLayout = "2006-01-02"

// Resolve turns the target into a day relative to today.
func (g GotoArgs) Resolve(today time.Time) (time.Time, error) {
	y, m, d := today.Date()
	base := time.Date(y, m, d, 0, 0, 0, 0, today.Location())
	switch g.Target {
	case "today":
		return base, nil
	case "tomorrow":
		return base.AddDate(0, 0, 1), nil
	case "yesterday":
		return base.AddDate(0, 0, -1), nil
	}
	day, err := time.ParseInLocation(dateLayout, g.Target, today.Location())
	if err != nil {
		return time.Time{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("goto expects YYYY-MM-DD, today, tomorrow or yesterday, got %q", g.Target)}
	}
	return day, nil
}

type Command struct {
	Type Type
	Raw  string
	Add  *AddArgs
	Done *IndexArgs
	Rm   *IndexArgs
	Goto *GotoArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeDone:
		idx, err := parseIndex(head, args)
		if err != nil {
			return Command{}, err
		}
		return Command{Type: TypeDone, Raw: input, Done: &idx}, nil
	case TypeRm:
		idx, err := parseIndex(head, args)
		if err != nil {
			return Command{}, err
		}
		return Command{Type: TypeRm, Raw: input, Rm: &idx}, nil
	case TypeGoto:
		return parseGoto(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a time and a name"}
	}
	hour, minute, err := ParseClock(args[0])
	if err != nil {
		return Command{}, err
	}
	rest := args[1:]
	category := model.CategoryGeneral
	if strings.HasPrefix(rest[0], "#") {
		category, err = model.ParseCategory(strings.TrimPrefix(rest[0], "#"))
		if err != nil {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
		}
		rest = rest[1:]
	}
	name := strings.TrimSpace(strings.Join(rest, " "))
	if name == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a name"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Hour: hour, Minute: minute, Category: category, Name: name}}, nil
}

// ParseClock reads HH or HH:MM in 24 hour form.
func ParseClock(s string) (int, int, error) {
	hourPart, minutePart, hasMinute := strings.Cut(s, ":")
	hour, err := strconv.Atoi(hourPart)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid hour %q", s)}
	}
	minute := 0
	if hasMinute {
		minute, err = strconv.Atoi(minutePart)
		if err != nil || len(minutePart) != 2 || minute < 0 || minute > 59 {
			return 0, 0, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid minute %q", s)}
		}
	}
	return hour, minute, nil
}

func parseIndex(head string, args []string) (IndexArgs, error) {
	if len(args) != 1 {
		return IndexArgs{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a task number", head)}
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return IndexArgs{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s: invalid task number %q", head, args[0])}
	}
	return IndexArgs{Index: n}, nil
}

func parseGoto(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "goto requires a date"}
	}
	target := strings.ToLower(args[0])
	g := GotoArgs{Target: target}
	if _, err := g.Resolve(time.Now()); err != nil {
		return Command{}, err
	}
	return Command{Type: TypeGoto, Raw: raw, Goto: &g}, nil
}
