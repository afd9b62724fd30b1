package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/timeboxd/internal/model"
)

type Type string

const (
	TypeAdd        Type = "add"
	TypeMove       Type = "move"
	TypeBacklog    Type = "backlog"
	TypeStart      Type = "start"
	TypeStop       Type = "stop"
	TypeComplete   Type = "complete"
	TypeDelete     Type = "delete"
	TypeRename     Type = "rename"
	TypeRetime     Type = "retime"
	TypeUntemplate Type = "untemplate"
	TypeClear      Type = "clear"
	TypeTheme      Type = "theme"
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

// AddArgs holds a parsed add command. At schedules a plain task right away;
// on a recurring task it becomes the template's recurrence time.
type AddArgs struct {
	Title      string
	Duration   int
	Recurrence model.Recurrence
	At         *model.Slot
}

type TargetArgs struct {
	Target string
}

type MoveArgs struct {
	Target string
	Slot   model.Slot
}

type RenameArgs struct {
	Target string
	Title  string
}

type RetimeArgs struct {
	Target  string
	Minutes int
}

type ThemeArgs struct {
	Theme model.Theme
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Target *TargetArgs
	Move   *MoveArgs
	Rename *RenameArgs
	Retime *RetimeArgs
	Theme  *ThemeArgs
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
	head := Type(strings.ToLower(parts[0]))
	args := parts[1:]

	switch head {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeMove:
		return parseMove(input, args)
	case TypeBacklog, TypeStart, TypeComplete, TypeDelete, TypeUntemplate:
		return parseTarget(input, head, args)
	case TypeStop, TypeClear:
		if len(args) != 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s takes no arguments", head)}
		}
		return Command{Type: head, Raw: input}, nil
	case TypeRename:
		return parseRename(input, args)
	case TypeRetime:
		return parseRetime(input, args)
	case TypeTheme:
		return parseTheme(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// parseAdd reads `add <title> [for <min>] [daily|weekdays|weekly] [at HH:MM]`.
// Modifiers are recognised only once the title has at least one word, so
// "daily standup" is a title and "standup daily" recurs.
func parseAdd(raw string, args []string) (Command, error) {
	out := AddArgs{Duration: model.DefaultDuration, Recurrence: model.RecurrenceNone}
	title := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		word := strings.ToLower(args[i])
		if len(title) == 0 {
			title = append(title, args[i])
			continue
		}
		switch {
		case word == "for" && i+1 < len(args):
			if minutes, ok := parseMinutes(args[i+1]); ok {
				out.Duration = minutes
				i++
				continue
			}
		case word == "at" && i+1 < len(args):
			if slot, err := model.ParseSlot(args[i+1]); err == nil {
				out.At = model.SlotPtr(slot)
				i++
				continue
			}
		default:
			if r, err := model.ParseRecurrence(word); err == nil && r.IsRecurring() {
				out.Recurrence = r
				continue
			}
		}
		title = append(title, args[i])
	}
	out.Title = strings.TrimSpace(strings.Join(title, " "))
	if out.Title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &out}, nil
}

func parseTarget(raw string, typ Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a task id", typ)}
	}
	return Command{Type: typ, Raw: raw, Target: &TargetArgs{Target: args[0]}}, nil
}

func parseMove(raw string, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "move requires task id and HH:MM"}
	}
	slot, err := model.ParseSlot(args[1])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
	}
	return Command{Type: TypeMove, Raw: raw, Move: &MoveArgs{Target: args[0], Slot: slot}}, nil
}

func parseRename(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "rename requires task id and title"}
	}
	return Command{Type: TypeRename, Raw: raw, Rename: &RenameArgs{Target: args[0], Title: strings.Join(args[1:], " ")}}, nil
}

func parseRetime(raw string, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "retime requires task id and minutes"}
	}
	minutes, ok := parseMinutes(args[1])
	if !ok {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid minutes: %s", args[1])}
	}
	return Command{Type: TypeRetime, Raw: raw, Retime: &RetimeArgs{Target: args[0], Minutes: minutes}}, nil
}

func parseTheme(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "theme requires light, dark or system"}
	}
	theme, err := model.ParseTheme(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
	}
	return Command{Type: TypeTheme, Raw: raw, Theme: &ThemeArgs{Theme: theme}}, nil
}

// parseMinutes accepts "45", "45m" and "45min".
func parseMinutes(raw string) (int, bool) {
	value := strings.TrimSuffix(strings.TrimSuffix(strings.ToLower(raw), "min"), "m")
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
