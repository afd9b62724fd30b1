package commands

import "fmt"

type Result struct {
	Message string
	// TaskID is set when the command created a task.
	TaskID string
}

type Handlers struct {
	Add        func(AddArgs) (Result, error)
	Move       func(MoveArgs) (Result, error)
	Backlog    func(TargetArgs) (Result, error)
	Start      func(TargetArgs) (Result, error)
	Stop       func() (Result, error)
	Complete   func(TargetArgs) (Result, error)
	Delete     func(TargetArgs) (Result, error)
	Rename     func(RenameArgs) (Result, error)
	Retime     func(RetimeArgs) (Result, error)
	Untemplate func(TargetArgs) (Result, error)
	Clear      func() (Result, error)
	Theme      func(ThemeArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return missing(cmd.Type)
		}
		return handlers.Add(*cmd.Add)
	case TypeMove:
		if handlers.Move == nil {
			return missing(cmd.Type)
		}
		return handlers.Move(*cmd.Move)
	case TypeBacklog, TypeStart, TypeComplete, TypeDelete, TypeUntemplate:
		h := targetHandler(cmd.Type, handlers)
		if h == nil {
			return missing(cmd.Type)
		}
		return h(*cmd.Target)
	case TypeStop:
		if handlers.Stop == nil {
			return missing(cmd.Type)
		}
		return handlers.Stop()
	case TypeClear:
		if handlers.Clear == nil {
			return missing(cmd.Type)
		}
		return handlers.Clear()
	case TypeRename:
		if handlers.Rename == nil {
			return missing(cmd.Type)
		}
		return handlers.Rename(*cmd.Rename)
	case TypeRetime:
		if handlers.Retime == nil {
			return missing(cmd.Type)
		}
		return handlers.Retime(*cmd.Retime)
	case TypeTheme:
		if handlers.Theme == nil {
			return missing(cmd.Type)
		}
		return handlers.Theme(*cmd.Theme)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func targetHandler(t Type, h Handlers) func(TargetArgs) (Result, error) {
	switch t {
	case TypeBacklog:
		return h.Backlog
	case TypeStart:
		return h.Start
	case TypeComplete:
		return h.Complete
	case TypeDelete:
		return h.Delete
	case TypeUntemplate:
		return h.Untemplate
	}
	return nil
}

func missing(t Type) (Result, error) {
	return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}
