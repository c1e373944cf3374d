package commands

// Result carries the user-facing outcome of a palette command.
type Result struct {
	Message string
}

// Handlers binds parsed palette commands to application actions. Any nil
// handler turns the matching command into a handler_missing error so the
// palette can report it instead of silently ignoring input.
type Handlers struct {
	Add      func(AddArgs) (Result, error)
	Complete func(CompleteArgs) (Result, error)
	Delete   func(DeleteArgs) (Result, error)
	Show     func(ShowArgs) (Result, error)
	Reset    func() (Result, error)
}

func Execute(cmd Command, h Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if h.Add == nil {
			return Result{}, missing(cmd.Type)
		}
		return h.Add(*cmd.Add)
	case TypeComplete:
		if h.Complete == nil {
			return Result{}, missing(cmd.Type)
		}
		return h.Complete(*cmd.Complete)
	case TypeDelete:
		if h.Delete == nil {
			return Result{}, missing(cmd.Type)
		}
		return h.Delete(*cmd.Delete)
	case TypeShow:
		if h.Show == nil {
			return Result{}, missing(cmd.Type)
		}
		return h.Show(*cmd.Show)
	case TypeReset:
		if h.Reset == nil {
			return Result{}, missing(cmd.Type)
		}
		return h.Reset()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: "unsupported command type: " + string(cmd.Type)}
	}
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: "no handler registered for " + string(t)}
}
