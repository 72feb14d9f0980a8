package dispatch

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownTool is returned for names without a route
	ErrUnknownTool = errors.New("unknown tool")

	// ErrMissingArgument is matched by *MissingArgumentError
	ErrMissingArgument = errors.New("missing argument")

	// ErrInvalidArgument is returned when arguments cannot be decoded or have the wrong JSON kind
	ErrInvalidArgument = errors.New("invalid argument")
)

// MissingArgumentError reports a required argument that was absent, null or empty
type MissingArgumentError struct {
	Tool     string
	Argument string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("%s: missing argument %q", e.Tool, e.Argument)
}

func (e *MissingArgumentError) Is(target error) bool {
	return target == ErrMissingArgument
}
