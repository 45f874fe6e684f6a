package tree

import (
	"errors"
	"fmt"
)

// Build-time errors are programmer errors: they are raised when a command
// is defined, before any invocation is possible, and must abort startup.
var (
	// ErrDanglingModifier marks a modifier directive declared without any
	// preceding binding able to claim it.
	ErrDanglingModifier = errors.New("modifier directive has no binding to attach to")
	// ErrDanglingDirective marks an anchored validation or grouping
	// directive declared without a binding above it.
	ErrDanglingDirective = errors.New("directive has no binding to attach to")
	// ErrDuplicateName marks two bindings, or a binding and a tag group,
	// sharing one name.
	ErrDuplicateName = errors.New("name already in use")
	// ErrInvalidName marks an empty or malformed binding name.
	ErrInvalidName = errors.New("invalid binding name")
	// ErrTaggedEnv marks an environment binding declaring tag membership,
	// which is not supported.
	ErrTaggedEnv = errors.New("environment bindings cannot be tagged")
	// ErrFinished marks a builder whose registration list was already
	// drained into a tree.
	ErrFinished = errors.New("builder already finished")
	// ErrNoHandler marks a command built without a body.
	ErrNoHandler = errors.New("command has no handler")
)

func buildErr(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), sentinel)
}
