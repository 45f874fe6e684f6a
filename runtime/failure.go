package runtime

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/marcusfrdk/click-extended-sub002/value"
)

// Failure is a user-facing error raised during binding resolution or
// validation. It aborts the current invocation only and is never retried.
type Failure struct {
	// Binding is the external (display) name of the offending binding, or
	// empty for cross-binding validation failures that name their members
	// in the message.
	Binding string
	// Value is the offending raw or intermediate value, when one exists.
	Value cty.Value
	// Message is the human-readable description.
	Message string
	// Detail is internal failure detail, shown only in verbose mode.
	Detail string
	// Verbose is set by the executor from invocation metadata.
	Verbose bool
}

// Error implements the error interface.
func (f *Failure) Error() string {
	msg := f.Message
	if f.Binding != "" {
		msg = fmt.Sprintf("%s: %s", f.Binding, msg)
	}
	if f.Value != cty.NilVal && !f.Value.IsNull() {
		msg = fmt.Sprintf("%s (got %q)", msg, value.GoString(f.Value))
	}
	if f.Verbose && f.Detail != "" {
		msg = fmt.Sprintf("%s\n  detail: %s", msg, f.Detail)
	}
	return msg
}

// NewFailure creates a failure for the given external binding name.
func NewFailure(binding, format string, args ...any) *Failure {
	return &Failure{Binding: binding, Message: fmt.Sprintf(format, args...)}
}

// ExitError carries a process exit code across the executor boundary.
// Resolution and validation failures convert to code 1.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface.
func (e *ExitError) Error() string { return e.Message }
