package node

import (
	"context"

	"github.com/zclconf/go-cty/cty"
)

// Source supplies a binding's raw value. It is invoked exactly once per
// binding per invocation, during the resolution phase. The boolean reports
// whether an explicit value was supplied, as opposed to a default fallback.
type Source interface {
	Resolve(ctx context.Context) (cty.Value, bool, error)
}

// OriginSource is optionally implemented by sources that want a specific
// origin label (used for display-name derivation and tree rendering).
type OriginSource interface {
	Origin() string
}

// SourceFunc adapts a plain function to a Source.
type SourceFunc func(ctx context.Context) (cty.Value, bool, error)

// Resolve implements Source.
func (f SourceFunc) Resolve(ctx context.Context) (cty.Value, bool, error) { return f(ctx) }

// Binding is a value-producing node tied to one external parameter. Its
// modifier chain is ordered from the binding (closest to raw input) to the
// outermost modifier (closest to the final value); values flow through the
// chain left to right.
type Binding struct {
	Node

	// Origin labels the parameter source kind: option, argument, env,
	// prompt, random, now or value.
	Origin string
	// Display is the external name shown in user-facing messages
	// ("--dry-run", "FILENAME", "API_KEY").
	Display string
	// Param is the name the resolved value is injected under.
	Param string
	// Type is the declared element type raw input is converted to.
	Type cty.Type
	// Default is used when the source supplies nothing. NilVal means no
	// default was declared.
	Default cty.Value
	// Required bindings fail resolution when not explicitly provided.
	Required bool
	// Tags are the groups this binding declared membership of.
	Tags []string
	// Multiple marks a repeatable parameter (flat list result shape).
	Multiple bool
	// Arity > 1 means every occurrence is a fixed-size group of values
	// (list-of-tuples result shape).
	Arity int
	// Help is the usage text forwarded to the dispatcher.
	Help string
	// Short is an optional single-letter alias for option bindings.
	Short string

	Source Source
	Chain  []*Modifier
}

// NewBinding creates a binding node with the given identity.
func NewBinding(name string) *Binding {
	return &Binding{
		Node: Node{Name: name, Kind: KindBinding},
		Type: cty.String,
	}
}
