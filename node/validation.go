package node

import "context"

// RelationFn evaluates a cross-binding relation after all bindings are
// resolved. The validation node itself is passed so the relation can read
// its expanded references and anchor.
type RelationFn func(ctx context.Context, lk Lookup, v *Validation) error

// Validation reads one or more bindings' resolved values and provided
// flags, by name or by tag. It does not sit in a value chain.
type Validation struct {
	Node

	// Refs name bindings or tag groups. Expansion happens at execution
	// time against the invocation's lookup.
	Refs []string
	// Anchored relations are evaluated relative to the binding they were
	// declared under; the builder fills Anchor during claiming.
	Anchored bool
	Anchor   string

	Op RelationFn
}

// NewValidation creates a validation node. Anchored nodes must be declared
// under a binding; the builder rejects them otherwise.
func NewValidation(name string, anchored bool, refs []string, op RelationFn) *Validation {
	return &Validation{
		Node:     Node{Name: name, Kind: KindValidation},
		Refs:     refs,
		Anchored: anchored,
		Op:       op,
	}
}
