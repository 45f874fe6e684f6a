package node

import (
	"context"

	"github.com/zclconf/go-cty/cty"
)

// GlobalFn is the operation of a global node. Returning a non-nil value
// from a node with an inject name stores it in the resolved set under that
// name; observer-mode nodes return cty.NilVal.
type GlobalFn func(ctx context.Context, lk Lookup) (cty.Value, error)

// Global runs once per invocation at a fixed phase, regardless of where it
// was declared.
type Global struct {
	Node

	Phase Phase
	// Inject, when non-empty, is the name the return value is stored
	// under. Empty means observer mode.
	Inject string

	Op GlobalFn
}

// NewGlobal creates a global node for the given phase.
func NewGlobal(name string, phase Phase, op GlobalFn) *Global {
	return &Global{Node: Node{Name: name, Kind: KindGlobal}, Phase: phase, Op: op}
}

// TagClaim is the explicit grouping directive. During the build it is
// claimed by the next-registered binding like a modifier, but instead of
// transforming the value it records the owning binding's name into the
// named group.
type TagClaim struct {
	Node

	Group string
}

// NewTagClaim creates a grouping directive for the named group.
func NewTagClaim(group string) *TagClaim {
	return &TagClaim{Node: Node{Name: group, Kind: KindTagClaim}, Group: group}
}
