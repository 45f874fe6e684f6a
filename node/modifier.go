package node

import (
	"context"

	"github.com/zclconf/go-cty/cty"
)

// TransformFn is the operation of a modifier node. It receives a single
// scalar leaf, never a container: grouped and repeated shapes are mapped
// over element-wise by the executor. A returned error aborts resolution of
// the owning binding.
type TransformFn func(ctx context.Context, lk Lookup, v cty.Value) (cty.Value, error)

// Modifier wraps a binding's value. Modifiers chain linearly; each one's
// output is the next one's input. They are stateless across invocations.
type Modifier struct {
	Node

	Op TransformFn
	// AllowNull opts the modifier into seeing null leaves, which are
	// otherwise skipped. Used by default-substituting modifiers.
	AllowNull bool
}

// NewModifier creates a modifier node around op.
func NewModifier(name string, op TransformFn) *Modifier {
	return &Modifier{Node: Node{Name: name, Kind: KindModifier}, Op: op}
}
