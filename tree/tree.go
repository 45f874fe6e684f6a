// Package tree compiles an ordered stack of directive declarations into a
// finalized, immutable execution plan. Directives register in the reverse
// of written order (nested-decoration semantics); the builder reconstructs
// the binding→modifier ownership graph from that order alone.
package tree

import (
	"github.com/marcusfrdk/click-extended-sub002/node"
)

// Tree is the finalized, per-command execution plan. It is built exactly
// once per command, read-only afterward, and safely shared across
// concurrent invocations.
type Tree struct {
	Command      string
	Bindings     []*node.Binding
	Validations  []*node.Validation
	GlobalsFirst []*node.Global
	GlobalsLast  []*node.Global
	Tags         *TagRegistry

	byName map[string]*node.Binding
}

// Binding returns the binding with the given identity, or nil.
func (t *Tree) Binding(name string) *node.Binding {
	return t.byName[name]
}

// Display returns the external name for a binding identity, falling back
// to the identity itself for unknown names.
func (t *Tree) Display(name string) string {
	if b := t.byName[name]; b != nil {
		return b.Display
	}
	return name
}

// Expand resolves a reference to an ordered list of member binding names.
// A direct binding name match takes precedence over tag expansion; names
// that are neither a binding nor a group expand to nothing.
func (t *Tree) Expand(ref string) []string {
	if _, ok := t.byName[ref]; ok {
		return []string{ref}
	}
	if t.Tags.Has(ref) {
		return t.Tags.Members(ref)
	}
	return nil
}
