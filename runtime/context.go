package runtime

import (
	"io"

	"github.com/zclconf/go-cty/cty"

	"github.com/marcusfrdk/click-extended-sub002/tree"
	"github.com/marcusfrdk/click-extended-sub002/value"
)

// Invocation is the per-invocation context: resolved values, provided
// flags and shared metadata. It is created fresh at the start of each
// invocation and discarded at its end; concurrent invocations never share
// one.
type Invocation struct {
	plan     *tree.Tree
	resolved map[string]cty.Value
	provided map[string]bool
	data     map[string]any
	out      io.Writer
}

func newInvocation(plan *tree.Tree, out io.Writer) *Invocation {
	return &Invocation{
		plan:     plan,
		resolved: make(map[string]cty.Value),
		provided: make(map[string]bool),
		data:     make(map[string]any),
		out:      out,
	}
}

// Resolved returns a binding's resolved value and whether it exists.
func (inv *Invocation) Resolved(name string) (cty.Value, bool) {
	v, ok := inv.resolved[name]
	return v, ok
}

// Provided reports whether the binding's value came from explicit external
// input rather than a default fallback.
func (inv *Invocation) Provided(name string) bool { return inv.provided[name] }

// Display returns the external name for a binding, or name itself when it
// is not a known binding.
func (inv *Invocation) Display(name string) string { return inv.plan.Display(name) }

// Expand resolves a reference to an ordered list of member binding names.
func (inv *Invocation) Expand(ref string) []string { return inv.plan.Expand(ref) }

// Data is the shared per-invocation metadata store.
func (inv *Invocation) Data() map[string]any { return inv.data }

// Out is the stream observation output is written to.
func (inv *Invocation) Out() io.Writer { return inv.out }

// RenderTree renders the command's finalized directive tree.
func (inv *Invocation) RenderTree() string { return inv.plan.Render() }

// Value returns the resolved cty value for a binding; cty.NilVal when
// absent.
func (inv *Invocation) Value(name string) cty.Value { return inv.resolved[name] }

// String returns a binding's resolved value as a string.
func (inv *Invocation) String(name string) string { return value.AsString(inv.resolved[name]) }

// Int returns a binding's resolved value as an int64.
func (inv *Invocation) Int(name string) int64 { return value.AsInt(inv.resolved[name]) }

// Float returns a binding's resolved value as a float64.
func (inv *Invocation) Float(name string) float64 { return value.AsFloat(inv.resolved[name]) }

// Bool returns a binding's resolved value as a bool.
func (inv *Invocation) Bool(name string) bool { return value.AsBool(inv.resolved[name]) }

// Strings returns the leaf string renderings of a (possibly grouped)
// resolved value.
func (inv *Invocation) Strings(name string) []string { return value.AsStrings(inv.resolved[name]) }
