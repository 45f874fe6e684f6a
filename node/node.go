// Package node defines the directive node model: the closed set of node
// kinds that a command declaration compiles into, and the contracts their
// operations run against at invocation time.
//
// The set of kinds is fixed and small, so it is modeled as a closed enum
// with one concrete struct per kind rather than open-ended subclassing.
// The tree builder and the executor both switch exhaustively over it.
package node

import (
	"io"

	"github.com/zclconf/go-cty/cty"
)

// Kind identifies the role of a directive node.
type Kind int

const (
	// KindBinding produces a value from an external parameter source.
	KindBinding Kind = iota
	// KindModifier consumes the upstream value of its owning binding and
	// produces a new value, or fails.
	KindModifier
	// KindValidation reads one or more resolved bindings after resolution
	// and checks a relation between them.
	KindValidation
	// KindGlobal runs once per invocation at a fixed phase, independent of
	// its declaration position.
	KindGlobal
	// KindTagClaim records its owning binding into a named tag group. It is
	// claimed like a modifier but never touches the value chain.
	KindTagClaim
)

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case KindBinding:
		return "binding"
	case KindModifier:
		return "modifier"
	case KindValidation:
		return "validation"
	case KindGlobal:
		return "global"
	case KindTagClaim:
		return "tag"
	}
	return "unknown"
}

// Phase selects when a global node runs relative to the rest of the
// invocation.
type Phase int

const (
	// PhaseFirst runs before any other processing.
	PhaseFirst Phase = iota
	// PhaseLast runs after everything else, including the command body.
	PhaseLast
)

// Node carries the identity shared by every directive node. Rank records
// registration order (the reverse of written order) and is assigned by the
// tree builder; it breaks ordering ties deterministically. Nodes are
// immutable once the tree is finalized.
type Node struct {
	Name string
	Kind Kind
	Rank int
}

// Directive is a single declaration consumed by the tree builder via
// ordered Register calls. Exactly the five node structs implement it.
type Directive interface {
	base() *Node
}

func (n *Node) base() *Node { return n }

// SetRank is called by the tree builder while draining the registration
// list. It is not meant for use after a tree is finalized.
func SetRank(d Directive, rank int) { d.base().Rank = rank }

// Base returns the embedded Node of any directive.
func Base(d Directive) *Node { return d.base() }

// MetaVerbose is the invocation metadata key that elevates failure
// reporting to include internal detail. Set by globals.Debug before any
// other processing observes it.
const MetaVerbose = "verbose_errors"

// Lookup is the per-invocation view directive operations run against. It is
// implemented by the runtime invocation context.
type Lookup interface {
	// Resolved returns a binding's resolved value, and whether the binding
	// exists in the resolved set.
	Resolved(name string) (cty.Value, bool)
	// Provided reports whether a binding's value came from explicit
	// external input rather than a default fallback. Unknown names are
	// never provided.
	Provided(name string) bool
	// Display returns the external (flag/argument/env) name for a binding,
	// or the given name unchanged when it is not a known binding.
	Display(name string) string
	// Expand resolves a reference to an ordered list of binding names. A
	// direct binding name match takes precedence over tag expansion;
	// unknown names expand to nothing.
	Expand(ref string) []string
	// Data is the shared per-invocation metadata store.
	Data() map[string]any
	// Out is the stream observation output is written to.
	Out() io.Writer
	// RenderTree renders the finalized directive tree of the command.
	RenderTree() string
}
