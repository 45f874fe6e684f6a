// Package runtime executes a finalized directive tree for one invocation:
// globals-first, binding resolution with element-wise modifier chains,
// validation, the command body, then globals-last. Every phase is
// synchronous; the body is the single point where arbitrary user code runs.
package runtime

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/zclconf/go-cty/cty"

	"github.com/marcusfrdk/click-extended-sub002/internal/ctxlog"
	"github.com/marcusfrdk/click-extended-sub002/node"
	"github.com/marcusfrdk/click-extended-sub002/tree"
	"github.com/marcusfrdk/click-extended-sub002/value"
)

// HandlerFunc is the command body. It runs in the invocation goroutine
// after all bindings are resolved and validated.
type HandlerFunc func(ctx context.Context, inv *Invocation) error

// Executor orchestrates the phase protocol for one command. The tree is
// read-only and shared; every Execute call allocates a fresh Invocation,
// so concurrent invocations never share resolved state.
type Executor struct {
	plan *tree.Tree
	out  io.Writer
}

// NewExecutor creates an executor over a finalized tree. A nil out writes
// observation output to stdout.
func NewExecutor(plan *tree.Tree, out io.Writer) *Executor {
	if out == nil {
		out = os.Stdout
	}
	return &Executor{plan: plan, out: out}
}

// Execute runs one invocation. Resolution and validation failures are
// returned as *Failure; the caller converts them to a non-zero exit.
func (e *Executor) Execute(ctx context.Context, handler HandlerFunc) error {
	logger := ctxlog.FromContext(ctx)
	inv := newInvocation(e.plan, e.out)
	logger.Debug("Execute: invocation started.", "command", e.plan.Command)

	err := e.run(ctx, inv, handler)
	if f, ok := err.(*Failure); ok {
		f.Verbose, _ = inv.data[node.MetaVerbose].(bool)
	}
	if err != nil {
		logger.Debug("Execute: invocation failed.", "command", e.plan.Command, "error", err)
		return err
	}
	logger.Debug("Execute: invocation finished.", "command", e.plan.Command)
	return nil
}

func (e *Executor) run(ctx context.Context, inv *Invocation, handler HandlerFunc) error {
	logger := ctxlog.FromContext(ctx)

	// Phase 1: globals-first, in declaration order. They may mutate
	// invocation metadata before anything else observes it.
	for _, g := range e.plan.GlobalsFirst {
		if err := e.runGlobal(ctx, inv, g); err != nil {
			return err
		}
	}

	// Phase 2: binding resolution, in declaration order. No binding's
	// chain may depend on another binding's resolved value.
	for _, b := range e.plan.Bindings {
		if err := e.resolveBinding(ctx, inv, b); err != nil {
			return err
		}
	}

	// Phase 3: validation, fail-fast in declaration order.
	for _, v := range e.plan.Validations {
		if err := v.Op(ctx, inv, v); err != nil {
			logger.Debug("Execute: validation failed.", "validation", v.Name)
			return err
		}
	}

	// Phase 4: the command body.
	if err := handler(ctx, inv); err != nil {
		return err
	}

	// Phase 5: globals-last observe the final resolved context, but only
	// after a successful body.
	for _, g := range e.plan.GlobalsLast {
		if err := e.runGlobal(ctx, inv, g); err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) runGlobal(ctx context.Context, inv *Invocation, g *node.Global) error {
	result, err := g.Op(ctx, inv)
	if err != nil {
		return &Failure{Message: fmt.Sprintf("global %q: %v", g.Name, err)}
	}
	if g.Inject != "" && result != cty.NilVal {
		inv.resolved[g.Inject] = result
	}
	return nil
}

// resolveBinding fetches the raw value, records the provided flag, then
// applies the modifier chain element-wise over the raw value's shape.
func (e *Executor) resolveBinding(ctx context.Context, inv *Invocation, b *node.Binding) error {
	logger := ctxlog.FromContext(ctx)

	raw, provided, err := b.Source.Resolve(ctx)
	if err != nil {
		return &Failure{
			Binding: b.Display,
			Message: err.Error(),
			Detail:  fmt.Sprintf("source %q failed", b.Origin),
		}
	}
	inv.provided[b.Name] = provided
	logger.Debug("Execute: raw value fetched.", "binding", b.Name, "provided", provided)

	if b.Required && !provided {
		return NewFailure(b.Display, "is required")
	}
	if !provided && (raw == cty.NilVal || raw.IsNull()) {
		if b.Default != cty.NilVal {
			raw = b.Default
		} else {
			raw = cty.NullVal(b.Type)
		}
	}

	// The shape is fixed once, from the raw value: a chain is mapped over
	// innermost scalar leaves and never receives a container.
	depth := value.Depth(raw)
	resolved, err := value.MapLeaves(raw, depth, func(leaf cty.Value) (cty.Value, error) {
		return e.applyChain(ctx, inv, b, leaf)
	})
	if err != nil {
		if f, ok := err.(*Failure); ok {
			return f
		}
		return &Failure{Binding: b.Display, Message: err.Error()}
	}
	inv.resolved[b.Name] = resolved
	logger.Debug("Execute: binding resolved.", "binding", b.Name, "depth", depth)
	return nil
}

func (e *Executor) applyChain(ctx context.Context, inv *Invocation, b *node.Binding, leaf cty.Value) (cty.Value, error) {
	if !leaf.IsNull() && b.Type != cty.DynamicPseudoType && leaf.Type() != b.Type {
		converted, err := value.FromString(value.AsString(leaf), b.Type)
		if err != nil {
			return cty.NilVal, &Failure{Binding: b.Display, Value: leaf, Message: err.Error()}
		}
		leaf = converted
	}
	for _, m := range b.Chain {
		if leaf.IsNull() && !m.AllowNull {
			continue
		}
		next, err := m.Op(ctx, inv, leaf)
		if err != nil {
			return cty.NilVal, &Failure{
				Binding: b.Display,
				Value:   leaf,
				Message: err.Error(),
				Detail:  fmt.Sprintf("modifier %q", m.Name),
			}
		}
		if next != cty.NilVal {
			leaf = next
		}
	}
	return leaf, nil
}
