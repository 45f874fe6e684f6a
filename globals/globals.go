// Package globals provides whole-command directives that run once per
// invocation at a fixed phase, independent of where in the stack they are
// declared.
package globals

import (
	"context"
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/marcusfrdk/click-extended-sub002/internal/ctxlog"
	"github.com/marcusfrdk/click-extended-sub002/node"
)

// Debug flips verbose failure reporting for the invocation. It runs in the
// first phase so every later failure carries its detail.
func Debug() *node.Global {
	return node.NewGlobal("debug", node.PhaseFirst, func(ctx context.Context, lk node.Lookup) (cty.Value, error) {
		lk.Data()[node.MetaVerbose] = true
		ctxlog.FromContext(ctx).Debug("debug: verbose failure reporting enabled.")
		return cty.NilVal, nil
	})
}

// Visualize renders the command's finalized directive tree after a
// successful body.
func Visualize() *node.Global {
	return node.NewGlobal("visualize", node.PhaseLast, func(ctx context.Context, lk node.Lookup) (cty.Value, error) {
		fmt.Fprintln(lk.Out(), lk.RenderTree())
		return cty.NilVal, nil
	})
}

// First registers fn to run before binding resolution. A non-empty name
// injects the returned value into the resolved set under that name;
// observer-only globals pass "" and return cty.NilVal.
func First(name string, fn node.GlobalFn) *node.Global {
	g := node.NewGlobal(globalName(name, "first"), node.PhaseFirst, fn)
	g.Inject = name
	return g
}

// Last registers fn to run after a successful command body. Injection
// works as in First, though by then only other globals-last observe it.
func Last(name string, fn node.GlobalFn) *node.Global {
	g := node.NewGlobal(globalName(name, "last"), node.PhaseLast, fn)
	g.Inject = name
	return g
}

func globalName(name, phase string) string {
	if name == "" {
		return "anonymous_" + phase
	}
	return name
}
