package clix

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/zclconf/go-cty/cty"

	"github.com/marcusfrdk/click-extended-sub002/internal/ctxlog"
	"github.com/marcusfrdk/click-extended-sub002/node"
	"github.com/marcusfrdk/click-extended-sub002/runtime"
	"github.com/marcusfrdk/click-extended-sub002/tree"
	"github.com/marcusfrdk/click-extended-sub002/value"
)

// argsKey carries the positional tokens of the current invocation through
// its context, keeping concurrent invocations independent.
type argsKey struct{}

func withArgs(ctx context.Context, args []string) context.Context {
	return context.WithValue(ctx, argsKey{}, args)
}

func argsFromContext(ctx context.Context) []string {
	args, _ := ctx.Value(argsKey{}).([]string)
	return args
}

// Build compiles the written directive stack into an immutable tree and
// returns the cobra command driving it. Build-time errors (dangling
// modifiers, duplicate names, malformed declarations) are programmer
// errors; they are returned here and panicked by MustBuild.
//
// Build finalizes exactly once: repeated calls return the same command, so
// re-building can never duplicate bindings.
func (c *Command) Build() (*cobra.Command, error) {
	if c.built != nil || c.buildErr != nil {
		return c.built, c.buildErr
	}
	c.built, c.buildErr = c.build()
	return c.built, c.buildErr
}

// MustBuild is Build for program startup: misconfigured commands fail
// loudly.
func (c *Command) MustBuild() *cobra.Command {
	cmd, err := c.Build()
	if err != nil {
		panic(fmt.Sprintf("clix: building command %q: %v", c.name, err))
	}
	return cmd
}

func (c *Command) build() (*cobra.Command, error) {
	if c.handler == nil {
		return nil, fmt.Errorf("command %q: %w", c.name, tree.ErrNoHandler)
	}

	// Directives were appended in written order; the builder consumes
	// registration order, the reverse (innermost-declared first).
	builder := tree.NewBuilder(c.name)
	for i := len(c.written) - 1; i >= 0; i-- {
		builder.Register(c.written[i])
	}
	plan, err := builder.Finish(context.Background())
	if err != nil {
		return nil, err
	}

	cc := &cobra.Command{
		Use:           c.usage(plan),
		Short:         c.short,
		Long:          c.long,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	position := 0
	var variadic *node.Binding
	for _, b := range plan.Bindings {
		switch b.Origin {
		case "option":
			registerFlag(cc.Flags(), b)
			b.Source = &optionSource{flags: cc.Flags(), binding: b}
		case "argument":
			// A Multiple argument consumes every remaining token, so
			// nothing can be positioned after it.
			if variadic != nil {
				return nil, fmt.Errorf("argument %q cannot follow variadic argument %q",
					b.Name, variadic.Name)
			}
			b.Source = &argumentSource{binding: b, position: position}
			if b.Multiple {
				variadic = b
			} else {
				position++
			}
		}
		if b.Source == nil {
			return nil, fmt.Errorf("binding %q has no source", b.Name)
		}
	}

	handler := c.handler
	out := c.out
	cc.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		ctx = withArgs(ctx, args)
		return runtime.NewExecutor(plan, out).Execute(ctx, handler)
	}
	return cc, nil
}

// usage composes the cobra Use line from the declared bindings.
func (c *Command) usage(plan *tree.Tree) string {
	parts := []string{c.name}
	for _, b := range plan.Bindings {
		if b.Origin != "argument" {
			continue
		}
		placeholder := b.Display
		if b.Multiple {
			placeholder += "..."
		}
		if !b.Required {
			placeholder = "[" + placeholder + "]"
		}
		parts = append(parts, placeholder)
	}
	return strings.Join(parts, " ")
}

// flagName strips the leading dashes from an option's display name.
func flagName(b *node.Binding) string {
	return strings.TrimPrefix(b.Display, "--")
}

func registerFlag(flags *pflag.FlagSet, b *node.Binding) {
	name := flagName(b)
	switch {
	case b.Multiple:
		flags.StringArrayP(name, b.Short, nil, b.Help)
	case b.Type == cty.Bool:
		flags.BoolP(name, b.Short, value.AsBool(b.Default), b.Help)
	default:
		flags.StringP(name, b.Short, defaultString(b), b.Help)
	}
}

// optionSource reads a binding's raw value from the built command's flag
// set. Provided is true iff the flag was explicitly set on the command
// line, never for a default fallback.
type optionSource struct {
	flags   *pflag.FlagSet
	binding *node.Binding
}

func (s *optionSource) Resolve(ctx context.Context) (cty.Value, bool, error) {
	name := flagName(s.binding)
	flag := s.flags.Lookup(name)
	if flag == nil {
		return cty.NilVal, false, fmt.Errorf("flag %q is not registered", name)
	}
	if !flag.Changed {
		return cty.NilVal, false, nil
	}
	switch {
	case s.binding.Arity > 1:
		occurrences, err := s.flags.GetStringArray(name)
		if err != nil {
			return cty.NilVal, false, err
		}
		groups := make([][]string, len(occurrences))
		for i, occ := range occurrences {
			parts := strings.Split(occ, ",")
			if len(parts) != s.binding.Arity {
				return cty.NilVal, false, fmt.Errorf(
					"expected %d comma-separated values, got %d", s.binding.Arity, len(parts))
			}
			for j := range parts {
				parts[j] = strings.TrimSpace(parts[j])
			}
			groups[i] = parts
		}
		v, err := value.FromGroups(groups, cty.String)
		return v, true, err
	case s.binding.Multiple:
		occurrences, err := s.flags.GetStringArray(name)
		if err != nil {
			return cty.NilVal, false, err
		}
		v, err := value.FromStrings(occurrences, cty.String)
		return v, true, err
	case s.binding.Type == cty.Bool:
		set, err := s.flags.GetBool(name)
		if err != nil {
			return cty.NilVal, false, err
		}
		return cty.BoolVal(set), true, nil
	default:
		raw, err := s.flags.GetString(name)
		if err != nil {
			return cty.NilVal, false, err
		}
		return cty.StringVal(raw), true, nil
	}
}

// argumentSource reads a binding's raw value from the positional tokens of
// the current invocation. A Multiple argument consumes every remaining
// token.
type argumentSource struct {
	binding  *node.Binding
	position int
}

func (s *argumentSource) Resolve(ctx context.Context) (cty.Value, bool, error) {
	args := argsFromContext(ctx)
	if s.position >= len(args) {
		return cty.NilVal, false, nil
	}
	if s.binding.Multiple {
		v, err := value.FromStrings(args[s.position:], cty.String)
		return v, true, err
	}
	return cty.StringVal(args[s.position]), true, nil
}

// envSource reads a binding's raw value from the process environment.
// Provided is true iff the variable is set, even to the empty string.
func envSource(name string) node.Source {
	return node.SourceFunc(func(ctx context.Context) (cty.Value, bool, error) {
		raw, ok := os.LookupEnv(name)
		if !ok {
			return cty.NilVal, false, nil
		}
		return cty.StringVal(raw), true, nil
	})
}

// Execute runs a built command and converts failures into a process exit
// code: 0 on success, 1 on any reported failure. The human-readable
// message is written to stderr.
func Execute(cmd *cobra.Command) int {
	return ExecuteContext(context.Background(), cmd, os.Stderr)
}

// ExecuteContext is Execute with an explicit context (carrying a logger
// via ctxlog) and error stream.
func ExecuteContext(ctx context.Context, cmd *cobra.Command, errW io.Writer) int {
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(errW, "Error: %s\n", err.Error())
		ctxlog.FromContext(ctx).Debug("command failed", "error", err)
		var exitErr *runtime.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		return 1
	}
	return 0
}
