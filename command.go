// Package clix layers declarative, composable directives over cobra
// commands: bindings (options, positional arguments, environment values),
// transform and validation modifiers chained beneath them, and
// whole-command globals that run at a fixed phase.
//
// Directives are appended in written order, exactly like a decorator stack
// read top to bottom. A modifier attaches to the binding declared above
// it; cross-binding validators and globals may appear anywhere. Build
// compiles the stack into an immutable execution plan and returns a
// *cobra.Command driving it.
package clix

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/zclconf/go-cty/cty"

	"github.com/marcusfrdk/click-extended-sub002/internal/casing"
	"github.com/marcusfrdk/click-extended-sub002/node"
	"github.com/marcusfrdk/click-extended-sub002/prompt"
	"github.com/marcusfrdk/click-extended-sub002/runtime"
	"github.com/marcusfrdk/click-extended-sub002/value"
)

// Directive is a single declaration in a command stack. Leaf packages
// (transform, check, load, globals) return Directive values.
type Directive = node.Directive

// Command is a declarative command description under construction. All
// methods append directives in written order; Build finalizes.
type Command struct {
	name    string
	short   string
	long    string
	out     io.Writer
	written []node.Directive
	handler runtime.HandlerFunc

	built    *cobra.Command
	buildErr error
}

// New starts a command description with the given name.
func New(name string) *Command {
	return &Command{name: name}
}

// Short sets the one-line description shown in help output.
func (c *Command) Short(desc string) *Command {
	c.short = desc
	return c
}

// Long sets the full description shown in help output.
func (c *Command) Long(desc string) *Command {
	c.long = desc
	return c
}

// Out redirects observation output (globals, Observe) away from stdout.
func (c *Command) Out(w io.Writer) *Command {
	c.out = w
	return c
}

// BindingOption configures a binding declaration.
type BindingOption func(*node.Binding)

// WithDefault sets the value used when the parameter is not provided.
// Accepts string, bool, int, int64 or float64.
func WithDefault(v any) BindingOption {
	return func(b *node.Binding) {
		switch d := v.(type) {
		case string:
			b.Default = cty.StringVal(d)
		case bool:
			b.Default = cty.BoolVal(d)
		case int:
			b.Default = cty.NumberIntVal(int64(d))
		case int64:
			b.Default = cty.NumberIntVal(d)
		case float64:
			b.Default = cty.NumberFloatVal(d)
		case cty.Value:
			b.Default = d
		}
	}
}

// WithType declares the element type raw input is converted to before the
// modifier chain runs. Defaults to cty.String.
func WithType(ty cty.Type) BindingOption {
	return func(b *node.Binding) { b.Type = ty }
}

// Required makes the binding fail resolution when not explicitly provided.
func Required() BindingOption {
	return func(b *node.Binding) { b.Required = true }
}

// WithTags declares tag group membership for the binding.
func WithTags(tags ...string) BindingOption {
	return func(b *node.Binding) { b.Tags = append(b.Tags, tags...) }
}

// WithHelp sets the parameter's usage text.
func WithHelp(help string) BindingOption {
	return func(b *node.Binding) { b.Help = help }
}

// WithShort sets a single-letter alias for an option binding.
func WithShort(short string) BindingOption {
	return func(b *node.Binding) { b.Short = short }
}

// WithParam overrides the name the resolved value is injected under.
func WithParam(name string) BindingOption {
	return func(b *node.Binding) { b.Param = name }
}

// Multiple marks the parameter repeatable; its result shape is a flat list
// and modifier chains are mapped over each element.
func Multiple() BindingOption {
	return func(b *node.Binding) { b.Multiple = true }
}

// Arity declares that every occurrence of the parameter carries n
// comma-separated values; the result shape is a list of n-tuples.
func Arity(n int) BindingOption {
	return func(b *node.Binding) {
		b.Arity = n
		b.Multiple = true
	}
}

func (c *Command) binding(name, origin, display string, opts []BindingOption) *node.Binding {
	b := node.NewBinding(name)
	b.Origin = origin
	b.Display = display
	b.Param = casing.ToSnake(name)
	for _, opt := range opts {
		opt(b)
	}
	c.written = append(c.written, b)
	return b
}

// Option declares a flag binding. The external name is the kebab-case form
// of name, prefixed with "--".
func (c *Command) Option(name string, opts ...BindingOption) *Command {
	c.binding(name, "option", "--"+casing.ToKebab(name), opts)
	return c
}

// Argument declares a positional binding. Positional order follows
// declaration order; a Multiple argument consumes the remaining tokens and
// must be declared last.
func (c *Command) Argument(name string, opts ...BindingOption) *Command {
	c.binding(name, "argument", casing.ToScreamingSnake(name), opts)
	return c
}

// Env declares an environment-variable binding reading the
// SCREAMING_SNAKE form of name. Env bindings cannot be tagged.
func (c *Command) Env(name string, opts ...BindingOption) *Command {
	envName := casing.ToScreamingSnake(name)
	b := c.binding(name, "env", envName, opts)
	b.Source = envSource(envName)
	return c
}

// Prompt declares an interactive terminal binding. When hide is true the
// typed input is not echoed.
func (c *Command) Prompt(name, text string, hide bool, opts ...BindingOption) *Command {
	b := c.binding(name, "prompt", casing.ToScreamingSnake(name), opts)
	b.Source = prompt.New(text, hide)
	return c
}

// Value declares a binding backed by an arbitrary source, such as the
// generators in the random package.
func (c *Command) Value(name string, src node.Source, opts ...BindingOption) *Command {
	origin := "value"
	if o, ok := src.(node.OriginSource); ok {
		origin = o.Origin()
	}
	b := c.binding(name, origin, casing.ToScreamingSnake(name), opts)
	b.Source = src
	return c
}

// Tag chains a grouping directive under the binding declared above it,
// recording that binding into the named group.
func (c *Command) Tag(group string) *Command {
	c.written = append(c.written, node.NewTagClaim(group))
	return c
}

// With appends any number of leaf directives: modifiers attach to the
// binding above them, validators and globals register command-wide.
func (c *Command) With(ds ...node.Directive) *Command {
	c.written = append(c.written, ds...)
	return c
}

// Run sets the command body. The resolved value of every binding is
// available on the invocation under its identity.
func (c *Command) Run(fn runtime.HandlerFunc) *Command {
	c.handler = fn
	return c
}

// defaultString renders a binding default for flag help display.
func defaultString(b *node.Binding) string {
	if b.Default == cty.NilVal || b.Default.IsNull() {
		return ""
	}
	return value.AsString(b.Default)
}
