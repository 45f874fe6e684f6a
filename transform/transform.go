// Package transform provides the built-in value modifiers. Each function
// returns a directive that chains under the binding declared above it and
// runs element-wise over that binding's value shape.
package transform

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/marcusfrdk/click-extended-sub002/internal/casing"
	"github.com/marcusfrdk/click-extended-sub002/internal/ctxlog"
	"github.com/marcusfrdk/click-extended-sub002/node"
	"github.com/marcusfrdk/click-extended-sub002/value"
)

// stringModifier wraps a pure string function as a modifier node.
func stringModifier(name string, fn func(string) (string, error)) *node.Modifier {
	return node.NewModifier(name, func(ctx context.Context, lk node.Lookup, v cty.Value) (cty.Value, error) {
		out, err := fn(value.AsString(v))
		if err != nil {
			return cty.NilVal, err
		}
		return cty.StringVal(out), nil
	})
}

// numberModifier wraps a pure float function as a modifier node. The input
// must be convertible to a number.
func numberModifier(name string, fn func(float64) (float64, error)) *node.Modifier {
	return node.NewModifier(name, func(ctx context.Context, lk node.Lookup, v cty.Value) (cty.Value, error) {
		conv, err := value.FromString(value.AsString(v), cty.Number)
		if err != nil {
			return cty.NilVal, fmt.Errorf("is not a number")
		}
		f, _ := conv.AsBigFloat().Float64()
		out, err := fn(f)
		if err != nil {
			return cty.NilVal, err
		}
		return cty.NumberFloatVal(out), nil
	})
}

// ToUpper uppercases the value.
func ToUpper() *node.Modifier {
	return stringModifier("to_upper", func(s string) (string, error) {
		return strings.ToUpper(s), nil
	})
}

// ToLower lowercases the value.
func ToLower() *node.Modifier {
	return stringModifier("to_lower", func(s string) (string, error) {
		return strings.ToLower(s), nil
	})
}

// ToCase converts the value to the named casing style, such as
// casing.Snake or casing.Kebab. An unknown style is a declaration error
// and panics.
func ToCase(style casing.Style) *node.Modifier {
	if _, ok := casing.Convert("", style); !ok {
		panic(fmt.Sprintf("transform: unknown casing style %q", style))
	}
	return stringModifier("to_case", func(s string) (string, error) {
		out, _ := casing.Convert(s, style)
		return out, nil
	})
}

// AddPrefix prepends prefix to the value.
func AddPrefix(prefix string) *node.Modifier {
	return stringModifier("add_prefix", func(s string) (string, error) {
		return prefix + s, nil
	})
}

// AddSuffix appends suffix to the value.
func AddSuffix(suffix string) *node.Modifier {
	return stringModifier("add_suffix", func(s string) (string, error) {
		return s + suffix, nil
	})
}

// RemovePrefix strips prefix from the value when present.
func RemovePrefix(prefix string) *node.Modifier {
	return stringModifier("remove_prefix", func(s string) (string, error) {
		return strings.TrimPrefix(s, prefix), nil
	})
}

// RemoveSuffix strips suffix from the value when present.
func RemoveSuffix(suffix string) *node.Modifier {
	return stringModifier("remove_suffix", func(s string) (string, error) {
		return strings.TrimSuffix(s, suffix), nil
	})
}

// Strip trims leading and trailing whitespace.
func Strip() *node.Modifier {
	return stringModifier("strip", func(s string) (string, error) {
		return strings.TrimSpace(s), nil
	})
}

// Replace substitutes every occurrence of old with new.
func Replace(old, new string) *node.Modifier {
	return stringModifier("replace", func(s string) (string, error) {
		return strings.ReplaceAll(s, old, new), nil
	})
}

// Truncate cuts the value to at most n runes.
func Truncate(n int) *node.Modifier {
	return stringModifier("truncate", func(s string) (string, error) {
		if n < 0 {
			return "", fmt.Errorf("truncate length must be non-negative, got %d", n)
		}
		runes := []rune(s)
		if len(runes) <= n {
			return s, nil
		}
		return string(runes[:n]), nil
	})
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases the value and collapses every non-alphanumeric run
// into a single hyphen.
func Slugify() *node.Modifier {
	return stringModifier("slugify", func(s string) (string, error) {
		out := slugStrip.ReplaceAllString(strings.ToLower(s), "-")
		return strings.Trim(out, "-"), nil
	})
}

// ExpandVars substitutes ${var} and $var references from the process
// environment. Unset variables expand to the empty string.
func ExpandVars() *node.Modifier {
	return stringModifier("expand_vars", func(s string) (string, error) {
		return os.ExpandEnv(s), nil
	})
}

// Basename reduces a path value to its last element.
func Basename() *node.Modifier {
	return stringModifier("basename", func(s string) (string, error) {
		return filepath.Base(s), nil
	})
}

// Dirname reduces a path value to its parent directory.
func Dirname() *node.Modifier {
	return stringModifier("dirname", func(s string) (string, error) {
		return filepath.Dir(s), nil
	})
}

// AbsPath resolves a path value against the working directory.
func AbsPath() *node.Modifier {
	return stringModifier("abs_path", func(s string) (string, error) {
		return filepath.Abs(s)
	})
}

// Add adds n to a numeric value.
func Add(n float64) *node.Modifier {
	return numberModifier("add", func(f float64) (float64, error) {
		return f + n, nil
	})
}

// Subtract subtracts n from a numeric value.
func Subtract(n float64) *node.Modifier {
	return numberModifier("subtract", func(f float64) (float64, error) {
		return f - n, nil
	})
}

// Multiply multiplies a numeric value by n.
func Multiply(n float64) *node.Modifier {
	return numberModifier("multiply", func(f float64) (float64, error) {
		return f * n, nil
	})
}

// Divide divides a numeric value by n.
func Divide(n float64) *node.Modifier {
	return numberModifier("divide", func(f float64) (float64, error) {
		if n == 0 {
			return 0, fmt.Errorf("cannot divide by zero")
		}
		return f / n, nil
	})
}

// Absolute replaces a numeric value with its absolute value.
func Absolute() *node.Modifier {
	return numberModifier("absolute", func(f float64) (float64, error) {
		return math.Abs(f), nil
	})
}

// Ceil rounds a numeric value up to the nearest integer.
func Ceil() *node.Modifier {
	return numberModifier("ceil", func(f float64) (float64, error) {
		return math.Ceil(f), nil
	})
}

// Floor rounds a numeric value down to the nearest integer.
func Floor() *node.Modifier {
	return numberModifier("floor", func(f float64) (float64, error) {
		return math.Floor(f), nil
	})
}

// Round rounds a numeric value half away from zero to n decimal places.
func Round(places int) *node.Modifier {
	return numberModifier("round", func(f float64) (float64, error) {
		scale := math.Pow(10, float64(places))
		return math.Round(f*scale) / scale, nil
	})
}

// Clamp bounds a numeric value into [lo, hi].
func Clamp(lo, hi float64) *node.Modifier {
	return numberModifier("clamp", func(f float64) (float64, error) {
		if lo > hi {
			return 0, fmt.Errorf("clamp bounds are inverted: %v > %v", lo, hi)
		}
		return math.Min(math.Max(f, lo), hi), nil
	})
}

// Apply chains an arbitrary transform function.
func Apply(name string, fn node.TransformFn) *node.Modifier {
	return node.NewModifier(name, fn)
}

// Default substitutes v when the chained value is null at this point. It
// is the only built-in modifier that sees null leaves.
func Default(v cty.Value) *node.Modifier {
	m := node.NewModifier("default", func(ctx context.Context, lk node.Lookup, cur cty.Value) (cty.Value, error) {
		if cur.IsNull() {
			return v, nil
		}
		return cur, nil
	})
	m.AllowNull = true
	return m
}

// Observe logs the value passing through the chain and leaves it
// unchanged. Useful when debugging a long chain.
func Observe(label string) *node.Modifier {
	return node.NewModifier("observe", func(ctx context.Context, lk node.Lookup, v cty.Value) (cty.Value, error) {
		ctxlog.FromContext(ctx).Debug("observe: chain value.", "label", label, "value", value.GoString(v))
		fmt.Fprintf(lk.Out(), "%s: %s\n", label, value.GoString(v))
		return v, nil
	})
}
