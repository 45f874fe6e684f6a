// Package value implements the cty-based value plumbing shared by the
// binding resolution pipeline: raw string conversion, container shape
// detection for grouped/repeated inputs, and element-wise mapping of
// modifier chains over those shapes.
package value

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// FromString converts a raw textual input to the given cty type.
func FromString(raw string, ty cty.Type) (cty.Value, error) {
	v, err := convert.Convert(cty.StringVal(raw), ty)
	if err != nil {
		return cty.NilVal, fmt.Errorf("cannot convert %q to %s: %w", raw, ty.FriendlyName(), err)
	}
	return v, nil
}

// FromStrings converts a flat list of raw inputs into a tuple value.
func FromStrings(raw []string, ty cty.Type) (cty.Value, error) {
	if len(raw) == 0 {
		return cty.EmptyTupleVal, nil
	}
	vals := make([]cty.Value, len(raw))
	for i, s := range raw {
		v, err := FromString(s, ty)
		if err != nil {
			return cty.NilVal, err
		}
		vals[i] = v
	}
	return cty.TupleVal(vals), nil
}

// FromGroups converts repeated fixed-size groups of raw inputs into a
// tuple of tuples.
func FromGroups(groups [][]string, ty cty.Type) (cty.Value, error) {
	if len(groups) == 0 {
		return cty.EmptyTupleVal, nil
	}
	outer := make([]cty.Value, len(groups))
	for i, g := range groups {
		inner, err := FromStrings(g, ty)
		if err != nil {
			return cty.NilVal, err
		}
		outer[i] = inner
	}
	return cty.TupleVal(outer), nil
}

// isContainer reports whether v is one of the sequence shapes produced by
// multi-value bindings. Objects and maps (e.g. loader output) are leaves.
func isContainer(v cty.Value) bool {
	if v.IsNull() || !v.IsKnown() {
		return false
	}
	ty := v.Type()
	return ty.IsTupleType() || ty.IsListType() || ty.IsSetType()
}

// Depth measures the container nesting of a raw binding value: 0 for a
// scalar, 1 for a flat list, 2 for a list of fixed-size groups. The shape
// is fixed from the raw value; loader output inside a leaf never deepens
// it.
func Depth(v cty.Value) int {
	if !isContainer(v) {
		return 0
	}
	it := v.ElementIterator()
	if it.Next() {
		_, elem := it.Element()
		if isContainer(elem) {
			return 2
		}
	}
	return 1
}

// MapLeaves applies fn to every scalar leaf of v at the given container
// depth, preserving the container's shape. A chain never receives a
// container directly. Depth 0 applies fn to v itself.
func MapLeaves(v cty.Value, depth int, fn func(cty.Value) (cty.Value, error)) (cty.Value, error) {
	if depth <= 0 {
		return fn(v)
	}
	if !isContainer(v) {
		return fn(v)
	}
	length := v.LengthInt()
	if length == 0 {
		return cty.EmptyTupleVal, nil
	}
	elems := make([]cty.Value, 0, length)
	for it := v.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		mapped, err := MapLeaves(elem, depth-1, fn)
		if err != nil {
			return cty.NilVal, err
		}
		elems = append(elems, mapped)
	}
	return cty.TupleVal(elems), nil
}

// GoString renders a value for user-facing failure messages: primitives
// without quoting noise, everything else in cty's syntax.
func GoString(v cty.Value) string {
	if v.IsNull() {
		return "<nil>"
	}
	if !v.IsKnown() {
		return "<unknown>"
	}
	switch v.Type() {
	case cty.String:
		return v.AsString()
	case cty.Bool:
		if v.True() {
			return "true"
		}
		return "false"
	case cty.Number:
		return v.AsBigFloat().Text('g', -1)
	}
	return v.GoString()
}

// AsString converts v to its string rendering, or "" for null.
func AsString(v cty.Value) string {
	if v.IsNull() {
		return ""
	}
	if v.Type() == cty.String {
		return v.AsString()
	}
	conv, err := convert.Convert(v, cty.String)
	if err != nil {
		return GoString(v)
	}
	return conv.AsString()
}

// AsInt converts v to an int64; null and non-numeric values yield 0.
func AsInt(v cty.Value) int64 {
	f := AsFloat(v)
	return int64(f)
}

// AsFloat converts v to a float64; null and non-numeric values yield 0.
func AsFloat(v cty.Value) float64 {
	if v.IsNull() {
		return 0
	}
	conv, err := convert.Convert(v, cty.Number)
	if err != nil {
		return 0
	}
	f, _ := conv.AsBigFloat().Float64()
	return f
}

// AsBool converts v to a bool; null yields false.
func AsBool(v cty.Value) bool {
	if v.IsNull() {
		return false
	}
	conv, err := convert.Convert(v, cty.Bool)
	if err != nil {
		return false
	}
	return conv.True()
}

// AsStrings flattens a container value into its leaf string renderings. A
// scalar yields a single-element slice; null yields nil.
func AsStrings(v cty.Value) []string {
	if v.IsNull() {
		return nil
	}
	if !isContainer(v) {
		return []string{AsString(v)}
	}
	var out []string
	for it := v.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		out = append(out, AsStrings(elem)...)
	}
	return out
}
