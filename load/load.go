// Package load provides loader modifiers: each takes a path value and
// replaces it with the decoded content of the file it points to. Loader
// output counts as a leaf; it never deepens the owning binding's shape.
//
// Every loader distinguishes three failure categories: the file does not
// exist, the path is a directory, and the content does not decode.
package load

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"

	"github.com/marcusfrdk/click-extended-sub002/node"
	"github.com/marcusfrdk/click-extended-sub002/value"
)

// loader wraps a decode function as a path-consuming modifier.
func loader(name, format string, decode func(data []byte) (cty.Value, error)) *node.Modifier {
	return node.NewModifier(name, func(ctx context.Context, lk node.Lookup, v cty.Value) (cty.Value, error) {
		path := value.AsString(v)
		info, err := os.Stat(path)
		if os.IsNotExist(err) {
			return cty.NilVal, fmt.Errorf("file %q does not exist", path)
		}
		if err != nil {
			return cty.NilVal, fmt.Errorf("cannot read %q: %v", path, err)
		}
		if info.IsDir() {
			return cty.NilVal, fmt.Errorf("%q is a directory, not a file", path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return cty.NilVal, fmt.Errorf("cannot read %q: %v", path, err)
		}
		out, err := decode(data)
		if err != nil {
			return cty.NilVal, fmt.Errorf("failed to parse %s file %q: %v", format, path, err)
		}
		return out, nil
	})
}

// JSON replaces a path value with the decoded JSON document.
func JSON() *node.Modifier {
	return loader("load_json", "JSON", func(data []byte) (cty.Value, error) {
		var doc any
		if err := json.Unmarshal(data, &doc); err != nil {
			return cty.NilVal, err
		}
		return fromGo(doc)
	})
}

// YAML replaces a path value with the decoded YAML document.
func YAML() *node.Modifier {
	return loader("load_yaml", "YAML", func(data []byte) (cty.Value, error) {
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return cty.NilVal, err
		}
		return fromGo(doc)
	})
}

// TOML replaces a path value with the decoded TOML document.
func TOML() *node.Modifier {
	return loader("load_toml", "TOML", func(data []byte) (cty.Value, error) {
		var doc map[string]any
		if err := toml.Unmarshal(data, &doc); err != nil {
			return cty.NilVal, err
		}
		return fromGo(doc)
	})
}

// CSV replaces a path value with the file's records as a tuple of string
// tuples, header row included.
func CSV() *node.Modifier {
	return loader("load_csv", "CSV", func(data []byte) (cty.Value, error) {
		records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
		if err != nil {
			return cty.NilVal, err
		}
		return value.FromGroups(records, cty.String)
	})
}

// HCL replaces a path value with the file's top-level attributes decoded
// straight to cty. Attribute expressions are evaluated without variables.
func HCL() *node.Modifier {
	return loader("load_hcl", "HCL", func(data []byte) (cty.Value, error) {
		file, diags := hclsyntax.ParseConfig(data, "input.hcl", hcl.InitialPos)
		if diags.HasErrors() {
			return cty.NilVal, diags
		}
		attrs, diags := file.Body.JustAttributes()
		if diags.HasErrors() {
			return cty.NilVal, diags
		}
		vals := make(map[string]cty.Value, len(attrs))
		for name, attr := range attrs {
			v, diags := attr.Expr.Value(nil)
			if diags.HasErrors() {
				return cty.NilVal, diags
			}
			vals[name] = v
		}
		return cty.ObjectVal(vals), nil
	})
}

// fromGo converts a decoded document into a cty value: maps become
// objects, slices become tuples, scalars become primitives.
func fromGo(doc any) (cty.Value, error) {
	switch d := doc.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case bool:
		return cty.BoolVal(d), nil
	case string:
		return cty.StringVal(d), nil
	case float64:
		return cty.NumberFloatVal(d), nil
	case int:
		return cty.NumberIntVal(int64(d)), nil
	case int64:
		return cty.NumberIntVal(d), nil
	case json.Number:
		return cty.NumberFloatVal(mustFloat(d)), nil
	case []any:
		if len(d) == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, len(d))
		for i, e := range d {
			v, err := fromGo(e)
			if err != nil {
				return cty.NilVal, err
			}
			elems[i] = v
		}
		return cty.TupleVal(elems), nil
	case map[string]any:
		if len(d) == 0 {
			return cty.EmptyObjectVal, nil
		}
		vals := make(map[string]cty.Value, len(d))
		for k, e := range d {
			v, err := fromGo(e)
			if err != nil {
				return cty.NilVal, err
			}
			vals[k] = v
		}
		return cty.ObjectVal(vals), nil
	case map[any]any:
		vals := make(map[string]cty.Value, len(d))
		for k, e := range d {
			v, err := fromGo(e)
			if err != nil {
				return cty.NilVal, err
			}
			vals[fmt.Sprintf("%v", k)] = v
		}
		if len(vals) == 0 {
			return cty.EmptyObjectVal, nil
		}
		return cty.ObjectVal(vals), nil
	default:
		return cty.NilVal, fmt.Errorf("unsupported value of type %T", doc)
	}
}

func mustFloat(n json.Number) float64 {
	f, _ := n.Float64()
	return f
}
