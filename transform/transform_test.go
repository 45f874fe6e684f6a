package transform

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/marcusfrdk/click-extended-sub002/internal/casing"
	"github.com/marcusfrdk/click-extended-sub002/node"
)

type outLookup struct {
	buf bytes.Buffer
}

func (l *outLookup) Resolved(string) (cty.Value, bool) { return cty.NilVal, false }
func (l *outLookup) Provided(string) bool              { return false }
func (l *outLookup) Display(name string) string        { return name }
func (l *outLookup) Expand(string) []string            { return nil }
func (l *outLookup) Data() map[string]any              { return nil }
func (l *outLookup) Out() io.Writer                    { return &l.buf }
func (l *outLookup) RenderTree() string                { return "" }

func apply(t *testing.T, m *node.Modifier, v cty.Value) (cty.Value, error) {
	t.Helper()
	return m.Op(context.Background(), &outLookup{}, v)
}

func TestStringTransforms(t *testing.T) {
	testCases := []struct {
		name     string
		modifier *node.Modifier
		input    string
		expected string
	}{
		{name: "to upper", modifier: ToUpper(), input: "abc", expected: "ABC"},
		{name: "to lower", modifier: ToLower(), input: "ABC", expected: "abc"},
		{name: "to case kebab", modifier: ToCase(casing.Kebab), input: "myValue", expected: "my-value"},
		{name: "add prefix", modifier: AddPrefix("v"), input: "1.2", expected: "v1.2"},
		{name: "add suffix", modifier: AddSuffix(".log"), input: "app", expected: "app.log"},
		{name: "remove prefix", modifier: RemovePrefix("v"), input: "v1.2", expected: "1.2"},
		{name: "remove prefix absent", modifier: RemovePrefix("v"), input: "1.2", expected: "1.2"},
		{name: "remove suffix", modifier: RemoveSuffix(".log"), input: "app.log", expected: "app"},
		{name: "strip", modifier: Strip(), input: "  padded \n", expected: "padded"},
		{name: "replace", modifier: Replace("_", "-"), input: "a_b_c", expected: "a-b-c"},
		{name: "truncate long", modifier: Truncate(3), input: "abcdef", expected: "abc"},
		{name: "truncate short", modifier: Truncate(10), input: "abc", expected: "abc"},
		{name: "slugify", modifier: Slugify(), input: "Hello, World!", expected: "hello-world"},
		{name: "slugify trims edges", modifier: Slugify(), input: "--Already Sluggy--", expected: "already-sluggy"},
		{name: "basename", modifier: Basename(), input: "/var/log/app.log", expected: "app.log"},
		{name: "dirname", modifier: Dirname(), input: "/var/log/app.log", expected: "/var/log"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := apply(t, tc.modifier, cty.StringVal(tc.input))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got.AsString())
		})
	}
}

func TestToCaseUnknownStylePanics(t *testing.T) {
	assert.Panics(t, func() {
		ToCase(casing.Style("shouting"))
	})
}

func TestExpandVars(t *testing.T) {
	t.Setenv("TRANSFORM_TEST_REGION", "eu-north-1")
	got, err := apply(t, ExpandVars(), cty.StringVal("region-${TRANSFORM_TEST_REGION}"))
	require.NoError(t, err)
	assert.Equal(t, "region-eu-north-1", got.AsString())
}

func TestAbsPath(t *testing.T) {
	got, err := apply(t, AbsPath(), cty.StringVal("some/file.txt"))
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got.AsString()))
}

func TestNumericTransforms(t *testing.T) {
	testCases := []struct {
		name     string
		modifier *node.Modifier
		input    cty.Value
		expected float64
	}{
		{name: "add", modifier: Add(2), input: cty.NumberIntVal(3), expected: 5},
		{name: "subtract", modifier: Subtract(2), input: cty.NumberIntVal(3), expected: 1},
		{name: "multiply", modifier: Multiply(4), input: cty.NumberFloatVal(2.5), expected: 10},
		{name: "divide", modifier: Divide(2), input: cty.NumberIntVal(7), expected: 3.5},
		{name: "absolute", modifier: Absolute(), input: cty.NumberIntVal(-9), expected: 9},
		{name: "ceil", modifier: Ceil(), input: cty.NumberFloatVal(1.1), expected: 2},
		{name: "floor", modifier: Floor(), input: cty.NumberFloatVal(1.9), expected: 1},
		{name: "round", modifier: Round(1), input: cty.NumberFloatVal(1.25), expected: 1.3},
		{name: "clamp low", modifier: Clamp(0, 10), input: cty.NumberIntVal(-5), expected: 0},
		{name: "clamp high", modifier: Clamp(0, 10), input: cty.NumberIntVal(50), expected: 10},
		{name: "clamp inside", modifier: Clamp(0, 10), input: cty.NumberIntVal(7), expected: 7},
		{name: "string input", modifier: Add(1), input: cty.StringVal("41"), expected: 42},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := apply(t, tc.modifier, tc.input)
			require.NoError(t, err)
			f, _ := got.AsBigFloat().Float64()
			assert.InDelta(t, tc.expected, f, 1e-9)
		})
	}
}

func TestNumericErrors(t *testing.T) {
	t.Run("divide by zero", func(t *testing.T) {
		_, err := apply(t, Divide(0), cty.NumberIntVal(1))
		require.Error(t, err)
		assert.Equal(t, "cannot divide by zero", err.Error())
	})

	t.Run("not a number", func(t *testing.T) {
		_, err := apply(t, Add(1), cty.StringVal("many"))
		require.Error(t, err)
		assert.Equal(t, "is not a number", err.Error())
	})
}

func TestDefault(t *testing.T) {
	m := Default(cty.StringVal("fallback"))
	require.True(t, m.AllowNull)

	got, err := apply(t, m, cty.NullVal(cty.String))
	require.NoError(t, err)
	assert.Equal(t, "fallback", got.AsString())

	got, err = apply(t, m, cty.StringVal("explicit"))
	require.NoError(t, err)
	assert.Equal(t, "explicit", got.AsString())
}

func TestApply(t *testing.T) {
	m := Apply("shout", func(ctx context.Context, lk node.Lookup, v cty.Value) (cty.Value, error) {
		return cty.StringVal(v.AsString() + "!"), nil
	})
	got, err := apply(t, m, cty.StringVal("go"))
	require.NoError(t, err)
	assert.Equal(t, "go!", got.AsString())
}

func TestObserve(t *testing.T) {
	lk := &outLookup{}
	m := Observe("stage")
	got, err := m.Op(context.Background(), lk, cty.StringVal("value"))
	require.NoError(t, err)
	assert.Equal(t, "value", got.AsString())
	assert.Equal(t, "stage: value\n", lk.buf.String())
}
