package tree

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/marcusfrdk/click-extended-sub002/node"
)

func noopTransform(ctx context.Context, lk node.Lookup, v cty.Value) (cty.Value, error) {
	return v, nil
}

func noopRelation(ctx context.Context, lk node.Lookup, v *node.Validation) error {
	return nil
}

// buildWritten compiles directives given in written order: the order they
// would appear in a declaration stack, binding first, its directives below.
func buildWritten(t *testing.T, command string, written ...node.Directive) (*Tree, error) {
	t.Helper()
	b := NewBuilder(command)
	for i := len(written) - 1; i >= 0; i-- {
		b.Register(written[i])
	}
	return b.Finish(context.Background())
}

func TestFinishClaimsChainInWrittenOrder(t *testing.T) {
	first := node.NewModifier("first", noopTransform)
	second := node.NewModifier("second", noopTransform)
	binding := node.NewBinding("name")

	tr, err := buildWritten(t, "cmd", binding, first, second)
	require.NoError(t, err)

	require.Len(t, tr.Bindings, 1)
	chain := tr.Bindings[0].Chain
	require.Len(t, chain, 2)
	assert.Equal(t, "first", chain[0].Name)
	assert.Equal(t, "second", chain[1].Name)
}

func TestFinishClaimingIgnoresInterleavedDirectives(t *testing.T) {
	// Validations and globals between a binding and its modifiers must not
	// disturb ownership.
	binding := node.NewBinding("name")
	m1 := node.NewModifier("m1", noopTransform)
	global := node.NewGlobal("g", node.PhaseFirst, func(ctx context.Context, lk node.Lookup) (cty.Value, error) {
		return cty.NilVal, nil
	})
	symmetric := node.NewValidation("v", false, []string{"a", "b"}, noopRelation)
	m2 := node.NewModifier("m2", noopTransform)

	tr, err := buildWritten(t, "cmd", binding, m1, global, symmetric, m2)
	require.NoError(t, err)

	require.Len(t, tr.Bindings, 1)
	chain := tr.Bindings[0].Chain
	require.Len(t, chain, 2)
	assert.Equal(t, "m1", chain[0].Name)
	assert.Equal(t, "m2", chain[1].Name)
	assert.Len(t, tr.GlobalsFirst, 1)
	assert.Len(t, tr.Validations, 1)
}

func TestFinishSeparatesChainsPerBinding(t *testing.T) {
	a := node.NewBinding("a")
	ma := node.NewModifier("ma", noopTransform)
	b := node.NewBinding("b")
	mb := node.NewModifier("mb", noopTransform)

	tr, err := buildWritten(t, "cmd", a, ma, b, mb)
	require.NoError(t, err)

	require.Len(t, tr.Bindings, 2)
	// Declaration order is preserved.
	assert.Equal(t, "a", tr.Bindings[0].Name)
	assert.Equal(t, "b", tr.Bindings[1].Name)
	require.Len(t, tr.Bindings[0].Chain, 1)
	assert.Equal(t, "ma", tr.Bindings[0].Chain[0].Name)
	require.Len(t, tr.Bindings[1].Chain, 1)
	assert.Equal(t, "mb", tr.Bindings[1].Chain[0].Name)
}

func TestFinishAnchorsValidations(t *testing.T) {
	binding := node.NewBinding("username")
	anchored := node.NewValidation("requires", true, []string{"password"}, noopRelation)

	tr, err := buildWritten(t, "cmd", binding, anchored)
	require.NoError(t, err)

	require.Len(t, tr.Validations, 1)
	assert.Equal(t, "username", tr.Validations[0].Anchor)
}

func TestFinishDanglingDirectives(t *testing.T) {
	t.Run("modifier without binding", func(t *testing.T) {
		_, err := buildWritten(t, "cmd", node.NewModifier("m", noopTransform))
		assert.ErrorIs(t, err, ErrDanglingModifier)
	})

	t.Run("anchored validation without binding", func(t *testing.T) {
		v := node.NewValidation("requires", true, []string{"x"}, noopRelation)
		_, err := buildWritten(t, "cmd", v)
		assert.ErrorIs(t, err, ErrDanglingDirective)
	})

	t.Run("tag claim without binding", func(t *testing.T) {
		_, err := buildWritten(t, "cmd", node.NewTagClaim("credentials"))
		assert.ErrorIs(t, err, ErrDanglingDirective)
	})
}

func TestFinishNameValidation(t *testing.T) {
	t.Run("duplicate binding name", func(t *testing.T) {
		_, err := buildWritten(t, "cmd", node.NewBinding("a"), node.NewBinding("a"))
		assert.ErrorIs(t, err, ErrDuplicateName)
	})

	t.Run("empty binding name", func(t *testing.T) {
		_, err := buildWritten(t, "cmd", node.NewBinding(""))
		assert.ErrorIs(t, err, ErrInvalidName)
	})

	t.Run("tag colliding with binding", func(t *testing.T) {
		a := node.NewBinding("a")
		b := node.NewBinding("b")
		b.Tags = []string{"a"}
		_, err := buildWritten(t, "cmd", a, b)
		assert.ErrorIs(t, err, ErrDuplicateName)
	})

	t.Run("tagged env binding", func(t *testing.T) {
		e := node.NewBinding("apiKey")
		e.Origin = "env"
		e.Tags = []string{"credentials"}
		_, err := buildWritten(t, "cmd", e)
		assert.ErrorIs(t, err, ErrTaggedEnv)
	})
}

func TestFinishTagRegistry(t *testing.T) {
	a := node.NewBinding("token")
	a.Tags = []string{"credentials"}
	b := node.NewBinding("tokenFile")
	c := node.NewBinding("other")

	tr, err := buildWritten(t, "cmd",
		a,
		b, node.NewTagClaim("credentials"),
		c,
	)
	require.NoError(t, err)

	require.True(t, tr.Tags.Has("credentials"))
	assert.Equal(t, []string{"token", "tokenFile"}, tr.Tags.Members("credentials"))
	assert.Equal(t, []string{"credentials"}, tr.Tags.Groups())
}

func TestExpand(t *testing.T) {
	a := node.NewBinding("token")
	a.Tags = []string{"credentials"}
	b := node.NewBinding("tokenFile")
	b.Tags = []string{"credentials"}

	tr, err := buildWritten(t, "cmd", a, b)
	require.NoError(t, err)

	t.Run("direct binding name", func(t *testing.T) {
		assert.Equal(t, []string{"token"}, tr.Expand("token"))
	})

	t.Run("tag group", func(t *testing.T) {
		assert.Equal(t, []string{"token", "tokenFile"}, tr.Expand("credentials"))
	})

	t.Run("unknown name", func(t *testing.T) {
		assert.Nil(t, tr.Expand("nope"))
	})
}

func TestFinishTwiceFails(t *testing.T) {
	b := NewBuilder("cmd")
	b.Register(node.NewBinding("a"))
	_, err := b.Finish(context.Background())
	require.NoError(t, err)

	_, err = b.Finish(context.Background())
	assert.ErrorIs(t, err, ErrFinished)
}

func TestFinishGlobalPhases(t *testing.T) {
	noop := func(ctx context.Context, lk node.Lookup) (cty.Value, error) { return cty.NilVal, nil }
	first := node.NewGlobal("setup", node.PhaseFirst, noop)
	last := node.NewGlobal("teardown", node.PhaseLast, noop)

	tr, err := buildWritten(t, "cmd", first, last, node.NewBinding("a"))
	require.NoError(t, err)

	require.Len(t, tr.GlobalsFirst, 1)
	assert.Equal(t, "setup", tr.GlobalsFirst[0].Name)
	require.Len(t, tr.GlobalsLast, 1)
	assert.Equal(t, "teardown", tr.GlobalsLast[0].Name)
}
