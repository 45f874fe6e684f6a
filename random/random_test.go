package random

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func resolve(t *testing.T, s *Source) cty.Value {
	t.Helper()
	v, provided, err := s.Resolve(context.Background())
	require.NoError(t, err)
	assert.False(t, provided, "generated values are never provided")
	return v
}

func TestIntStaysInRange(t *testing.T) {
	s := Int(5, 10, WithSeed(1))
	for i := 0; i < 100; i++ {
		v := resolve(t, s)
		n, _ := v.AsBigFloat().Int64()
		assert.GreaterOrEqual(t, n, int64(5))
		assert.LessOrEqual(t, n, int64(10))
	}
}

func TestIntInvertedBounds(t *testing.T) {
	_, _, err := Int(10, 5).Resolve(context.Background())
	require.Error(t, err)
}

func TestFloatStaysInRange(t *testing.T) {
	s := Float(0.5, 1.5, WithSeed(7))
	for i := 0; i < 100; i++ {
		v := resolve(t, s)
		f, _ := v.AsBigFloat().Float64()
		assert.GreaterOrEqual(t, f, 0.5)
		assert.Less(t, f, 1.5)
	}
}

func TestSeededDeterminism(t *testing.T) {
	first := resolve(t, String(16, "", WithSeed(42)))
	second := resolve(t, String(16, "", WithSeed(42)))
	assert.Equal(t, first.AsString(), second.AsString())
	assert.Len(t, first.AsString(), 16)
}

func TestStringAlphabet(t *testing.T) {
	v := resolve(t, String(32, "ab", WithSeed(3)))
	for _, r := range v.AsString() {
		assert.Contains(t, []rune{'a', 'b'}, r)
	}
}

func TestChoice(t *testing.T) {
	items := []string{"red", "green", "blue"}
	s := Choice(items, WithSeed(9))
	for i := 0; i < 20; i++ {
		assert.Contains(t, items, resolve(t, s).AsString())
	}
}

func TestChoiceEmpty(t *testing.T) {
	_, _, err := Choice(nil).Resolve(context.Background())
	require.Error(t, err)
}

func TestBool(t *testing.T) {
	s := Bool(WithSeed(2))
	seen := map[bool]bool{}
	for i := 0; i < 50; i++ {
		seen[resolve(t, s).True()] = true
	}
	assert.Len(t, seen, 2, "both outcomes appear over 50 draws")
}

func TestUUID(t *testing.T) {
	t.Run("entropy", func(t *testing.T) {
		v := resolve(t, UUID())
		id, err := uuid.Parse(v.AsString())
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(4), id.Version())
	})

	t.Run("seeded", func(t *testing.T) {
		a := resolve(t, UUID(WithSeed(11)))
		b := resolve(t, UUID(WithSeed(11)))
		assert.Equal(t, a.AsString(), b.AsString())
		id, err := uuid.Parse(a.AsString())
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(4), id.Version())
	})
}

func TestOrigins(t *testing.T) {
	assert.Equal(t, "random", Int(0, 1).Origin())
	assert.Equal(t, "random", UUID().Origin())
	assert.Equal(t, "now", Now().Origin())
}

func TestNow(t *testing.T) {
	v := resolve(t, Now())
	ts, err := time.Parse(time.RFC3339, v.AsString())
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), ts, time.Minute)
}
