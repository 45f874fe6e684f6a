// Package random provides generated binding sources: values that exist at
// resolution time without any external input. A generated value is never
// "provided", so it satisfies defaults but not requirement checks.
package random

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/zclconf/go-cty/cty"
)

// Option configures a generator source.
type Option func(*Source)

// WithSeed makes the generator deterministic. Without it the process
// entropy source is used.
func WithSeed(seed uint64) Option {
	return func(s *Source) {
		s.rng = rand.New(rand.NewPCG(seed, seed))
	}
}

// Source is a generated binding source.
type Source struct {
	origin string
	rng    *rand.Rand
	gen    func(s *Source) (cty.Value, error)
}

// Origin identifies the binding origin in tree rendering and errors.
func (s *Source) Origin() string { return s.origin }

// Resolve generates a value. The provided flag is always false: a
// generated value was not given by the user.
func (s *Source) Resolve(ctx context.Context) (cty.Value, bool, error) {
	v, err := s.gen(s)
	return v, false, err
}

func (s *Source) intN(n int) int {
	if s.rng != nil {
		return s.rng.IntN(n)
	}
	return rand.IntN(n)
}

func (s *Source) float() float64 {
	if s.rng != nil {
		return s.rng.Float64()
	}
	return rand.Float64()
}

func newSource(origin string, gen func(s *Source) (cty.Value, error), opts []Option) *Source {
	s := &Source{origin: origin, gen: gen}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Int generates a uniform integer in the inclusive range [lo, hi].
func Int(lo, hi int64, opts ...Option) *Source {
	return newSource("random", func(s *Source) (cty.Value, error) {
		if lo > hi {
			return cty.NilVal, fmt.Errorf("random int bounds are inverted: %d > %d", lo, hi)
		}
		n := lo + int64(s.intN(int(hi-lo+1)))
		return cty.NumberIntVal(n), nil
	}, opts)
}

// Float generates a uniform float in the half-open range [lo, hi).
func Float(lo, hi float64, opts ...Option) *Source {
	return newSource("random", func(s *Source) (cty.Value, error) {
		if lo > hi {
			return cty.NilVal, fmt.Errorf("random float bounds are inverted: %v > %v", lo, hi)
		}
		return cty.NumberFloatVal(lo + s.float()*(hi-lo)), nil
	}, opts)
}

// Bool generates true or false with equal probability.
func Bool(opts ...Option) *Source {
	return newSource("random", func(s *Source) (cty.Value, error) {
		return cty.BoolVal(s.intN(2) == 1), nil
	}, opts)
}

const defaultAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// String generates n characters drawn from alphabet; an empty alphabet
// means alphanumerics.
func String(n int, alphabet string, opts ...Option) *Source {
	return newSource("random", func(s *Source) (cty.Value, error) {
		if n < 0 {
			return cty.NilVal, fmt.Errorf("random string length must be non-negative, got %d", n)
		}
		chars := alphabet
		if chars == "" {
			chars = defaultAlphabet
		}
		runes := []rune(chars)
		out := make([]rune, n)
		for i := range out {
			out[i] = runes[s.intN(len(runes))]
		}
		return cty.StringVal(string(out)), nil
	}, opts)
}

// Choice generates one of the given items.
func Choice(items []string, opts ...Option) *Source {
	return newSource("random", func(s *Source) (cty.Value, error) {
		if len(items) == 0 {
			return cty.NilVal, fmt.Errorf("random choice needs at least one item")
		}
		return cty.StringVal(items[s.intN(len(items))]), nil
	}, opts)
}

// UUID generates a random version 4 UUID.
func UUID(opts ...Option) *Source {
	return newSource("random", func(s *Source) (cty.Value, error) {
		if s.rng != nil {
			var buf [16]byte
			for i := range buf {
				buf[i] = byte(s.intN(256))
			}
			id, err := uuid.FromBytes(buf[:])
			if err != nil {
				return cty.NilVal, err
			}
			id[6] = (id[6] & 0x0f) | 0x40
			id[8] = (id[8] & 0x3f) | 0x80
			return cty.StringVal(id.String()), nil
		}
		id, err := uuid.NewRandom()
		if err != nil {
			return cty.NilVal, err
		}
		return cty.StringVal(id.String()), nil
	}, opts)
}

// Now yields the current time as an RFC 3339 string. Like the generators,
// the value is never "provided".
func Now() *Source {
	s := &Source{origin: "now"}
	s.gen = func(*Source) (cty.Value, error) {
		return cty.StringVal(time.Now().Format(time.RFC3339)), nil
	}
	return s
}
