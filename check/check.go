// Package check provides validating directives: scalar comparisons that
// chain under a binding like any modifier, and cross-binding relations
// evaluated after every binding is resolved.
package check

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/zclconf/go-cty/cty"

	"github.com/marcusfrdk/click-extended-sub002/node"
	"github.com/marcusfrdk/click-extended-sub002/value"
)

// assertString wraps a string predicate as a pass-through modifier. The
// value is left unchanged; a failed predicate aborts resolution.
func assertString(name string, fn func(string) error) *node.Modifier {
	return node.NewModifier(name, func(ctx context.Context, lk node.Lookup, v cty.Value) (cty.Value, error) {
		if err := fn(value.AsString(v)); err != nil {
			return cty.NilVal, err
		}
		return v, nil
	})
}

// assertNumber wraps a numeric predicate as a pass-through modifier.
func assertNumber(name string, fn func(float64) error) *node.Modifier {
	return node.NewModifier(name, func(ctx context.Context, lk node.Lookup, v cty.Value) (cty.Value, error) {
		conv, err := value.FromString(value.AsString(v), cty.Number)
		if err != nil {
			return cty.NilVal, fmt.Errorf("is not a number")
		}
		f, _ := conv.AsBigFloat().Float64()
		if err := fn(f); err != nil {
			return cty.NilVal, err
		}
		return v, nil
	})
}

// AtLeast fails when the value is below n.
func AtLeast(n float64) *node.Modifier {
	return assertNumber("at_least", func(f float64) error {
		if f < n {
			return fmt.Errorf("must be at least %v", n)
		}
		return nil
	})
}

// AtMost fails when the value is above n.
func AtMost(n float64) *node.Modifier {
	return assertNumber("at_most", func(f float64) error {
		if f > n {
			return fmt.Errorf("must be at most %v", n)
		}
		return nil
	})
}

// Between fails when the value is outside the inclusive range [lo, hi].
func Between(lo, hi float64) *node.Modifier {
	return assertNumber("between", func(f float64) error {
		if f < lo || f > hi {
			return fmt.Errorf("must be between %v and %v", lo, hi)
		}
		return nil
	})
}

// LessThan fails unless the value is strictly below n.
func LessThan(n float64) *node.Modifier {
	return assertNumber("less_than", func(f float64) error {
		if f >= n {
			return fmt.Errorf("must be less than %v", n)
		}
		return nil
	})
}

// MoreThan fails unless the value is strictly above n.
func MoreThan(n float64) *node.Modifier {
	return assertNumber("more_than", func(f float64) error {
		if f <= n {
			return fmt.Errorf("must be more than %v", n)
		}
		return nil
	})
}

// Length fails unless the value is exactly n characters long.
func Length(n int) *node.Modifier {
	return assertString("length", func(s string) error {
		if got := utf8.RuneCountInString(s); got != n {
			return fmt.Errorf("must be exactly %d characters long, got %d", n, got)
		}
		return nil
	})
}

// MinLength fails when the value is shorter than n characters.
func MinLength(n int) *node.Modifier {
	return assertString("min_length", func(s string) error {
		if got := utf8.RuneCountInString(s); got < n {
			return fmt.Errorf("must be at least %d characters long, got %d", n, got)
		}
		return nil
	})
}

// MaxLength fails when the value is longer than n characters.
func MaxLength(n int) *node.Modifier {
	return assertString("max_length", func(s string) error {
		if got := utf8.RuneCountInString(s); got > n {
			return fmt.Errorf("must be at most %d characters long, got %d", n, got)
		}
		return nil
	})
}

// NotEmpty fails on an empty or whitespace-only value.
func NotEmpty() *node.Modifier {
	return assertString("not_empty", func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("must not be empty")
		}
		return nil
	})
}

// Regex fails unless the value matches the pattern. The pattern is
// compiled once at declaration time; an invalid pattern panics.
func Regex(pattern string) *node.Modifier {
	re := regexp.MustCompile(pattern)
	return assertString("regex", func(s string) error {
		if !re.MatchString(s) {
			return fmt.Errorf("must match %q", pattern)
		}
		return nil
	})
}

// StartsWith fails unless the value starts with prefix.
func StartsWith(prefix string) *node.Modifier {
	return assertString("starts_with", func(s string) error {
		if !strings.HasPrefix(s, prefix) {
			return fmt.Errorf("must start with %q", prefix)
		}
		return nil
	})
}

// EndsWith fails unless the value ends with suffix.
func EndsWith(suffix string) *node.Modifier {
	return assertString("ends_with", func(s string) error {
		if !strings.HasSuffix(s, suffix) {
			return fmt.Errorf("must end with %q", suffix)
		}
		return nil
	})
}

// Contains fails unless the value contains sub.
func Contains(sub string) *node.Modifier {
	return assertString("contains", func(s string) error {
		if !strings.Contains(s, sub) {
			return fmt.Errorf("must contain %q", sub)
		}
		return nil
	})
}

// DivisibleBy fails unless the value is an exact multiple of n.
func DivisibleBy(n float64) *node.Modifier {
	return assertNumber("divisible_by", func(f float64) error {
		if n == 0 {
			return fmt.Errorf("cannot check divisibility by zero")
		}
		quot := f / n
		if quot != float64(int64(quot)) {
			return fmt.Errorf("must be divisible by %v", n)
		}
		return nil
	})
}

// IsPositive fails unless the value is strictly positive.
func IsPositive() *node.Modifier {
	return assertNumber("is_positive", func(f float64) error {
		if f <= 0 {
			return fmt.Errorf("must be positive")
		}
		return nil
	})
}

// IsNegative fails unless the value is strictly negative.
func IsNegative() *node.Modifier {
	return assertNumber("is_negative", func(f float64) error {
		if f >= 0 {
			return fmt.Errorf("must be negative")
		}
		return nil
	})
}

// IsPort fails unless the value is a valid TCP/UDP port number.
func IsPort() *node.Modifier {
	return assertNumber("is_port", func(f float64) error {
		if f != float64(int64(f)) || f < 1 || f > 65535 {
			return fmt.Errorf("must be a port number between 1 and 65535")
		}
		return nil
	})
}

// IsUUID fails unless the value parses as a UUID.
func IsUUID() *node.Modifier {
	return assertString("is_uuid", func(s string) error {
		if _, err := uuid.Parse(s); err != nil {
			return fmt.Errorf("must be a valid UUID")
		}
		return nil
	})
}

// IsIPv4 fails unless the value is an IPv4 address.
func IsIPv4() *node.Modifier {
	return assertString("is_ipv4", func(s string) error {
		ip := net.ParseIP(s)
		if ip == nil || ip.To4() == nil {
			return fmt.Errorf("must be a valid IPv4 address")
		}
		return nil
	})
}

// IsIPv6 fails unless the value is an IPv6 address.
func IsIPv6() *node.Modifier {
	return assertString("is_ipv6", func(s string) error {
		ip := net.ParseIP(s)
		if ip == nil || ip.To4() != nil {
			return fmt.Errorf("must be a valid IPv6 address")
		}
		return nil
	})
}

// IsURL fails unless the value is an absolute URL with a host.
func IsURL() *node.Modifier {
	return assertString("is_url", func(s string) error {
		u, err := url.Parse(s)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("must be a valid URL")
		}
		return nil
	})
}
