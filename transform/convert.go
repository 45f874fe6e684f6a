package transform

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/marcusfrdk/click-extended-sub002/node"
	"github.com/marcusfrdk/click-extended-sub002/value"
)

// byteFactors holds the decimal (SI) and binary (IEC) byte units.
var byteFactors = map[string]float64{}

func init() {
	decimal := []string{"B", "kB", "MB", "GB", "TB", "PB", "EB", "ZB", "YB", "RB", "QB"}
	for i, unit := range decimal {
		byteFactors[unit] = math.Pow(1000, float64(i))
	}
	binary := []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB", "ZiB", "YiB"}
	for i, unit := range binary {
		byteFactors[unit] = math.Pow(1024, float64(i+1))
	}
}

// ConvertByteSize rescales a numeric byte quantity between units, decimal
// ("B", "kB" through "QB") or binary ("KiB" through "YiB"). An unknown
// unit is a declaration error and panics.
func ConvertByteSize(from, to string) *node.Modifier {
	fromFactor, ok := byteFactors[from]
	if !ok {
		panic(fmt.Sprintf("transform: unknown byte unit %q", from))
	}
	toFactor, ok := byteFactors[to]
	if !ok {
		panic(fmt.Sprintf("transform: unknown byte unit %q", to))
	}
	return numberModifier("convert_byte_size", func(f float64) (float64, error) {
		return f * fromFactor / toFactor, nil
	})
}

// timeFactors maps duration units to seconds. Months are 30 days and
// years 365 days.
var timeFactors = map[string]float64{
	"ns": 1e-9,
	"us": 1e-6,
	"ms": 1e-3,
	"s":  1,
	"m":  60,
	"h":  3600,
	"d":  86400,
	"w":  604800,
	"M":  2592000,
	"y":  31536000,
}

var durationPart = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*([a-zA-Z]+)`)

// parseDuration sums a compound duration string ("1h30m") into seconds.
func parseDuration(s string) (float64, error) {
	parts := durationPart.FindAllStringSubmatch(s, -1)
	if len(parts) == 0 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	var total float64
	for _, part := range parts {
		amount, err := strconv.ParseFloat(part[1], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		factor, ok := timeFactors[part[2]]
		if !ok {
			return 0, fmt.Errorf("unknown duration unit %q", part[2])
		}
		total += amount * factor
	}
	return total, nil
}

// ConvertTime rescales a duration between units ("ns", "us", "ms", "s",
// "m", "h", "d", "w", "M", "y"). A plain number is taken in the from
// unit; a string value may carry its own units and can compound
// ("1h30m"), in which case from is ignored. Unknown from or to units are
// declaration errors and panic.
func ConvertTime(from, to string) *node.Modifier {
	fromFactor, ok := timeFactors[from]
	if !ok {
		panic(fmt.Sprintf("transform: unknown duration unit %q", from))
	}
	toFactor, ok := timeFactors[to]
	if !ok {
		panic(fmt.Sprintf("transform: unknown duration unit %q", to))
	}
	return node.NewModifier("convert_time", func(ctx context.Context, lk node.Lookup, v cty.Value) (cty.Value, error) {
		raw := strings.TrimSpace(value.AsString(v))
		var seconds float64
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			seconds = f * fromFactor
		} else {
			parsed, err := parseDuration(raw)
			if err != nil {
				return cty.NilVal, err
			}
			seconds = parsed
		}
		return cty.NumberFloatVal(seconds / toFactor), nil
	})
}
