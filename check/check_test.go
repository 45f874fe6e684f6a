package check

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/marcusfrdk/click-extended-sub002/node"
)

func TestScalarChecks(t *testing.T) {
	testCases := []struct {
		name      string
		modifier  *node.Modifier
		input     cty.Value
		expectErr string
	}{
		{name: "at least pass", modifier: AtLeast(5), input: cty.NumberIntVal(5)},
		{name: "at least fail", modifier: AtLeast(5), input: cty.NumberIntVal(4), expectErr: "must be at least 5"},
		{name: "at most pass", modifier: AtMost(5), input: cty.NumberIntVal(5)},
		{name: "at most fail", modifier: AtMost(5), input: cty.NumberIntVal(6), expectErr: "must be at most 5"},
		{name: "between pass", modifier: Between(1, 10), input: cty.NumberIntVal(10)},
		{name: "between fail low", modifier: Between(1, 10), input: cty.NumberIntVal(0), expectErr: "must be between 1 and 10"},
		{name: "less than fail equal", modifier: LessThan(3), input: cty.NumberIntVal(3), expectErr: "must be less than 3"},
		{name: "more than pass", modifier: MoreThan(3), input: cty.NumberIntVal(4)},
		{name: "not a number", modifier: AtLeast(1), input: cty.StringVal("abc"), expectErr: "is not a number"},
		{name: "length pass", modifier: Length(3), input: cty.StringVal("abc")},
		{name: "length fail", modifier: Length(3), input: cty.StringVal("ab"), expectErr: "must be exactly 3 characters long, got 2"},
		{name: "min length fail", modifier: MinLength(8), input: cty.StringVal("short"), expectErr: "must be at least 8 characters long, got 5"},
		{name: "max length pass", modifier: MaxLength(8), input: cty.StringVal("short")},
		{name: "not empty fail on blank", modifier: NotEmpty(), input: cty.StringVal("   "), expectErr: "must not be empty"},
		{name: "regex pass", modifier: Regex(`^v\d+$`), input: cty.StringVal("v12")},
		{name: "regex fail", modifier: Regex(`^v\d+$`), input: cty.StringVal("12"), expectErr: `must match "^v\\d+$"`},
		{name: "starts with fail", modifier: StartsWith("sk-"), input: cty.StringVal("key"), expectErr: `must start with "sk-"`},
		{name: "ends with pass", modifier: EndsWith(".yaml"), input: cty.StringVal("app.yaml")},
		{name: "contains fail", modifier: Contains("@"), input: cty.StringVal("nobody"), expectErr: `must contain "@"`},
		{name: "divisible pass", modifier: DivisibleBy(4), input: cty.NumberIntVal(12)},
		{name: "divisible fail", modifier: DivisibleBy(4), input: cty.NumberIntVal(13), expectErr: "must be divisible by 4"},
		{name: "positive fail on zero", modifier: IsPositive(), input: cty.NumberIntVal(0), expectErr: "must be positive"},
		{name: "negative pass", modifier: IsNegative(), input: cty.NumberIntVal(-1)},
		{name: "port pass", modifier: IsPort(), input: cty.NumberIntVal(8080)},
		{name: "port fail high", modifier: IsPort(), input: cty.NumberIntVal(70000), expectErr: "must be a port number between 1 and 65535"},
		{name: "port fail fraction", modifier: IsPort(), input: cty.NumberFloatVal(80.5), expectErr: "must be a port number between 1 and 65535"},
		{name: "uuid pass", modifier: IsUUID(), input: cty.StringVal("2f1f89f3-5c82-4a5b-9a52-6c9deacaefbe")},
		{name: "uuid fail", modifier: IsUUID(), input: cty.StringVal("not-a-uuid"), expectErr: "must be a valid UUID"},
		{name: "ipv4 pass", modifier: IsIPv4(), input: cty.StringVal("192.168.0.1")},
		{name: "ipv4 fail on v6", modifier: IsIPv4(), input: cty.StringVal("::1"), expectErr: "must be a valid IPv4 address"},
		{name: "ipv6 pass", modifier: IsIPv6(), input: cty.StringVal("::1")},
		{name: "ipv6 fail on v4", modifier: IsIPv6(), input: cty.StringVal("10.0.0.1"), expectErr: "must be a valid IPv6 address"},
		{name: "url pass", modifier: IsURL(), input: cty.StringVal("https://example.com/hook")},
		{name: "url fail no scheme", modifier: IsURL(), input: cty.StringVal("example.com"), expectErr: "must be a valid URL"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.modifier.Op(context.Background(), nil, tc.input)
			if tc.expectErr != "" {
				require.Error(t, err)
				assert.Equal(t, tc.expectErr, err.Error())
				return
			}
			require.NoError(t, err)
			// A passing check leaves the value unchanged.
			assert.True(t, tc.input.RawEquals(got))
		})
	}
}
