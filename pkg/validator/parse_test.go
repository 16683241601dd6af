package validator_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

func TestParseExpression(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		expr string
		want []validator.RuleRef
	}{
		{"single rule", "required", []validator.RuleRef{{Name: "required"}}},
		{"rule with param", "required|min:3", []validator.RuleRef{
			{Name: "required"},
			{Name: "min", Params: []string{"3"}},
		}},
		{"several params", "between:1,10", []validator.RuleRef{
			{Name: "between", Params: []string{"1", "10"}},
		}},
		{"whitespace trimmed", " required | min : 3 ", []validator.RuleRef{
			{Name: "required"},
			{Name: "min", Params: []string{"3"}},
		}},
		{"colon inside params", `regex:^\d{2}:\d{2}$`, []validator.RuleRef{
			{Name: "regex", Params: []string{`^\d{2}:\d{2}$`}},
		}},
		{"field target", "confirmed:@password", []validator.RuleRef{
			{Name: "confirmed", Params: []string{"@password"}},
		}},
		{"empty", "", nil},
		{"blank", "   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := validator.ParseExpression(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseExpression_Malformed(t *testing.T) {
	t.Parallel()

	for _, expr := range []string{"a||b", "required|", "|required", ":3", "min:", "between:1,", "between:,1"} {
		t.Run(expr, func(t *testing.T) {
			t.Parallel()
			_, err := validator.ParseExpression(expr)
			require.Error(t, err)
			assert.ErrorIs(t, err, validator.ErrMalformedExpression)
			assert.True(t, validator.IsConfigError(err))
		})
	}
}

func TestRuleRefString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "required", validator.RuleRef{Name: "required"}.String())
	assert.Equal(t, "between:1,10", validator.RuleRef{Name: "between", Params: []string{"1", "10"}}.String())
}

func TestParseExpression_RoundTrip(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		refs := rapid.SliceOfN(rapid.Custom(func(t *rapid.T) validator.RuleRef {
			return validator.RuleRef{
				Name:   rapid.StringMatching(`[a-z_][a-z0-9_]{0,8}`).Draw(t, "name"),
				Params: rapid.SliceOfN(rapid.StringMatching(`[a-z0-9@.]{1,6}`), 0, 3).Draw(t, "params"),
			}
		}), 1, 5).Draw(t, "refs")

		tokens := make([]string, len(refs))
		for i, ref := range refs {
			if len(ref.Params) == 0 {
				refs[i].Params = nil
			}
			tokens[i] = ref.String()
		}

		got, err := validator.ParseExpression(strings.Join(tokens, "|"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != len(refs) {
			t.Fatalf("got %d refs, want %d", len(got), len(refs))
		}
		for i := range refs {
			if got[i].String() != refs[i].String() {
				t.Fatalf("ref %d: got %q, want %q", i, got[i].String(), refs[i].String())
			}
		}
	})
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	names := func(rules []validator.NormalizedRule) []string {
		out := make([]string, len(rules))
		for i, r := range rules {
			out[i] = r.Name
		}
		return out
	}

	t.Run("expression", func(t *testing.T) {
		t.Parallel()
		rules, err := validator.Normalize(nil, validator.Expr("required|min:3"))
		require.NoError(t, err)
		assert.Equal(t, []string{"required", "min"}, names(rules))
		assert.Equal(t, []any{"3"}, rules[1].Params.List())
		assert.True(t, rules[0].Params.IsZero())
	})

	t.Run("mixed list keeps order", func(t *testing.T) {
		t.Parallel()
		inline := validator.BoolRule(func(any, validator.Params) bool { return true })
		rules, err := validator.Normalize(nil, validator.Rules{
			validator.Named("between", 1, 10),
			inline,
			validator.Expr("required|email"),
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"between", "inline", "required", "email"}, names(rules))
		assert.Equal(t, []any{1, 10}, rules[0].Params.List())
	})

	t.Run("rule map in lexical order", func(t *testing.T) {
		t.Parallel()
		rules, err := validator.Normalize(nil, validator.RuleMap{
			"required": true,
			"min":      3,
			"email":    false,
			"between":  []any{1, 5},
			"max":      map[string]any{"length": 10},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"between", "max", "min", "required"}, names(rules))
		v, ok := rules[1].Params.Named("length")
		require.True(t, ok)
		assert.Equal(t, 10, v)
	})

	t.Run("nil and empty", func(t *testing.T) {
		t.Parallel()
		rules, err := validator.Normalize(nil, nil)
		require.NoError(t, err)
		assert.Empty(t, rules)

		rules, err = validator.Normalize(nil, validator.Expr(""))
		require.NoError(t, err)
		assert.Empty(t, rules)
	})

	t.Run("unknown rule", func(t *testing.T) {
		t.Parallel()
		_, err := validator.Normalize(nil, validator.Rules{validator.Expr("required"), validator.Named("nope")})
		require.ErrorIs(t, err, validator.ErrUnknownRule)

		var cfgErr *validator.ConfigError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, "nope", cfgErr.Rule)
		assert.Contains(t, err.Error(), `"nope"`)
	})

	t.Run("schema is not a field rule", func(t *testing.T) {
		t.Parallel()
		_, err := validator.Normalize(nil, validator.Rules{validator.Schema{}})
		require.ErrorIs(t, err, validator.ErrInvalidDefinition)
	})

	t.Run("custom registry", func(t *testing.T) {
		t.Parallel()
		reg := validator.NewRegistry()
		_, err := validator.Normalize(reg, validator.Expr("required"))
		require.ErrorIs(t, err, validator.ErrUnknownRule)
	})

	t.Run("deterministic", func(t *testing.T) {
		t.Parallel()
		def := validator.RuleMap{"min": 3, "required": nil, "alpha": true}
		first, err := validator.Normalize(nil, def)
		require.NoError(t, err)
		for range 10 {
			again, err := validator.Normalize(nil, def)
			require.NoError(t, err)
			assert.Equal(t, names(first), names(again))
		}
	})
}
