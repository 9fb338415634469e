package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseImpact_DollarAndFTERange(t *testing.T) {
	impact := ParseImpact("$300K annual savings; 4-6 FTEs")

	require.True(t, impact.DollarAmount.Valid)
	require.True(t, impact.FTECount.Valid)
	assert.True(t, impact.DollarAmount.Decimal.Equal(decimal.NewFromInt(300000)))
	assert.True(t, impact.FTECount.Decimal.Equal(decimal.NewFromInt(6)))
}

func TestParseImpact_NoFigures(t *testing.T) {
	impact := ParseImpact("No financial data")

	assert.False(t, impact.DollarAmount.Valid)
	assert.False(t, impact.FTECount.Valid)
}

func TestParseImpact_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n"} {
		impact := ParseImpact(input)
		assert.False(t, impact.HasAny(), "input %q", input)
	}
}

func TestCurrencyRule(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"$1.2M", "1200000"},
		{"$300K", "300000"},
		{"$300k in savings", "300000"},
		{"saves $2.5m per year", "2500000"},
		{"$1,500,000 cost avoidance", "1500000"},
		{"$45,000.50 recovered", "45000.5"},
		{"$750", "750"},
		{"$ 90K", "90000"},
		{"$5 million", "5"},
		{"$200K revenue and $1M savings", "200000"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got := CurrencyRule(tc.input)
			require.True(t, got.Valid)
			assert.Equal(t, decimal.RequireFromString(tc.expected).String(), got.Decimal.String())
		})
	}
}

func TestCurrencyRule_NoMatch(t *testing.T) {
	for _, input := range []string{"300K savings", "$", "USD 40", "cost: $abc"} {
		assert.False(t, CurrencyRule(input).Valid, "input %q", input)
	}
}

func TestFTERule(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"4-6 FTEs", "6"},
		{"6-4 FTEs", "6"},
		{"3 FTE", "3"},
		{"12FTE freed", "12"},
		{"2 – 3 fte", "3"},
		{"1.5 FTEs redeployed", "1.5"},
		{"2 FTEs now, 10 FTEs later", "2"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got := FTERule(tc.input)
			require.True(t, got.Valid)
			assert.Equal(t, decimal.RequireFromString(tc.expected).String(), got.Decimal.String())
		})
	}
}

func TestFTERule_NoMatch(t *testing.T) {
	for _, input := range []string{"FTE savings", "several FTEs", "x4 FTE", "4 staff"} {
		assert.False(t, FTERule(input).Valid, "input %q", input)
	}
}

func TestFirstOf_FallsThrough(t *testing.T) {
	never := func(string) decimal.NullDecimal { return decimal.NullDecimal{} }
	rule := FirstOf(never, CurrencyRule)

	got := rule("$10K")
	require.True(t, got.Valid)
	assert.True(t, got.Decimal.Equal(decimal.NewFromInt(10000)))
	assert.False(t, FirstOf(never)("$10K").Valid)
}

func TestNewImpactParser_CustomRule(t *testing.T) {
	fixed := func(string) decimal.NullDecimal { return decimal.NewNullDecimal(decimal.NewFromInt(7)) }
	parser := NewImpactParser(nil, fixed)

	impact := parser.Parse("$1M")
	assert.True(t, impact.DollarAmount.Decimal.Equal(decimal.NewFromInt(1000000)))
	assert.True(t, impact.FTECount.Decimal.Equal(decimal.NewFromInt(7)))
}
