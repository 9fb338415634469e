package utils

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Impact holds the figures extracted from a free-text impact description.
// A field is invalid when no matching expression was found.
type Impact struct {
	DollarAmount decimal.NullDecimal
	FTECount     decimal.NullDecimal
}

// HasAny reports whether a dollar or FTE figure was found
func (i Impact) HasAny() bool {
	return i.DollarAmount.Valid || i.FTECount.Valid
}

// ExtractionRule pulls one number out of free text. The first match in reading order wins.
type ExtractionRule func(text string) decimal.NullDecimal

var (
	// $ then digits with optional thousands separators and decimals, then an optional K/M suffix
	currencyPattern = regexp.MustCompile(`\$\s?(\d{1,3}(?:,\d{3})+|\d+)(?:\.(\d+))?(?:\s?([KkMm])\b)?`)

	// a number or a range of two numbers followed by FTE/FTEs
	ftePattern = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)(?:\s*[-–]\s*(\d+(?:\.\d+)?))?\s*FTEs?\b`)

	magnitudes = map[string]decimal.Decimal{
		"k": decimal.NewFromInt(1_000),
		"m": decimal.NewFromInt(1_000_000),
	}
)

// CurrencyRule extracts the first dollar amount, applying K and M suffixes
func CurrencyRule(text string) decimal.NullDecimal {
	m := currencyPattern.FindStringSubmatch(text)
	if m == nil {
		return decimal.NullDecimal{}
	}

	digits := strings.ReplaceAll(m[1], ",", "")
	if m[2] != "" {
		digits += "." + m[2]
	}
	amount, err := decimal.NewFromString(digits)
	if err != nil {
		return decimal.NullDecimal{}
	}
	if factor, ok := magnitudes[strings.ToLower(m[3])]; ok {
		amount = amount.Mul(factor)
	}
	return decimal.NewNullDecimal(amount)
}

// FTERule extracts the first FTE count. Ranges resolve to their upper bound.
func FTERule(text string) decimal.NullDecimal {
	m := ftePattern.FindStringSubmatch(text)
	if m == nil {
		return decimal.NullDecimal{}
	}

	count, err := decimal.NewFromString(m[1])
	if err != nil {
		return decimal.NullDecimal{}
	}
	if m[2] != "" {
		upper, err := decimal.NewFromString(m[2])
		if err != nil {
			return decimal.NullDecimal{}
		}
		count = decimal.Max(count, upper)
	}
	return decimal.NewNullDecimal(count)
}

// FirstOf composes rules, returning the result of the first rule that matches
func FirstOf(rules ...ExtractionRule) ExtractionRule {
	return func(text string) decimal.NullDecimal {
		for _, rule := range rules {
			if v := rule(text); v.Valid {
				return v
			}
		}
		return decimal.NullDecimal{}
	}
}

// ImpactParser turns impact text into dollar and FTE figures
type ImpactParser struct {
	dollar ExtractionRule
	fte    ExtractionRule
}

// NewImpactParser creates a parser. Nil rules fall back to CurrencyRule and FTERule.
func NewImpactParser(dollar, fte ExtractionRule) *ImpactParser {
	if dollar == nil {
		dollar = CurrencyRule
	}
	if fte == nil {
		fte = FTERule
	}
	return &ImpactParser{dollar: dollar, fte: fte}
}

// Parse never fails; text without recognizable figures yields an empty Impact
func (p *ImpactParser) Parse(text string) Impact {
	if strings.TrimSpace(text) == "" {
		return Impact{}
	}
	return Impact{
		DollarAmount: p.dollar(text),
		FTECount:     p.fte(text),
	}
}

var defaultImpactParser = NewImpactParser(nil, nil)

// ParseImpact parses text with the default rules
func ParseImpact(text string) Impact {
	return defaultImpactParser.Parse(text)
}
