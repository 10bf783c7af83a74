// Package currency converts amounts into the base currency using a static
// rate table. Rates are configuration, never fetched live.
package currency

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// FallbackRate is applied to currency codes missing from the table, so an
// unexpected free-text currency converts as-is instead of blocking a save.
var FallbackRate = decimal.NewFromInt(1)

// DefaultRates maps each selectable currency to its value in TWD.
var DefaultRates = map[string]decimal.Decimal{
	"TWD": decimal.NewFromInt(1),
	"USD": decimal.NewFromInt(32),
	"JPY": decimal.RequireFromString("0.22"),
	"EUR": decimal.NewFromInt(35),
	"其他":  decimal.NewFromInt(1),
}

// Converter converts amounts to the base currency.
type Converter struct {
	base  string
	rates map[string]decimal.Decimal
}

// NewConverter creates a Converter for base using rates. The base currency
// always converts at 1 regardless of what rates says.
func NewConverter(base string, rates map[string]decimal.Decimal) *Converter {
	table := make(map[string]decimal.Decimal, len(rates)+1)
	for code, rate := range rates {
		table[strings.TrimSpace(code)] = rate
	}
	table[base] = decimal.NewFromInt(1)
	return &Converter{base: base, rates: table}
}

// Default returns a TWD converter over DefaultRates.
func Default() *Converter {
	return NewConverter("TWD", DefaultRates)
}

// Base returns the base currency code.
func (c *Converter) Base() string { return c.base }

// Rate returns the rate-to-base for code, or FallbackRate when code is not in
// the table.
func (c *Converter) Rate(code string) decimal.Decimal {
	if rate, ok := c.rates[strings.TrimSpace(code)]; ok {
		return rate
	}
	return FallbackRate
}

// Known reports whether code has an explicit rate.
func (c *Converter) Known(code string) bool {
	_, ok := c.rates[strings.TrimSpace(code)]
	return ok
}

// ToBase converts amount in currency code to the base currency.
func (c *Converter) ToBase(amount decimal.Decimal, code string) decimal.Decimal {
	return amount.Mul(c.Rate(code))
}

// Rates returns a copy of the rate table.
func (c *Converter) Rates() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(c.rates))
	for code, rate := range c.rates {
		out[code] = rate
	}
	return out
}

// Codes returns the codes with explicit rates, sorted.
func (c *Converter) Codes() []string {
	codes := make([]string, 0, len(c.rates))
	for code := range c.rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// ParseRates parses a "USD=32,JPY=0.22" list into a rate table merged over
// DefaultRates. An empty spec returns a copy of DefaultRates.
func ParseRates(spec string) (map[string]decimal.Decimal, error) {
	rates := make(map[string]decimal.Decimal, len(DefaultRates))
	for code, rate := range DefaultRates {
		rates[code] = rate
	}
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return rates, nil
	}
	for _, pair := range strings.Split(spec, ",") {
		code, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		code = strings.TrimSpace(code)
		if !ok || code == "" {
			return nil, fmt.Errorf("invalid rate entry %q: want CODE=RATE", pair)
		}
		rate, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("invalid rate for %s: %w", code, err)
		}
		if !rate.IsPositive() {
			return nil, fmt.Errorf("invalid rate for %s: must be positive", code)
		}
		rates[code] = rate
	}
	return rates, nil
}
