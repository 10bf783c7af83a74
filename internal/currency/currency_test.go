package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToBase(t *testing.T) {
	c := Default()

	tests := []struct {
		name   string
		amount string
		code   string
		want   string
	}{
		{"base_currency_is_identity", "100", "TWD", "100"},
		{"usd", "10", "USD", "320"},
		{"jpy", "1000", "JPY", "220"},
		{"eur", "2.5", "EUR", "87.5"},
		{"other_bucket", "50", "其他", "50"},
		{"unknown_code_falls_back_to_identity", "50", "GBP", "50"},
		{"free_text_code_falls_back_to_identity", "7", "  bitcoin ", "7"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := c.ToBase(decimal.RequireFromString(tc.amount), tc.code)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)), "got %s, want %s", got, tc.want)
		})
	}
}

func TestRateAndKnown(t *testing.T) {
	c := Default()
	assert.True(t, c.Known("USD"))
	assert.False(t, c.Known("GBP"))
	assert.True(t, c.Rate("GBP").Equal(FallbackRate))
	assert.Equal(t, "TWD", c.Base())
	assert.Equal(t, []string{"EUR", "JPY", "TWD", "USD", "其他"}, c.Codes())
}

func TestNewConverterPinsBaseRate(t *testing.T) {
	c := NewConverter("USD", map[string]decimal.Decimal{
		"USD": decimal.NewFromInt(32),
		"TWD": decimal.RequireFromString("0.03125"),
	})
	assert.True(t, c.Rate("USD").Equal(decimal.NewFromInt(1)))
	assert.True(t, c.ToBase(decimal.NewFromInt(320), "TWD").Equal(decimal.NewFromInt(10)))
}

func TestRatesReturnsCopy(t *testing.T) {
	c := Default()
	rates := c.Rates()
	rates["USD"] = decimal.NewFromInt(1)
	assert.True(t, c.Rate("USD").Equal(decimal.NewFromInt(32)))
}

func TestParseRates(t *testing.T) {
	t.Run("empty_returns_defaults", func(t *testing.T) {
		rates, err := ParseRates("")
		require.NoError(t, err)
		assert.Len(t, rates, len(DefaultRates))
	})

	t.Run("overrides_and_adds", func(t *testing.T) {
		rates, err := ParseRates("USD=30.5, GBP=40")
		require.NoError(t, err)
		assert.True(t, rates["USD"].Equal(decimal.RequireFromString("30.5")))
		assert.True(t, rates["GBP"].Equal(decimal.NewFromInt(40)))
		assert.True(t, rates["JPY"].Equal(decimal.RequireFromString("0.22")))
	})

	t.Run("rejects_malformed", func(t *testing.T) {
		for _, spec := range []string{"USD", "=3", "USD=abc", "USD=0", "USD=-1"} {
			_, err := ParseRates(spec)
			assert.Error(t, err, spec)
		}
	})
}
