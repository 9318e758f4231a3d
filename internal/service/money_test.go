package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOptionalMoney(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string // "" means nil
	}{
		{"blank stays null", "", ""},
		{"whitespace stays null", "   ", ""},
		{"garbage stays null", "abc", ""},
		{"partial number stays null", "12.3.4", ""},
		{"plain amount", "100", "100"},
		{"rounds to cents", "150.5", "150.5"},
		{"rounds half up", "10.005", "10.01"},
		{"negative stays null", "-42.10", ""},
		{"zero allowed", "0", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseOptionalMoney(tt.in)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"expected %s, got %s", tt.want, got)
		})
	}
}

func TestParseRequiredMoney(t *testing.T) {
	got, err := parseRequiredMoney("150.5")
	require.NoError(t, err)
	assert.Equal(t, "150.50", got.StringFixed(2))

	_, err = parseRequiredMoney("")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = parseRequiredMoney("not-a-number")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = parseRequiredMoney("-150.50")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestParseCommissionRate(t *testing.T) {
	assert.True(t, parseCommissionRate("").Equal(DefaultCommissionRate))
	assert.True(t, parseCommissionRate("banana").Equal(DefaultCommissionRate))
	assert.True(t, parseCommissionRate("-5").Equal(DefaultCommissionRate))
	assert.True(t, parseCommissionRate("20").Equal(decimal.NewFromInt(20)))
	assert.True(t, parseCommissionRate("12.5").Equal(decimal.RequireFromString("12.5")))
}

func TestMatchesSearch(t *testing.T) {
	assert.True(t, MatchesSearch("", "anything"))
	assert.True(t, MatchesSearch("jane", "Jane Doe", "jane@example.com"))
	assert.True(t, MatchesSearch("DOE", "Jane Doe"))
	assert.True(t, MatchesSearch("example.com", "Jane Doe", "jane@example.com"))
	assert.False(t, MatchesSearch("smith", "Jane Doe", "jane@example.com"))
	assert.False(t, MatchesSearch("x"))
}
